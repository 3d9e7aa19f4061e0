package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_LowercasesAndExpandsAmpersand(t *testing.T) {
	assert.Equal(t, "fast and furious", Normalize("Fast & Furious"))
}

func TestNormalize_StripsPunctuationAndCollapsesSeparators(t *testing.T) {
	assert.Equal(t, "breaking bad", Normalize("Breaking_Bad!"))
	assert.Equal(t, "the matrix", Normalize("The-Matrix"))
	assert.Equal(t, "whats up doc", Normalize(`What's "Up", Doc?`))
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  A   B  C  "))
}

func TestNormalize_IsIdempotent(t *testing.T) {
	in := "The (Lord) of the Rings: The Fellowship!"
	once := Normalize(in)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}
