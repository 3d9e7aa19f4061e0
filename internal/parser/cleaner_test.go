package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle_StripsDotsWhenNoSpaces(t *testing.T) {
	assert.Equal(t, "Some Movie Title", cleanTitle("Some.Movie.Title"))
}

func TestCleanTitle_StripsMovieMarker(t *testing.T) {
	assert.Equal(t, "Heat", cleanTitle("Heat [MOVIE]"))
}

func TestCleanTitle_DropsEmptyBracketPairs(t *testing.T) {
	assert.Equal(t, "Heat", cleanTitle("Heat ()"))
}

func TestCleanTitle_DropsTrailingMp3(t *testing.T) {
	assert.Equal(t, "Some Album", cleanTitle("Some Album mp3"))
}

func TestCleanTitle_CollapsesMultipleSpaces(t *testing.T) {
	assert.Equal(t, "A Title Here", cleanTitle("A   Title    Here"))
}

func TestCleanTitle_IsIdempotent(t *testing.T) {
	inputs := []string{
		"Some.Movie.Title",
		"Heat [MOVIE]",
		"  Trailing - Junk  ./\\",
		"[RUS] Привет Мир",
		"Alt/Title",
	}
	for _, in := range inputs {
		once := cleanTitle(in)
		twice := cleanTitle(once)
		assert.Equal(t, once, twice, "cleanTitle not idempotent for %q", in)
	}
}

func TestCleanTitle_TrimsUnbalancedBrackets(t *testing.T) {
	out := cleanTitle("Movie (Title")
	assert.NotContains(t, out, "(")
}

func TestCleanTitle_TrimsTrailingJunkRun(t *testing.T) {
	assert.Equal(t, "Movie Title", cleanTitle("Movie Title - ./\\"))
}
