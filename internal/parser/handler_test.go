package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeHandler_SkipsWhenFieldAlreadySet(t *testing.T) {
	h := newHandler("year.bare", `(?i)\b((?:19|20)\d{2})\b`, yearField(), yearTransform, defaultOptions())
	res := &ParsedTitle{}
	yr := 1999
	res.Year = &yr
	matched := map[string]Match{}

	_, ok := invokeHandler(h, res, "Movie 2020", matched)
	assert.False(t, ok)
	assert.Equal(t, 1999, *res.Year)
}

func TestInvokeHandler_RemoveSplicesMatchOutOfTitle(t *testing.T) {
	h := newHandler("adult", `(?i)\bxxx\b`, boolField(func(p *ParsedTitle) *bool { return &p.Adult }), boolTrue, RegexHandlerOptions{Remove: true})
	res := &ParsedTitle{}
	matched := map[string]Match{}

	mr, ok := invokeHandler(h, res, "Some XXX Movie", matched)
	require.True(t, ok)
	assert.True(t, mr.remove)
	assert.True(t, res.Adult)
	assert.Equal(t, "Some  Movie", spliceOut("Some XXX Movie", mr.rawMatch))
}

func TestInvokeHandler_RejectsMatchWhenTransformFails(t *testing.T) {
	h := newHandler("year.bare", `(?i)\b(\d{4})\b`, yearField(), yearTransform, defaultOptions())
	res := &ParsedTitle{}
	matched := map[string]Match{}

	_, ok := invokeHandler(h, res, "Episode 1850", matched)
	assert.False(t, ok)
	assert.Nil(t, res.Year)
}

func TestInvokeHandler_RecordsMatchIndex(t *testing.T) {
	h := newHandler("resolution.p", `(?i)\b(\d{3,4}p)\b`, func(p *ParsedTitle) *string { return &p.Resolution }, resolutionTransform, defaultOptions())
	res := &ParsedTitle{}
	matched := map[string]Match{}

	mr, ok := invokeHandler(h, res, "Movie 1080p BluRay", matched)
	require.True(t, ok)
	assert.Greater(t, mr.matchIndex, 0)
	assert.Equal(t, "1080p", res.Resolution)
	assert.Contains(t, matched, "resolution.p")
}

func TestIsSetAny_RecognizesUnsetAndSetValues(t *testing.T) {
	assert.False(t, isSetAny(""))
	assert.True(t, isSetAny("x"))
	assert.False(t, isSetAny(false))
	assert.True(t, isSetAny(true))
	assert.False(t, isSetAny((*int)(nil)))
	n := 5
	assert.True(t, isSetAny(&n))
	assert.False(t, isSetAny([]string(nil)))
	assert.True(t, isSetAny([]string{"a"}))
	assert.False(t, isSetAny(QualityUnknown))
	assert.True(t, isSetAny(QualityBluRay))
}
