package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuality_StringAndIsSet(t *testing.T) {
	assert.Equal(t, "", QualityUnknown.String())
	assert.False(t, QualityUnknown.IsSet())

	assert.Equal(t, "BluRay Remux", QualityBluRayRemux.String())
	assert.True(t, QualityBluRayRemux.IsSet())
}

func TestCodec_StringAndIsSet(t *testing.T) {
	assert.Equal(t, "HEVC", CodecHevc.String())
	assert.True(t, CodecHevc.IsSet())
	assert.False(t, CodecUnknown.IsSet())
}

func TestNetwork_StringAndIsSet(t *testing.T) {
	assert.Equal(t, "Netflix", NetworkNetflix.String())
	assert.True(t, NetworkNetflix.IsSet())
	assert.False(t, NetworkUnknown.IsSet())
}

func TestParseError_ImplementsError(t *testing.T) {
	var err error = &ParseError{Kind: ErrorKindPanic, Message: "boom"}
	assert.Equal(t, "boom", err.Error())
}
