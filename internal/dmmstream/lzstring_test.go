package dmmstream

import "testing"

func TestDecompressFromEncodedURIComponent_Empty(t *testing.T) {
	if got := decompressFromEncodedURIComponent(""); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

// TestDecompress_EmptyMarkerReturnsNoOutput exercises the "next == 2"
// short-circuit: the first two header bits select the empty-string marker,
// which must return before any dictionary entry is ever read.
func TestDecompress_EmptyMarkerReturnsNoOutput(t *testing.T) {
	// Header is 2 bits wide; value 2 (0b10) selects the empty case.
	// getNextValue is only ever asked for index 0 in this path.
	calls := 0
	got := decompress(1, 32, func(index int) int {
		calls++
		return 2 << 3 // low two bits after the reader's shifting land on 2
	})
	if got != nil {
		t.Errorf("expected nil output for empty marker, got %v", got)
	}
	if calls == 0 {
		t.Errorf("expected getNextValue to be invoked at least once")
	}
}

func TestUTF16ToString_RoundTripsBMPText(t *testing.T) {
	units := []uint16{'h', 'i'}
	if got := utf16ToString(units); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}
