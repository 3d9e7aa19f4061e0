package dmmstream

import "testing"

func TestExtractTorrentEntries_NoIframeReturnsNotFound(t *testing.T) {
	_, found, err := extractTorrentEntries("<html><body>nothing here</body></html>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Errorf("expected found=false for a page without a hashlist iframe")
	}
}

func TestExtractTorrentEntries_InvalidPayloadErrors(t *testing.T) {
	page := `<iframe src="https://debridmediamanager.com/hashlist#not-a-real-payload"></iframe>`
	_, found, err := extractTorrentEntries(page)
	if !found {
		t.Fatalf("expected the iframe to be found")
	}
	if err == nil {
		t.Errorf("expected an error decoding a garbage payload")
	}
}

func TestParseHashlistJSON_AcceptsBareArray(t *testing.T) {
	entries, err := parseHashlistJSON(`[{"filename":"Show.S01E01.mkv","hash":"abc","bytes":100}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Filename != "Show.S01E01.mkv" {
		t.Errorf("got %+v", entries)
	}
}

func TestParseHashlistJSON_AcceptsTorrentsObject(t *testing.T) {
	entries, err := parseHashlistJSON(`{"torrents":[{"filename":"Movie.2020.mkv","hash":"def","bytes":200}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Hash != "def" {
		t.Errorf("got %+v", entries)
	}
}

func TestParseHashlistJSON_RejectsGarbage(t *testing.T) {
	if _, err := parseHashlistJSON("not json"); err == nil {
		t.Errorf("expected an error for invalid json")
	}
}
