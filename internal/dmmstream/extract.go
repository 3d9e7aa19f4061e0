package dmmstream

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const hashlistSrcPrefix = "https://debridmediamanager.com/hashlist#"

// rawTorrentEntry is one element of the decoded hashlist JSON payload.
type rawTorrentEntry struct {
	Filename string `json:"filename"`
	Hash     string `json:"hash"`
	Bytes    int64  `json:"bytes"`
}

// extractTorrentEntries locates the embedded hashlist payload in an HTML
// page, decodes it, and parses it into its raw torrent entries. Returns
// found=false when the page carries no hashlist iframe at all.
func extractTorrentEntries(pageSource string) ([]rawTorrentEntry, bool, error) {
	hash, found, err := findHashFragment(pageSource)
	if err != nil {
		return nil, false, fmt.Errorf("dmmstream: parse page html: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	units := decompressFromEncodedURIComponent(hash)
	if units == nil {
		return nil, true, fmt.Errorf("dmmstream: invalid hashlist payload")
	}
	jsonStr := utf16ToString(units)

	entries, err := parseHashlistJSON(jsonStr)
	if err != nil {
		return nil, true, fmt.Errorf("dmmstream: decode hashlist json: %w", err)
	}
	return entries, true, nil
}

// findHashFragment walks the page DOM for the DMM hashlist iframe and
// returns the fragment identifier carrying its encoded payload.
func findHashFragment(pageSource string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageSource))
	if err != nil {
		return "", false, err
	}

	var hash string
	var found bool
	doc.Find("iframe").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok || !strings.HasPrefix(src, hashlistSrcPrefix) {
			return true
		}
		hash = strings.TrimPrefix(src, hashlistSrcPrefix)
		found = true
		return false
	})

	return hash, found, nil
}

// parseHashlistJSON accepts either a bare JSON array of torrent entries or
// an object carrying them under a "torrents" key.
func parseHashlistJSON(jsonStr string) ([]rawTorrentEntry, error) {
	var arr []rawTorrentEntry
	if err := json.Unmarshal([]byte(jsonStr), &arr); err == nil {
		return arr, nil
	}

	var obj struct {
		Torrents []rawTorrentEntry `json:"torrents"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &obj); err != nil {
		return nil, err
	}
	return obj.Torrents, nil
}
