package catalog

import (
	"regexp"
	"strings"
)

var (
	ampersandRe     = regexp.MustCompile(`&`)
	punctStripRe    = regexp.MustCompile(`['":?!\[\](){}]`)
	dashUnderscoreRe = regexp.MustCompile(`[-._]`)
	commaRe         = regexp.MustCompile(`,`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a title into the comparable form used both when
// indexing catalog records and when correlating a query against them:
// lowercase, "&" spelled out, punctuation dropped, separators collapsed
// to spaces, whitespace collapsed and trimmed.
func Normalize(title string) string {
	s := strings.ToLower(title)
	s = ampersandRe.ReplaceAllString(s, " and ")
	s = punctStripRe.ReplaceAllString(s, "")
	s = commaRe.ReplaceAllString(s, "")
	s = dashUnderscoreRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// tokens splits a normalized title on whitespace.
func tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}
