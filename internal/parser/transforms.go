package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const currentYearCeiling = 2027 // 2026 current year + 1, per §3 invariant

// parseIntTransform parses a decimal integer out of a clean match,
// rejecting non-numeric input instead of propagating an error.
func parseIntTransform(s string) (int, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// yearTransform enforces the 19xx/20xx + bounds invariant from §3.
// Later valid years win over earlier ones (see the ambiguous-year
// scenario in §8), so the current value is simply overwritten.
func yearTransform(s string, _ *int) (*int, bool) {
	n, ok := parseIntTransform(s)
	if !ok {
		return nil, false
	}
	if n < 1900 || n > currentYearCeiling {
		return nil, false
	}
	return &n, true
}

// dateFormats lists the accepted input layouts, tried in order, mirroring
// convert_months/date_from_formats in the source transform set.
var dateFormats = []string{
	"2006.01.02",
	"2006-01-02",
	"2006/01/02",
	"01.02.2006",
	"01-02-2006",
	"02.01.2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2006 01 02",
}

// dateTransform parses a release date into canonical YYYY-MM-DD form,
// rejecting anything that doesn't form a valid Gregorian calendar date.
func dateTransform(raw string, _ string) (string, bool) {
	cleaned := strings.NewReplacer("_", " ", ",", "").Replace(raw)
	cleaned = strings.TrimSpace(cleaned)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// resolutionAliases maps loose resolution tokens (pixel dimensions,
// marketing aliases) onto a single canonical resolution string.
var resolutionAliases = map[string]string{
	"4k":        "2160p",
	"uhd":       "2160p",
	"8k":        "4320p",
	"qhd":       "1440p",
	"fhd":       "1080p",
	"hd":        "720p",
	"3840x2160": "2160p",
	"1920x1080": "1080p",
	"1280x720":  "720p",
	"720x480":   "480p",
	"640x480":   "480p",
}

// resolutionTransform normalizes a matched resolution token.
func resolutionTransform(raw string, _ string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := resolutionAliases[lower]; ok {
		return alias, true
	}
	if strings.HasSuffix(lower, "p") || strings.HasSuffix(lower, "i") {
		return lower, true
	}
	return lower + "p", true
}

// rangeTransform expands a handler match like "1-3" or "1~3" into the
// inclusive integer sequence it denotes, used for season/episode ranges.
func rangeTransform(raw string) ([]int, bool) {
	sep := "-"
	if strings.ContainsAny(raw, "~") {
		sep = "~"
	}
	parts := strings.SplitN(raw, sep, 2)
	if len(parts) != 2 {
		if n, ok := parseIntTransform(raw); ok {
			return []int{n}, true
		}
		return nil, false
	}
	lo, okLo := parseIntTransform(parts[0])
	hi, okHi := parseIntTransform(parts[1])
	if !okLo || !okHi || lo > hi || hi-lo > 100 {
		return nil, false
	}
	out := make([]int, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, n)
	}
	return out, true
}

// uniqAppendString appends s to list if not already present.
func uniqAppendString(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

// uniqAppendInt appends n to list if not already present.
func uniqAppendInt(list []int, n int) []int {
	for _, existing := range list {
		if existing == n {
			return list
		}
	}
	return append(list, n)
}

// uniqAppendLanguage appends l to list if not already present.
func uniqAppendLanguage(list []Language, l Language) []Language {
	for _, existing := range list {
		if existing == l {
			return list
		}
	}
	return append(list, l)
}

// replaceValue is the "const_value" transform: the match is discarded
// and a fixed value substituted, used for alias handlers (e.g. "ATVP" -> AppleTV).
func replaceValue[T any](value T) func(string, T) (T, bool) {
	return func(string, T) (T, bool) { return value, true }
}

// boolTrue is true_if_found: any match sets the field true.
func boolTrue(string, bool) (bool, bool) { return true, true }

// identity passes the clean match through unchanged.
func identity(s string, _ string) (string, bool) { return s, true }

// valueTemplate implements the `$1`-substitution "value" transform used
// when a handler's regex has no capture group but wants to reformat
// the whole match, e.g. "Episode.{1,2}" -> "$1".
func valueTemplate(template string) func(string, string) (string, bool) {
	return func(s string, _ string) (string, bool) {
		return strings.ReplaceAll(template, "$1", s), true
	}
}

// sizeTransform normalizes a size token (e.g. "1.3GB") into the
// canonical "<number><unit>" form used by the size field.
func sizeTransform(raw string, _ string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, " ", "")
	return s, s != ""
}

// bitrateString prefixes a plain number with its unit, grounded in the
// Kbps/Mbps bitrate handler forms.
func bitrateString(raw, unit string) (string, bool) {
	return fmt.Sprintf("%s%s", strings.TrimSpace(raw), unit), true
}
