package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// nonLatinRanges are the unicode blocks preserved by the cleaner's
// punctuation-stripping step, matching §4.1's preserved-ranges list.
const nonLatinRanges = `` +
	`\x{3400}-\x{4DBF}\x{4E00}-\x{9FFF}\x{F900}-\x{FAFF}` + // CJK Unified
	`\x{3040}-\x{30FF}\x{FF66}-\x{FF9F}` + // Hiragana/Katakana
	`\x{0400}-\x{04FF}` + // Cyrillic
	`\x{0600}-\x{06FF}\x{0750}-\x{077F}` + // Arabic
	`\x{0C80}-\x{0CFF}` + // Kannada
	`\x{0D00}-\x{0D7F}` + // Malayalam
	`\x{0E00}-\x{0E7F}` // Thai

var (
	movieMarkerRe     = std(`(?i)[\[(]movie[\])]`)
	leadingPunctRe     = std(`^[^\w` + nonLatinRanges + `#\[【★]+`)
	trailingPunctRe    = std(`[^\w` + nonLatinRanges + `#\]】★]+$`)
	russianCastRe      = std(`\s*\([^)]*[\x{0400}-\x{04FF}][^)]*\)\s*$`)
	decorativeWrapRe   = std(`^[\[【★]+\s*(.*?)\s*[\]】★]+$`)
	altTitleSlashRe    = std(`^(.*?)[/|](.*)$`)
	nonLatinRunRe      = regexp.MustCompile(`[` + nonLatinRanges + `]`)
	trailingBracketRe  = std(`\]\s*$`)
	emptyBracketsRe    = std(`[\[(][\s.,_-]*[\])]`)
	trailingMp3Re      = std(`(?i)\s*mp3\s*$`)
	dotsOnlyRe         = std(`^[^\s]*\.[^\s]*$`)
	trailingJunkRunRe  = std(`[\s\-:./\\]+$`)
	multiSpaceRe       = std(`\s{2,}`)
)

// cleanTitle runs the ordered, idempotent 14-step title cleanup from §4.1.
func cleanTitle(title string) string {
	// 1. underscores -> spaces (already applied before the pipeline runs,
	// re-applied here for idempotency on titles re-cleaned later).
	title = strings.ReplaceAll(title, "_", " ")

	// 2. remove explicit [movie]/(movie) markers.
	title = movieMarkerRe.ReplaceAllString(title, "")

	// 3. strip disallowed leading/trailing punctuation.
	title = leadingPunctRe.ReplaceAllString(title, "")
	title = trailingPunctRe.ReplaceAllString(title, "")

	// 4. strip trailing Russian cast parenthetical.
	title = russianCastRe.ReplaceAllString(title, "")

	// 5. unwrap leading/trailing decorative-bracket wrappers.
	if m := decorativeWrapRe.FindStringSubmatch(title); m != nil {
		title = m[1]
	}

	// 6. strip alt-titles separated by / or | when either side is non-Latin.
	if m := altTitleSlashRe.FindStringSubmatch(title); m != nil {
		left, right := m[1], m[2]
		if nonLatinRunRe.MatchString(left) || nonLatinRunRe.MatchString(right) {
			if nonLatinRunRe.MatchString(left) && !nonLatinRunRe.MatchString(right) {
				title = right
			} else {
				title = left
			}
		}
	}

	// 7. strip runs beginning Latin/ending non-Latin or vice versa.
	title = stripMixedScriptRun(title)

	// 8. drop a final ].
	title = strings.TrimSuffix(title, "]")

	// 9. drop empty bracket pairs / punctuation-only parentheticals.
	title = emptyBracketsRe.ReplaceAllString(title, "")

	// 10. drop trailing literal mp3.
	title = trailingMp3Re.ReplaceAllString(title, "")

	// 11. unbalanced brackets: strip all instances of any unbalanced pair.
	title = stripUnbalancedBrackets(title)

	// 12. no spaces but has dots -> replace dots with spaces.
	if !strings.Contains(title, " ") && strings.Contains(title, ".") {
		title = strings.ReplaceAll(title, ".", " ")
	}

	// 13. collapse trailing " -:./\ " runs.
	title = trailingJunkRunRe.ReplaceAllString(title, "")

	// 14. collapse multiple spaces, trim.
	title = multiSpaceRe.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)

	return title
}

// stripMixedScriptRun drops a leading or trailing run of characters whose
// script flips between Latin and one of the preserved non-Latin ranges,
// matching step 7's "Latin start / non-Latin end or vice versa" rule. The
// dropped run spans every non-Latin word at that end together with the
// spaces between them, so a second pass finds nothing more to strip.
func stripMixedScriptRun(title string) string {
	runes := []rune(title)
	if len(runes) == 0 {
		return title
	}
	startNonLatin := nonLatinRunRe.MatchString(string(runes[0]))
	endNonLatin := nonLatinRunRe.MatchString(string(runes[len(runes)-1]))
	if startNonLatin == endNonLatin {
		return title
	}
	inRun := func(r rune) bool { return unicode.IsSpace(r) || nonLatinRunRe.MatchString(string(r)) }
	// find the longest non-Latin/space run from the "foreign" end and drop it.
	if startNonLatin {
		i := 0
		for i < len(runes) && inRun(runes[i]) {
			i++
		}
		return string(runes[i:])
	}
	i := len(runes)
	for i > 0 && inRun(runes[i-1]) {
		i--
	}
	return string(runes[:i])
}

var bracketPairs = []struct{ open, close byte }{
	{'(', ')'}, {'[', ']'}, {'{', '}'},
}

// stripUnbalancedBrackets removes every instance of a bracket character
// from title when its open/close counts are unequal.
func stripUnbalancedBrackets(title string) string {
	for _, pair := range bracketPairs {
		opens := strings.Count(title, string(pair.open))
		closes := strings.Count(title, string(pair.close))
		if opens != closes {
			title = strings.ReplaceAll(title, string(pair.open), "")
			title = strings.ReplaceAll(title, string(pair.close), "")
		}
	}
	return title
}
