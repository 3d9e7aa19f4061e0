package parser

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// re compiles a case-insensitive regexp2 pattern, panicking at package
// init time on malformed patterns the way a lazy_static regex compile
// would abort process startup in the source.
func re(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.IgnoreCase)
}

// found is a single regex match together with its capture groups,
// mirroring the StringMatch wrapper the parser consults for group(1).
type found struct {
	full  string
	start int
	end   int
	group string
	hasG  bool
}

// findFirst returns the left-most match of r in s, or ok=false.
func findFirst(r *regexp2.Regexp, s string) (found, bool) {
	m, err := r.FindStringMatch(s)
	if err != nil || m == nil {
		return found{}, false
	}
	f := found{
		full:  m.String(),
		start: m.Index,
		end:   m.Index + m.Length,
	}
	if groups := m.Groups(); len(groups) > 1 {
		g := groups[1]
		if g.Length > 0 || len(g.Captures) > 0 {
			f.group = g.String()
			f.hasG = true
		}
	}
	return f, true
}

// cleanMatch returns capture group 1 when present, else the whole match,
// matching §4.1 step 3.
func (f found) cleanMatch() string {
	if f.hasG {
		return f.group
	}
	return f.full
}

// replaceAllBackref replaces every match of r in s with repl, where repl
// may contain `$1`-style group backreferences, mirroring
// replace_all_with_captures in the source regex extension.
func replaceAllBackref(r *regexp2.Regexp, s, repl string) string {
	out, err := r.Replace(s, strings.ReplaceAll(repl, "$1", "${1}"), -1, -1)
	if err != nil {
		return s
	}
	return out
}

// std is the stdlib regexp equivalent used by the title cleaner, which
// only needs RE2-safe patterns (no lookaround) and benefits from the
// faster engine for the many cleanup passes run per parse.
func std(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}
