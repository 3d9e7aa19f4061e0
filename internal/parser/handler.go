package parser

// RegexHandlerOptions controls how a single handler's match affects the
// working title and the overall parse, mirroring handler_wrapper's
// RegexHandlerOptions.
type RegexHandlerOptions struct {
	// SkipIfAlreadyFound skips running the handler entirely once its
	// target field already carries a value. Defaults to true.
	SkipIfAlreadyFound bool
	// SkipFromTitle prevents the match from narrowing the title window.
	SkipFromTitle bool
	// SkipIfFirst rejects the match if every other recorded match
	// starts later in the title than this one (weak-before-strong guard).
	SkipIfFirst bool
	// Remove splices the raw match out of the working title in place.
	Remove bool
}

// defaultOptions returns handler options with SkipIfAlreadyFound set,
// matching RegexHandlerOptions::default() in the source.
func defaultOptions() RegexHandlerOptions {
	return RegexHandlerOptions{SkipIfAlreadyFound: true}
}

// Handler is a named unit combining a regex, a field accessor, a
// transform, and an options bag. Fields are type-erased behind closures
// so a single ordered []*Handler slice can hold accessors for every
// field type in ParsedTitle without a giant reflective dispatch table.
type Handler struct {
	name    string
	regex   regexFinder
	options RegexHandlerOptions
	isSet   func(*ParsedTitle) bool
	compute func(p *ParsedTitle, cleanMatch string) (any, bool)
	commit  func(p *ParsedTitle, value any)
}

// regexFinder is satisfied by the regexp2-backed matcher used by every
// handler; kept as an interface so tests can stub matches directly.
type regexFinder interface {
	findFirst(s string) (found, bool)
}

type regexp2Finder struct{ pattern string }

func (f regexp2Finder) findFirst(s string) (found, bool) {
	return findFirst(re(f.pattern), s)
}

// isSetAny implements PropertyIsSet for every concrete field type used
// across the handler table.
func isSetAny(v any) bool {
	switch x := v.(type) {
	case string:
		return x != ""
	case bool:
		return x
	case *int:
		return x != nil
	case []string:
		return len(x) > 0
	case []int:
		return len(x) > 0
	case []Language:
		return len(x) > 0
	case Quality:
		return x.IsSet()
	case Codec:
		return x.IsSet()
	case Network:
		return x.IsSet()
	default:
		return false
	}
}

// newHandler builds a Handler for field type T, using get to reach the
// target field and transform to turn a clean match plus the field's
// current value into a new value, or reject the match (ok=false).
func newHandler[T any](
	name, pattern string,
	get func(*ParsedTitle) *T,
	transform func(clean string, current T) (T, bool),
	opts RegexHandlerOptions,
) *Handler {
	return &Handler{
		name:    name,
		regex:   regexp2Finder{pattern: pattern},
		options: opts,
		isSet: func(p *ParsedTitle) bool {
			return isSetAny(any(*get(p)))
		},
		compute: func(p *ParsedTitle, clean string) (any, bool) {
			nv, ok := transform(clean, *get(p))
			if !ok {
				return nil, false
			}
			return nv, true
		},
		commit: func(p *ParsedTitle, value any) {
			*get(p) = value.(T)
		},
	}
}

// handlerMatchResult is returned by invokeHandler, mirroring HandlerResult.
type handlerMatchResult struct {
	rawMatch       string
	matchIndex     int
	remove         bool
	skipFromTitle  bool
	matchedHandler bool
}

// invokeHandler runs a single handler against the working title,
// implementing §4.1 steps 1-6 of the handler invocation loop. matched
// holds one Match per handler name seen so far in this parse call only.
func invokeHandler(h *Handler, result *ParsedTitle, title string, matched map[string]Match) (handlerMatchResult, bool) {
	if h.isSet(result) && h.options.SkipIfAlreadyFound {
		return handlerMatchResult{}, false
	}

	m, ok := h.regex.findFirst(title)
	if !ok {
		return handlerMatchResult{}, false
	}

	clean := m.cleanMatch()
	value, ok := h.compute(result, clean)
	if !ok {
		return handlerMatchResult{}, false
	}

	if h.options.SkipIfFirst && len(matched) > 0 {
		allLater := true
		for k, v := range matched {
			if k == h.name {
				continue
			}
			if m.start >= v.MatchIndex {
				allLater = false
				break
			}
		}
		if allLater {
			return handlerMatchResult{}, false
		}
	}

	h.commit(result, value)
	matched[h.name] = Match{RawMatch: m.full, MatchIndex: m.start}

	isBeforeTitle := false
	if bt, ok := findFirst(beforeTitleRegex, title); ok && bt.hasG {
		isBeforeTitle = containsSubstring(bt.group, m.full)
	}

	return handlerMatchResult{
		rawMatch:       m.full,
		matchIndex:     m.start,
		remove:         h.options.Remove,
		skipFromTitle:  isBeforeTitle || h.options.SkipFromTitle,
		matchedHandler: true,
	}, true
}

func containsSubstring(haystack, needle string) bool {
	return len(needle) > 0 && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}

var beforeTitleRegex = re(`^\[(.*?)\]`)
