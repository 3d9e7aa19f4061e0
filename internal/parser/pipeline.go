package parser

import (
	"fmt"
	"strings"
)

// Pipeline holds an ordered, immutable list of handlers built once at
// process startup and shared read-only across every Parse/ParseBatch call.
type Pipeline struct {
	handlers []*Handler
}

// NewPipeline returns a pipeline over the given ordered handler list.
// Ordering is the contract: earlier handlers narrow the title window for
// later, weaker ones.
func NewPipeline(handlers []*Handler) *Pipeline {
	return &Pipeline{handlers: handlers}
}

// Parse runs the full handler pipeline against raw and returns the
// resulting ParsedTitle, recovering from any handler panic into a
// ParseError so a single malformed pattern never takes down a batch.
func (p *Pipeline) Parse(raw string) (result *ParsedTitle, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ParseError{Kind: ErrorKindPanic, Message: fmt.Sprintf("panic while parsing title: %v", r)}
		}
	}()

	title := strings.ReplaceAll(raw, "_", " ")
	res := &ParsedTitle{}
	matched := make(map[string]Match)
	endOfTitle := len(title)

	for _, h := range p.handlers {
		mr, ok := invokeHandler(h, res, title, matched)
		if !ok {
			continue
		}

		if mr.remove {
			title = spliceOut(title, mr.rawMatch)
		}

		if !mr.skipFromTitle && mr.matchIndex > 0 && mr.matchIndex < endOfTitle {
			endOfTitle = mr.matchIndex
		}
	}

	if endOfTitle > len(title) {
		endOfTitle = len(title)
	}
	title = title[:endOfTitle]
	res.Title = cleanTitle(title)

	return res, nil
}

// spliceOut removes the first occurrence of match from title, mirroring
// the in-place splice a Remove-flagged handler performs.
func spliceOut(title, match string) string {
	idx := strings.Index(title, match)
	if idx < 0 {
		return title
	}
	return title[:idx] + title[idx+len(match):]
}

// ParseResult pairs a parsed title with any parse error, used by ParseBatch
// to report per-element failures without aborting the batch.
type ParseResult struct {
	Title *ParsedTitle
	Err   error
}

// ParseBatch parses every title in titles using a bounded worker pool,
// preserving input order in the returned slice. A panic or failure on
// one element never affects any other.
func (p *Pipeline) ParseBatch(titles []string, workers int) []ParseResult {
	if workers <= 0 {
		workers = 4
	}
	results := make([]ParseResult, len(titles))
	jobs := make(chan int)
	done := make(chan struct{})

	worker := func() {
		for i := range jobs {
			res, err := p.Parse(titles[i])
			results[i] = ParseResult{Title: res, Err: err}
		}
		done <- struct{}{}
	}

	for range min(workers, max(1, len(titles))) {
		go worker()
	}

	go func() {
		for i := range titles {
			jobs <- i
		}
		close(jobs)
	}()

	running := min(workers, max(1, len(titles)))
	for range running {
		<-done
	}

	return results
}
