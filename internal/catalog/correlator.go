package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/blevesearch/bleve/v2"
)

// Correlator executes the §4.2 scoring query against an Index and applies
// the post-query filter cascade that rejects near-matches.
type Correlator struct {
	index         *Index
	minimumScore  float64
}

// NewCorrelator returns a Correlator reading idx, rejecting results scoring
// below minimumScore relative to the top hit (0 selects the §4.2 default).
func NewCorrelator(idx *Index, minimumScore float64) *Correlator {
	if minimumScore <= 0 {
		minimumScore = defaultMinimumScore
	}
	return &Correlator{index: idx, minimumScore: minimumScore}
}

type scored struct {
	imdbID string
	score  float64
	title  string
	year   int32
}

// Search correlates queryTitle (already normalized by the caller, or
// normalized here defensively) against category and year (0 = unknown),
// returning up to 5 ranked matches after the filter cascade.
func (c *Correlator) Search(queryTitle string, category Category, year int32) ([]Match, error) {
	normalized := Normalize(queryTitle)
	if normalized == "" || string(category) == "" {
		return nil, nil
	}

	idx := c.index.current()
	if idx == nil {
		return nil, nil
	}

	req := buildSearchRequest(normalized, category, year)
	res, err := idx.Search(req)
	if err != nil {
		return nil, err
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}

	hits := hydrateHits(res)
	hits = filterCascade(hits, normalized, c.minimumScore)
	if len(hits) == 0 {
		return nil, nil
	}

	matches := make([]Match, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, Match{
			ImdbID: h.imdbID,
			Title:  h.title,
			Year:   h.year,
			Score:  h.score,
		})
	}
	return matches, nil
}

func buildSearchRequest(normalized string, category Category, year int32) *bleve.SearchRequest {
	words := tokens(normalized)

	must := bleve.NewMatchQuery(string(category))
	must.SetField("category")

	boolQ := bleve.NewBooleanQuery()
	boolQ.AddMust(must)

	exact := bleve.NewMatchQuery(normalized)
	exact.SetField("normalized_title")
	boolQ.AddShould(exact)

	if len(words) >= 2 {
		phrase := bleve.NewMatchPhraseQuery(normalized)
		phrase.SetField("normalized_title")
		phrase.SetBoost(2.0)
		boolQ.AddShould(phrase)
	}

	for _, w := range words {
		fuzzy := bleve.NewFuzzyQuery(w)
		fuzzy.SetField("normalized_title")
		fuzzy.Fuzziness = 1
		fuzzy.Prefix = minInt(len(w), 2)
		boolQ.AddShould(fuzzy)
	}

	if year > 0 {
		lo, hi := float64(year-1), float64(year+1)
		yr := bleve.NewNumericRangeQuery(&lo, &hi)
		yr.SetField("year")
		boolQ.AddShould(yr)
	}

	req := bleve.NewSearchRequestOptions(boolQ, maxMatches, 0, false)
	req.Fields = []string{"title", "normalized_title", "year"}
	req.SortBy([]string{"-_score"})
	return req
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func hydrateHits(res *bleve.SearchResult) []scored {
	out := make([]scored, 0, len(res.Hits))
	for _, h := range res.Hits {
		title, _ := h.Fields["title"].(string)
		var year int32
		switch y := h.Fields["year"].(type) {
		case float64:
			year = int32(y)
		case string:
			if n, err := strconv.Atoi(y); err == nil {
				year = int32(n)
			}
		}
		out = append(out, scored{imdbID: h.ID, score: h.Score, title: title, year: year})
	}
	return out
}

// filterCascade runs the §4.2 seven-stage post-filter: score threshold,
// token-overlap, first-three-token position match, last-two-token
// intersection, last-token equality, Levenshtein sort, score
// renormalization. Any stage emptying the list short-circuits to empty.
func filterCascade(hits []scored, queryNormalized string, minimumScore float64) []scored {
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	topScore := hits[0].score

	// 1. score threshold
	hits = filterSlice(hits, func(h scored) bool { return h.score >= topScore*minimumScore })
	if len(hits) == 0 {
		return nil
	}

	qTokens := tokens(queryNormalized)

	// 2. >= 2 token overlap
	if len(qTokens) >= 2 {
		qSet := toSet(qTokens)
		hits = filterSlice(hits, func(h scored) bool {
			return overlapCount(toSet(tokens(Normalize(h.title))), qSet) >= 2
		})
		if len(hits) == 0 {
			return nil
		}
	}

	// 3. first-three-token position match
	if len(qTokens) >= 3 {
		qFirst3 := qTokens[:3]
		hits = filterSlice(hits, func(h scored) bool {
			rTokens := tokens(Normalize(h.title))
			matches := 0
			for i := 0; i < 3 && i < len(rTokens); i++ {
				if rTokens[i] == qFirst3[i] {
					matches++
				}
			}
			return matches >= 2
		})
		if len(hits) == 0 {
			return nil
		}
	}

	// 4. last-two-token intersection
	if len(qTokens) >= 2 {
		qLast2 := toSet(qTokens[len(qTokens)-2:])
		hits = filterSlice(hits, func(h scored) bool {
			rTokens := tokens(Normalize(h.title))
			if len(rTokens) < 2 {
				return false
			}
			return overlapCount(toSet(rTokens[len(rTokens)-2:]), qLast2) > 0
		})
		if len(hits) == 0 {
			return nil
		}
	}

	// 5. last-token equality
	if len(qTokens) > 0 {
		qLast := qTokens[len(qTokens)-1]
		hits = filterSlice(hits, func(h scored) bool {
			rTokens := tokens(Normalize(h.title))
			if len(rTokens) == 0 {
				return false
			}
			return rTokens[len(rTokens)-1] == qLast
		})
		if len(hits) == 0 {
			return nil
		}
	}

	// 6. Levenshtein sort ascending
	lowerQuery := strings.ToLower(queryNormalized)
	levParams := levenshtein.NewParams()
	sort.SliceStable(hits, func(i, j int) bool {
		di := levenshtein.Distance(strings.ToLower(hits[i].title), lowerQuery, levParams)
		dj := levenshtein.Distance(strings.ToLower(hits[j].title), lowerQuery, levParams)
		return di < dj
	})

	// 7. renormalize scores so the surviving top result is 1.0
	newTop := hits[0].score
	if newTop > 0 {
		for i := range hits {
			hits[i].score /= newTop
		}
	}

	if len(hits) > maxMatches {
		hits = hits[:maxMatches]
	}
	return hits
}

func filterSlice(in []scored, keep func(scored) bool) []scored {
	out := in[:0]
	for _, h := range in {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func toSet(tokens []string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func overlapCount(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

