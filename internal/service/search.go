package service

import "github.com/funkypenguin/zilean-go/internal/catalog"

// SearchService exposes the IMDb catalog correlator to callers.
type SearchService struct {
	correlator *catalog.Correlator
}

// NewSearchService wraps a correlator.
func NewSearchService(correlator *catalog.Correlator) *SearchService {
	return &SearchService{correlator: correlator}
}

// Search correlates a title against the catalog, returning up to five
// ranked matches.
func (s *SearchService) Search(queryTitle string, category catalog.Category, year int32) ([]catalog.Match, error) {
	return s.correlator.Search(queryTitle, category, year)
}
