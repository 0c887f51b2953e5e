package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fakhrymubarak/weather-app-api/internal/model"
)

// Searcher turns a search-box query into city matches. Callers depend on this
// interface so a debounced or cancellable strategy can replace Direct.
type Searcher interface {
	Search(ctx context.Context, query string) []model.CityMatch
}

// PlaceLookup is the provider call a Searcher wraps.
type PlaceLookup interface {
	SearchPlaces(ctx context.Context, query string) []model.CityMatch
}

// Direct issues one provider lookup per call. Earlier calls are not cancelled, so
// a slow response may arrive after a newer one.
type Direct struct {
	lookup    PlaceLookup
	minLength int
}

func NewDirect(lookup PlaceLookup, minLength int) *Direct {
	if minLength < 1 {
		minLength = 1
	}
	return &Direct{lookup: lookup, minLength: minLength}
}

// Search returns nothing, without calling the provider, for queries shorter than the minimum.
func (d *Direct) Search(ctx context.Context, query string) []model.CityMatch {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < d.minLength {
		return nil
	}
	return d.lookup.SearchPlaces(ctx, q)
}

var _ Searcher = (*Direct)(nil)
