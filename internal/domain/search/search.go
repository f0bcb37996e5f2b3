package search

import (
	"context"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/skyshop/internal/domain/catalog"
)

// Result is the projection of a matching entity.
type Result struct {
	ID             string
	ContentType    catalog.ContentType
	Name           string
	Representation string
}

// Source provides the unified view over every searchable entity.
type Source interface {
	AllSearchable() []catalog.Searchable
}

// Service matches queries against the search terms of catalog entities.
type Service struct {
	source Source
}

// NewService creates a search Service reading from source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Search returns every entity whose search term contains query. Matching is
// case-sensitive and exact: no trimming or normalisation is applied, so an
// empty query matches everything. Results keep the source order.
func (s *Service) Search(ctx context.Context, query string) []Result {
	items := s.source.AllSearchable()

	results := make([]Result, 0, len(items))
	for _, item := range items {
		if !strings.Contains(item.SearchTerm(), query) {
			continue
		}
		results = append(results, newResult(item))
	}

	zctx.From(ctx).Debug("Search",
		zap.String("query", query),
		zap.Int("scanned", len(items)),
		zap.Int("matched", len(results)),
	)
	return results
}

func newResult(item catalog.Searchable) Result {
	return Result{
		ID:             item.ID().String(),
		ContentType:    item.ContentType(),
		Name:           item.DisplayName(),
		Representation: catalog.Describe(item),
	}
}
