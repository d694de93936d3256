// Package search implements the free-text search entry point: parse
// the query, filter the catalog snapshot, order the results.
package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/domain/vehicle"
	"github.com/drivelane/showroom/internal/metrics"
)

// DefaultLimit caps a search response when the caller passes no limit.
const DefaultLimit = 20

// Response is the search entry point's output contract: the extracted
// filters, the resolved vehicles and the classified intent.
type Response struct {
	Intent     query.Intent
	Filters    query.FilterSet
	VehicleIDs []string
	Vehicles   []vehicle.Vehicle
	Confidence float64
}

// Service handles free-text vehicle search.
type Service struct {
	parser  QueryParser
	catalog Catalog
	logger  *zap.Logger
	limit   int
}

// New creates a search service.
func New(parser QueryParser, catalog Catalog, logger *zap.Logger) *Service {
	return &Service{parser: parser, catalog: catalog, logger: logger, limit: DefaultLimit}
}

// WithLimit overrides the result cap.
func (s *Service) WithLimit(limit int) *Service {
	if limit > 0 {
		s.limit = limit
	}
	return s
}

// Search parses the text and returns every catalog vehicle matching the
// extracted filter set. A query that names a model is ordered by fuzzy
// relevance; otherwise catalog order is kept. An unconstrained parse
// returns everything rather than nothing.
func (s *Service) Search(ctx context.Context, text string) (Response, error) {
	res := s.parser.Parse(text)
	metrics.ParseRequestsTotal.WithLabelValues(string(res.Intent)).Inc()

	var candidates []vehicle.Vehicle
	if res.Filters.Model != nil {
		// Fuzzy order first, then apply the remaining constraints.
		candidates = s.catalog.FuzzySearch(text, s.catalog.Len())
	} else {
		candidates = s.catalog.All()
	}

	matched := make([]vehicle.Vehicle, 0, len(candidates))
	for _, v := range candidates {
		if res.Filters.Matches(v) {
			matched = append(matched, v)
		}
		if len(matched) >= s.limit {
			break
		}
	}

	ids := make([]string, len(matched))
	for i, v := range matched {
		ids[i] = v.ID
	}

	s.logger.Debug("search handled",
		zap.String("intent", string(res.Intent)),
		zap.Int("results", len(matched)),
		zap.Float64("confidence", res.Confidence),
	)

	return Response{
		Intent:     res.Intent,
		Filters:    res.Filters,
		VehicleIDs: ids,
		Vehicles:   matched,
		Confidence: res.Confidence,
	}, nil
}
