package nlu

import (
	"github.com/drivelane/showroom/internal/catalog"
	"github.com/drivelane/showroom/internal/domain/query"
)

// Confidence scoring: a heuristic additive diagnostic, not a
// probability. Callers must never branch on it.
const (
	confidenceBase    = 0.5
	confidenceVehicle = 0.3
	confidenceColor   = 0.1
	confidencePrice   = 0.1
)

// Parser composes the extractors and the intent classifier into one
// NLU pass over a query. It holds only the injected catalog index and
// is safe for concurrent use.
type Parser struct {
	idx *catalog.Index
}

// NewParser creates a parser over the given catalog index.
func NewParser(idx *catalog.Index) *Parser {
	return &Parser{idx: idx}
}

// Parse runs intent classification and the filter, price and color
// extractors on every query; the comparison parser runs only for
// compare intent.
func (p *Parser) Parse(text string) query.Result {
	res := query.Result{
		Intent:  ClassifyIntent(text),
		Filters: ExtractFilters(text),
	}

	if pr := ExtractPriceRange(text); pr != nil {
		res.Filters.Price = pr
	}
	if color, ok := ExtractColor(text); ok {
		res.Filters.Color = ptr(color)
	}

	vehicleResolved := false
	if res.Intent == query.IntentCompare {
		res.Comparison = ParseComparison(text, p.idx)
		if res.Comparison != nil &&
			(res.Comparison.First.Resolved() || res.Comparison.Second.Resolved()) {
			vehicleResolved = true
		}
	} else if v, ok := ExtractModel(text, p.idx); ok {
		res.Filters.Model = ptr(v.Model)
		if res.Filters.Make == nil {
			res.Filters.Make = ptr(v.Make)
		}
		vehicleResolved = true
	}

	res.Confidence = confidenceBase
	if vehicleResolved {
		res.Confidence += confidenceVehicle
	}
	if res.Filters.Color != nil {
		res.Confidence += confidenceColor
	}
	if res.Filters.Price != nil {
		res.Confidence += confidencePrice
	}
	if res.Confidence > 1.0 {
		res.Confidence = 1.0
	}

	return res
}

// ParseComparison exposes the comparison split over the parser's index.
func (p *Parser) ParseComparison(text string) *query.Comparison {
	return ParseComparison(text, p.idx)
}
