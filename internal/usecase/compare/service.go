// Package compare implements the two-vehicle comparison entry point,
// from free text or explicit identifiers, with suggestions when a
// subject cannot be resolved.
package compare

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/domain/vehicle"
	"github.com/drivelane/showroom/internal/metrics"
)

// MaxSuggestions caps the suggestion list returned on resolution failure.
const MaxSuggestions = 5

// Side is one fully resolved comparison side.
type Side struct {
	Vehicle vehicle.Vehicle      `json:"vehicle"`
	Color   vehicle.ColorVariant `json:"color"`
}

// Differences holds second-minus-first deltas for the headline specs.
type Differences struct {
	Price       float64 `json:"price"`
	CombinedMPG int     `json:"combined_mpg"`
	Horsepower  int     `json:"horsepower"`
}

// Result is the comparison outcome. When Resolved is false the sides
// are zero and Suggestions carries up to MaxSuggestions candidates for
// the caller to present; a failed resolution is a normal value, not an
// error.
type Result struct {
	Resolved    bool              `json:"resolved"`
	First       Side              `json:"first,omitempty"`
	Second      Side              `json:"second,omitempty"`
	Differences Differences       `json:"differences,omitempty"`
	Suggestions []vehicle.Vehicle `json:"suggestions,omitempty"`
}

// Service handles vehicle comparisons.
type Service struct {
	catalog Catalog
	parser  ComparisonParser
	logger  *zap.Logger
}

// New creates a compare service.
func New(catalog Catalog, parser ComparisonParser, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, parser: parser, logger: logger}
}

// CompareText resolves a free-text comparison query.
func (s *Service) CompareText(ctx context.Context, text string) (Result, error) {
	cmp := s.parser.ParseComparison(text)
	if cmp == nil || !cmp.First.Resolved() || !cmp.Second.Resolved() {
		metrics.ComparisonsTotal.WithLabelValues("unresolved").Inc()
		s.logger.Info("comparison unresolved", zap.String("query", text))
		return Result{Resolved: false, Suggestions: s.suggest(text)}, nil
	}

	first := Side{Vehicle: *cmp.First.Vehicle}
	second := Side{Vehicle: *cmp.Second.Vehicle}
	first.Color = s.sideColor(*cmp.First.Vehicle, colorName(cmp.First.Color))
	second.Color = s.sideColor(*cmp.Second.Vehicle, colorName(cmp.Second.Color))

	metrics.ComparisonsTotal.WithLabelValues("resolved").Inc()
	return s.build(first, second), nil
}

// CompareByIDs resolves an explicit pair of vehicle identifiers with
// optional explicit color names.
func (s *Service) CompareByIDs(ctx context.Context, id1, id2, color1, color2 string) (Result, error) {
	v1, err := s.catalog.FindByID(id1)
	if err != nil {
		return Result{}, fmt.Errorf("first vehicle: %w", err)
	}
	v2, err := s.catalog.FindByID(id2)
	if err != nil {
		return Result{}, fmt.Errorf("second vehicle: %w", err)
	}

	first := Side{Vehicle: v1, Color: s.sideColor(v1, color1)}
	second := Side{Vehicle: v2, Color: s.sideColor(v2, color2)}

	metrics.ComparisonsTotal.WithLabelValues("resolved").Inc()
	return s.build(first, second), nil
}

func (s *Service) build(first, second Side) Result {
	return Result{
		Resolved: true,
		First:    first,
		Second:   second,
		Differences: Differences{
			Price:       second.Vehicle.MSRP - first.Vehicle.MSRP,
			CombinedMPG: second.Vehicle.MPG.Combined - first.Vehicle.MPG.Combined,
			Horsepower:  second.Vehicle.Engine.Horsepower - first.Vehicle.Engine.Horsepower,
		},
	}
}

func (s *Service) sideColor(v vehicle.Vehicle, nameOrCode string) vehicle.ColorVariant {
	return s.catalog.ResolveColor(v, nameOrCode)
}

func (s *Service) suggest(text string) []vehicle.Vehicle {
	return s.catalog.FuzzySearch(text, MaxSuggestions)
}

func colorName(cv *vehicle.ColorVariant) string {
	if cv == nil {
		return ""
	}
	return cv.Name
}
