package search

import (
	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// QueryParser turns free text into a structured NLU result.
type QueryParser interface {
	Parse(text string) query.Result
}

// Catalog is the read-only view the search service needs.
type Catalog interface {
	All() []vehicle.Vehicle
	Len() int
	FuzzySearch(text string, limit int) []vehicle.Vehicle
}
