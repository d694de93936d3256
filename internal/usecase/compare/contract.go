package compare

import (
	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// Catalog is the read-only view the compare service needs.
type Catalog interface {
	FindByID(id string) (vehicle.Vehicle, error)
	FuzzySearch(text string, limit int) []vehicle.Vehicle
	ResolveColor(v vehicle.Vehicle, nameOrCode string) vehicle.ColorVariant
}

// ComparisonParser splits a comparison query into two resolved subjects.
type ComparisonParser interface {
	ParseComparison(text string) *query.Comparison
}
