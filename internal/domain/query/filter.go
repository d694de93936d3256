// Package query defines the structured output of the NLU layer: intents,
// filter sets, price ranges and parse results.
package query

import (
	"strings"

	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// PriceRange is an optional price constraint. Nil bounds are unconstrained.
type PriceRange struct {
	Min *float64
	Max *float64
}

// Contains reports whether price satisfies the range.
func (r PriceRange) Contains(price float64) bool {
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// FilterSet holds the optional constraints extracted from a query.
// A nil field means unconstrained, never "match nothing".
type FilterSet struct {
	Type        *string
	Category    *string
	Drivetrain  *string
	FuelType    *string
	Electrified *bool
	Make        *string
	Model       *string
	Price       *PriceRange
	MinMPG      *int
	Color       *string
}

// IsEmpty reports whether no constraint is set.
func (f FilterSet) IsEmpty() bool {
	return f.Type == nil && f.Category == nil && f.Drivetrain == nil &&
		f.FuelType == nil && f.Electrified == nil && f.Make == nil &&
		f.Model == nil && f.Price == nil && f.MinMPG == nil && f.Color == nil
}

// Matches reports whether v satisfies every set constraint.
// String constraints compare case-insensitively; the price constraint
// applies to MSRP; the color constraint is substring-tolerant against
// the vehicle's color variants.
func (f FilterSet) Matches(v vehicle.Vehicle) bool {
	if f.Type != nil && !strings.EqualFold(*f.Type, v.BodyType) {
		return false
	}
	if f.Category != nil && !strings.EqualFold(*f.Category, v.Category) {
		return false
	}
	if f.Drivetrain != nil && !strings.EqualFold(*f.Drivetrain, v.Drivetrain) {
		return false
	}
	if f.FuelType != nil && !strings.EqualFold(*f.FuelType, v.FuelType) {
		return false
	}
	if f.Electrified != nil && *f.Electrified != v.Electrified {
		return false
	}
	if f.Make != nil && !strings.EqualFold(*f.Make, v.Make) {
		return false
	}
	if f.Model != nil && !strings.EqualFold(*f.Model, v.Model) {
		return false
	}
	if f.Price != nil && !f.Price.Contains(v.MSRP) {
		return false
	}
	if f.MinMPG != nil && v.MPG.Combined < *f.MinMPG {
		return false
	}
	if f.Color != nil && !hasColor(v, *f.Color) {
		return false
	}
	return true
}

func hasColor(v vehicle.Vehicle, color string) bool {
	want := strings.ToLower(color)
	for _, c := range v.Colors() {
		if strings.Contains(strings.ToLower(c.Name), want) ||
			strings.EqualFold(c.Code, color) {
			return true
		}
	}
	return false
}
