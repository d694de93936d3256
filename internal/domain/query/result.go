package query

import "github.com/drivelane/showroom/internal/domain/vehicle"

// Subject is one side of a comparison. Vehicle is nil when the side
// could not be resolved against the catalog (a resolution failure is
// a normal value here, not an error).
type Subject struct {
	Text    string
	Vehicle *vehicle.Vehicle
	Color   *vehicle.ColorVariant
}

// Resolved reports whether the subject matched a catalog entry.
func (s Subject) Resolved() bool { return s.Vehicle != nil }

// Comparison is a two-subject comparison payload. Only two-way splits
// are supported; extra subjects in the input are discarded.
type Comparison struct {
	First  Subject
	Second Subject
}

// Result is the structured outcome of parsing one query.
// Confidence is an additive diagnostic score in [0,1]; callers must
// not branch on it.
type Result struct {
	Intent     Intent
	Filters    FilterSet
	Comparison *Comparison
	Confidence float64
}
