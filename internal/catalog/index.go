// Package catalog provides the in-memory vehicle catalog index: lookup by
// id, fuzzy search by free text, and color resolution. The index is built
// once from an injected snapshot and is safe for concurrent readers.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/drivelane/showroom/internal/domain"
	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// Index is a read-only view over a loaded catalog snapshot.
type Index struct {
	vehicles []vehicle.Vehicle
	byID     map[string]int
}

// NewIndex builds an index over the given snapshot. The slice is not
// copied; callers must not mutate it afterwards.
func NewIndex(vehicles []vehicle.Vehicle) *Index {
	byID := make(map[string]int, len(vehicles))
	for i, v := range vehicles {
		byID[v.ID] = i
	}
	return &Index{vehicles: vehicles, byID: byID}
}

// Len returns the number of vehicles in the snapshot.
func (idx *Index) Len() int { return len(idx.vehicles) }

// All returns the snapshot in catalog order.
func (idx *Index) All() []vehicle.Vehicle { return idx.vehicles }

// FindByID looks up a vehicle by identifier.
func (idx *Index) FindByID(id string) (vehicle.Vehicle, error) {
	i, ok := idx.byID[id]
	if !ok {
		return vehicle.Vehicle{}, fmt.Errorf("id %q: %w", id, domain.ErrVehicleNotFound)
	}
	return idx.vehicles[i], nil
}

// FuzzySearch scores every vehicle against the query text and returns up
// to limit results, best match first. Ties keep catalog order.
func (idx *Index) FuzzySearch(text string, limit int) []vehicle.Vehicle {
	tokens := tokenize(text)
	if len(tokens) == 0 || limit <= 0 {
		return nil
	}

	type scored struct {
		pos   int
		score float64
	}
	matches := make([]scored, 0, len(idx.vehicles))
	for i, v := range idx.vehicles {
		s := idx.scoreVehicle(tokens, v)
		if s > 0 {
			matches = append(matches, scored{pos: i, score: s})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]vehicle.Vehicle, len(matches))
	for i, m := range matches {
		out[i] = idx.vehicles[m.pos]
	}
	return out
}

// BestMatch returns the highest-scoring vehicle for the query text with
// its score, or ok=false when nothing scores at all. Ties keep catalog
// order, same as FuzzySearch.
func (idx *Index) BestMatch(text string) (vehicle.Vehicle, float64, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return vehicle.Vehicle{}, 0, false
	}
	bestScore := 0.0
	bestPos := -1
	for i, v := range idx.vehicles {
		if s := idx.scoreVehicle(tokens, v); s > bestScore {
			bestScore = s
			bestPos = i
		}
	}
	if bestPos < 0 {
		return vehicle.Vehicle{}, 0, false
	}
	return idx.vehicles[bestPos], bestScore, true
}

// MatchesModel reports whether the text carries direct evidence of the
// vehicle's model name: an exact, prefix or single-typo token match on
// the model field itself. Make, trim and description hits do not count.
func (idx *Index) MatchesModel(text string, v vehicle.Vehicle) bool {
	for _, tok := range tokenize(text) {
		if scoreToken(tok, v.Model, weightModel) > 0 {
			return true
		}
	}
	return false
}

func (idx *Index) scoreVehicle(tokens []string, v vehicle.Vehicle) float64 {
	total := 0.0
	for _, tok := range tokens {
		best := scoreToken(tok, v.Model, weightModel)
		if s := scoreToken(tok, v.Make, weightMake); s > best {
			best = s
		}
		if s := scoreToken(tok, v.Trim, weightTrim); s > best {
			best = s
		}
		if s := scoreToken(tok, v.Description, weightDescription); s > best {
			best = s
		}
		total += best
	}
	return total
}

// ResolveColor matches nameOrCode against the vehicle's color variants,
// case-insensitive and substring-tolerant. Falls back to the first
// variant when nothing matches; the Colors() invariant guarantees a
// placeholder even for colorless records.
func (idx *Index) ResolveColor(v vehicle.Vehicle, nameOrCode string) vehicle.ColorVariant {
	colors := v.Colors()
	want := strings.ToLower(strings.TrimSpace(nameOrCode))
	if want == "" {
		return colors[0]
	}
	for _, c := range colors {
		if strings.EqualFold(c.Code, want) {
			return c
		}
	}
	for _, c := range colors {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, want) || strings.Contains(want, name) {
			return c
		}
	}
	return colors[0]
}
