package nlu

import (
	"strings"

	"github.com/drivelane/showroom/internal/catalog"
	"github.com/drivelane/showroom/internal/domain/query"
	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// ParseComparison splits a comparison query into two subjects and
// resolves each independently. A subject that matches no catalog entry
// keeps a nil vehicle; the caller decides whether to offer suggestions.
// Only a two-way split is supported: anything after the second subject
// stays attached to it.
func ParseComparison(text string, idx *catalog.Index) *query.Comparison {
	first, second, ok := splitComparison(text)
	if !ok {
		return nil
	}
	return &query.Comparison{
		First:  resolveSubject(first, idx),
		Second: resolveSubject(second, idx),
	}
}

// splitComparison splits on the first separator occurrence. Queries of
// the form "compare X and Y" carry no separator between subjects; the
// leading verb is stripped and the remainder split on a connector.
func splitComparison(text string) (first, second string, ok bool) {
	lower := strings.ToLower(text)
	padded := " " + lower + " "

	for _, sep := range comparisonSeparators {
		i := strings.Index(padded, sep)
		if i < 0 {
			continue
		}
		// Case folding can change byte lengths, so the offsets found in
		// the lowered text must slice the lowered text, never the original.
		start := i - 1
		if start < 0 {
			start = 0
		}
		after := i + len(sep) - 1
		if after > len(lower) {
			after = len(lower)
		}
		return lower[:start], lower[after:], true
	}

	trimmed := strings.TrimLeft(lower, " ")
	if !strings.HasPrefix(trimmed, "compare ") {
		return "", "", false
	}
	rest := trimmed[len("compare "):]
	for _, conn := range bareCompareConnectors {
		if i := strings.Index(rest, conn); i >= 0 {
			return rest[:i], rest[i+len(conn):], true
		}
	}
	// "compare the camry" — a single subject is still a comparison
	// attempt; the second side simply fails to resolve.
	return rest, "", true
}

func resolveSubject(text string, idx *catalog.Index) query.Subject {
	s := query.Subject{Text: strings.TrimSpace(text)}
	if s.Text == "" {
		return s
	}
	if v, ok := ExtractModel(s.Text, idx); ok {
		s.Vehicle = &v
		if cv, ok := ResolveColorVariant(s.Text, v); ok {
			s.Color = &cv
		}
		return s
	}
	// No vehicle: still surface a bare canonical color if one was named.
	if c, ok := ExtractColor(s.Text); ok {
		s.Color = &vehicle.ColorVariant{Name: c}
	}
	return s
}
