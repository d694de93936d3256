package catalog

import (
	"strings"
	"unicode"
)

// Field weights for fuzzy scoring. Model names identify a vehicle far
// more strongly than trim or description text.
const (
	weightModel       = 3.0
	weightMake        = 2.0
	weightTrim        = 1.0
	weightDescription = 0.5

	// partialFactor discounts prefix/substring and edit-distance matches
	// relative to exact token matches.
	partialFactor = 0.7
)

// stopWords are query tokens that carry no entity signal.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "me": {}, "my": {}, "i": {},
	"show": {}, "find": {}, "want": {}, "need": {}, "for": {},
	"of": {}, "in": {}, "on": {}, "with": {}, "and": {}, "or": {},
	"car": {}, "cars": {}, "vehicle": {}, "vehicles": {},
}

// tokenize lowercases text and splits it into letter/digit runs.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if _, skip := stopWords[f]; !skip {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// scoreToken returns the weighted score of one query token against one
// field value: exact token match at full weight, prefix/substring and
// single-edit typo matches discounted.
func scoreToken(token, field string, weight float64) float64 {
	if token == "" || field == "" {
		return 0
	}
	field = strings.ToLower(field)
	best := 0.0
	for _, ft := range strings.Fields(field) {
		switch {
		case ft == token:
			return weight
		case len(token) >= 3 && (strings.HasPrefix(ft, token) || strings.HasPrefix(token, ft)):
			best = max(best, weight*partialFactor)
		case len(token) >= 4 && editDistanceAtMost1(token, ft):
			best = max(best, weight*partialFactor)
		}
	}
	if best == 0 && len(token) >= 4 && strings.Contains(field, token) {
		best = weight * partialFactor
	}
	return best
}

// editDistanceAtMost1 reports whether a and b are within one insertion,
// deletion or substitution of each other. Tolerates the common
// single-character typo ("camery" vs "camry") without a full DP table.
func editDistanceAtMost1(a, b string) bool {
	la, lb := len(a), len(b)
	if la > lb {
		a, b, la, lb = b, a, lb, la
	}
	if lb-la > 1 {
		return false
	}
	i, j, edits := 0, 0, 0
	for i < la && j < lb {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		edits++
		if edits > 1 {
			return false
		}
		if la == lb {
			i++ // substitution
		}
		j++ // insertion into the shorter string
	}
	return edits+(lb-j)+(la-i) <= 1
}
