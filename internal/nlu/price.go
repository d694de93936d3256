package nlu

import (
	"strconv"
	"strings"

	"github.com/drivelane/showroom/internal/domain/query"
)

// ExtractPriceRange recognizes price constraints in priority order:
// qualitative keywords first, then explicit under/over patterns, then
// explicit ranges. Numeric evidence is more specific than qualitative
// keywords, so explicit bounds override keyword-derived ones.
func ExtractPriceRange(text string) *query.PriceRange {
	lower := strings.ToLower(text)

	var r query.PriceRange
	found := false

	for _, kw := range priceKeywordTable {
		if !strings.Contains(lower, kw.Keyword) {
			continue
		}
		if kw.Min > 0 {
			r.Min = ptr(kw.Min)
		}
		if kw.Max > 0 {
			r.Max = ptr(kw.Max)
		}
		found = true
		break
	}

	// Explicit range first so its bounds win over under/over fragments
	// of the same phrase ("$25,000 to $35,000" contains "to $35,000").
	if m := priceRangeRe.FindStringSubmatch(lower); m != nil {
		lo := parseAmount(m[1], m[2])
		hi := parseAmount(m[3], m[4])
		if lo > 0 && hi > 0 && lo < hi {
			r.Min, r.Max = ptr(lo), ptr(hi)
			found = true
		}
	} else {
		if m := priceUnderRe.FindStringSubmatch(lower); m != nil {
			if v := parseAmount(m[1], m[2]); v > 0 {
				r.Max = ptr(v)
				found = true
			}
		}
		if m := priceOverRe.FindStringSubmatch(lower); m != nil {
			if v := parseAmount(m[1], m[2]); v > 0 {
				r.Min = ptr(v)
				found = true
			}
		}
	}

	if !found {
		return nil
	}
	return &r
}

// parseAmount converts a comma-grouped number with an optional
// k/thousand suffix into a price. "30k" => 30000.
func parseAmount(num, suffix string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil || v <= 0 {
		return 0
	}
	if suffix != "" {
		v *= 1000
	}
	return v
}

func ptr[T any](v T) *T { return &v }
