package nlu

import (
	"sort"
	"strings"

	"github.com/drivelane/showroom/internal/catalog"
	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// ExtractModel resolves the vehicle a query refers to. The alias table
// of common misspellings and abbreviations takes precedence over raw
// fuzzy score; otherwise the best fuzzy match wins.
func ExtractModel(text string, idx *catalog.Index) (vehicle.Vehicle, bool) {
	lower := strings.ToLower(text)

	// Longest alias first, then lexical, so extraction is deterministic
	// when several aliases occur in one query.
	aliases := make([]string, 0, len(modelAliases))
	for a := range modelAliases {
		aliases = append(aliases, a)
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	for _, alias := range aliases {
		if !containsPhrase(lower, alias) {
			continue
		}
		canonical := modelAliases[alias]
		for _, v := range idx.All() {
			if strings.EqualFold(v.Model, canonical) {
				return v, true
			}
		}
	}

	v, score, ok := idx.BestMatch(text)
	if !ok || score < minModelScore || !idx.MatchesModel(text, v) {
		return vehicle.Vehicle{}, false
	}
	return v, true
}

// minModelScore keeps incidental token overlap (a color word grazing a
// description) from resolving to a vehicle. A typo-tolerant model match
// clears it; stray short tokens do not. The model field itself must
// also contribute: a bare manufacturer mention names no single model.
const minModelScore = 2.0
