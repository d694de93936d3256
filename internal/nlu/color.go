package nlu

import (
	"strings"

	"github.com/drivelane/showroom/internal/domain/vehicle"
)

// ExtractColor scans text for a color mention and returns the canonical
// color name. Table order decides when a query names several colors.
func ExtractColor(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, entry := range colorTable {
		for _, syn := range entry.Synonyms {
			if strings.Contains(lower, syn) {
				return entry.Canonical, true
			}
		}
	}
	return "", false
}

// ResolveColorVariant extracts a color from text and resolves it against
// the target vehicle's variants. When no variant matches the canonical
// color, the bare canonical name is returned as a variant with no image.
func ResolveColorVariant(text string, v vehicle.Vehicle) (vehicle.ColorVariant, bool) {
	canonical, ok := ExtractColor(text)
	if !ok {
		return vehicle.ColorVariant{}, false
	}
	if cv, ok := matchVariant(v, canonical); ok {
		return cv, true
	}
	return vehicle.ColorVariant{Name: canonical}, true
}

// matchVariant finds a variant whose name contains the canonical color
// or one of its synonyms ("Blueprint" resolves for "blue").
func matchVariant(v vehicle.Vehicle, canonical string) (vehicle.ColorVariant, bool) {
	var synonyms []string
	for _, entry := range colorTable {
		if entry.Canonical == canonical {
			synonyms = entry.Synonyms
			break
		}
	}
	for _, cv := range v.Colors() {
		name := strings.ToLower(cv.Name)
		if strings.Contains(name, canonical) {
			return cv, true
		}
		for _, syn := range synonyms {
			if strings.Contains(name, syn) {
				return cv, true
			}
		}
	}
	return vehicle.ColorVariant{}, false
}
