package nlu

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/drivelane/showroom/internal/domain/query"
)

// ExtractFilters detects body type, drivetrain, fuel type, minimum MPG
// and make in the query text. Each concern walks its own ordered table.
func ExtractFilters(text string) query.FilterSet {
	lower := strings.ToLower(text)
	toks := tokens(lower)

	var f query.FilterSet

	for _, entry := range typeTable {
		if containsAnyPhrase(lower, entry.Phrases) {
			f.Type = ptr(entry.BodyType)
			if entry.Category != "" {
				f.Category = ptr(entry.Category)
			}
			break
		}
	}

	// Drivetrains match whole tokens only: "awd" must not fire inside
	// an unrelated word. Hyphenated entries match as bounded phrases.
	for _, entry := range drivetrainTable {
		matched := false
		if strings.Contains(entry.Token, "-") {
			matched = containsPhrase(lower, entry.Token)
		} else {
			matched = hasToken(toks, entry.Token)
		}
		if matched {
			f.Drivetrain = ptr(entry.Drivetrain)
			break
		}
	}

	for _, entry := range fuelTable {
		if matchFuel(lower, toks, entry) {
			f.FuelType = ptr(entry.FuelType)
			f.Electrified = ptr(entry.Electrified)
			break
		}
	}

	if m := mpgRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			f.MinMPG = ptr(n)
		}
	} else if containsAnyPhrase(lower, efficiencyKeywords) {
		f.MinMPG = ptr(defaultMinMPG)
	}

	if make_, ok := extractMake(lower); ok {
		f.Make = ptr(make_)
	}

	return f
}

// extractMake walks the alias table longest-alias-first so one make's
// alias can never collide with a longer alias of another.
func extractMake(lower string) (string, bool) {
	aliases := make([]string, 0, len(makeAliases))
	for a := range makeAliases {
		aliases = append(aliases, a)
	}
	sort.Slice(aliases, func(i, j int) bool {
		if len(aliases[i]) != len(aliases[j]) {
			return len(aliases[i]) > len(aliases[j])
		}
		return aliases[i] < aliases[j]
	})
	for _, alias := range aliases {
		if containsPhrase(lower, alias) {
			return makeAliases[alias], true
		}
	}
	return "", false
}

func matchFuel(lower string, toks []string, entry fuelEntry) bool {
	for _, p := range entry.Phrases {
		p = strings.TrimSpace(p)
		if strings.Contains(p, " ") || strings.Contains(p, "-") {
			if strings.Contains(lower, p) {
				return true
			}
			continue
		}
		// Short fuel tokens ("ev") need word boundaries.
		if len(p) <= 3 {
			if hasToken(toks, p) {
				return true
			}
			continue
		}
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// tokens splits lowercased text into letter/digit runs.
func tokens(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func hasToken(toks []string, want string) bool {
	for _, t := range toks {
		if t == want {
			return true
		}
	}
	return false
}

func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(lower, p) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether phrase occurs in lower on word
// boundaries, so "kia" does not fire inside "skiable".
func containsPhrase(lower, phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(lower[start:], phrase)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(phrase)
		beforeOK := i == 0 || !isWordRune(rune(lower[i-1]))
		afterOK := end == len(lower) || !isWordRune(rune(lower[end]))
		if beforeOK && afterOK {
			return true
		}
		start = i + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
