package nlu

import (
	"strings"

	"github.com/drivelane/showroom/internal/domain/query"
)

// ClassifyIntent walks the intent table in precedence order and returns
// the first intent whose pattern matches, defaulting to search.
// Unrecognized queries are never an error: the system favors returning
// everything over failing on ambiguous input.
func ClassifyIntent(text string) query.Intent {
	lower := strings.ToLower(text)
	toks := tokens(lower)

	for _, rule := range intentTable {
		for _, kw := range rule.Keywords {
			if matchKeyword(lower, toks, kw) {
				return rule.Intent
			}
		}
	}
	return query.IntentSearch
}

// matchKeyword treats multi-word keywords (and keywords carrying their
// own spacing, like " vs ") as substrings and single words as whole
// tokens, so "afford" cannot fire inside "affordable".
func matchKeyword(lower string, toks []string, kw string) bool {
	if strings.ContainsAny(kw, " .") {
		return strings.Contains(" "+lower+" ", kw) || containsPhrase(lower, strings.TrimSpace(kw))
	}
	return hasToken(toks, kw)
}
