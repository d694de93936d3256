package query

// Intent is the high-level purpose of a natural-language query.
type Intent string

const (
	// IntentSearch is a free-text vehicle search.
	IntentSearch Intent = "search"
	// IntentCompare is a two-subject comparison.
	IntentCompare Intent = "compare"
	// IntentFilter is a restrictive refinement of a prior result set.
	IntentFilter Intent = "filter"
	// IntentFinance is a payment/affordability question.
	IntentFinance Intent = "finance"
)

// Valid reports whether the intent is one of the four known values.
func (i Intent) Valid() bool {
	switch i {
	case IntentSearch, IntentCompare, IntentFilter, IntentFinance:
		return true
	}
	return false
}
