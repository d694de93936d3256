package finance

// Scenario labels a payment calculation.
type Scenario string

const (
	// ScenarioPurchase is a standard amortizing loan.
	ScenarioPurchase Scenario = "purchase"
	// ScenarioLease is a depreciation-plus-finance-charge lease.
	ScenarioLease Scenario = "lease"
	// ScenarioSubscription is an all-inclusive monthly rate.
	ScenarioSubscription Scenario = "subscription"
)

// Valid reports whether the scenario is a known value.
func (s Scenario) Valid() bool {
	switch s {
	case ScenarioPurchase, ScenarioLease, ScenarioSubscription:
		return true
	}
	return false
}

// Calculation is a payment breakdown produced fresh per call.
// All amounts are rounded to whole currency units.
type Calculation struct {
	Scenario       Scenario           `json:"scenario"`
	MonthlyPayment float64            `json:"monthly_payment"`
	TotalCost      float64            `json:"total_cost"`
	TotalInterest  *float64           `json:"total_interest,omitempty"`
	ResidualValue  *float64           `json:"residual_value,omitempty"`
	Breakdown      map[string]float64 `json:"breakdown"`
}
