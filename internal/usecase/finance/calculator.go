// Package finance implements the three payment calculators (purchase,
// lease, subscription) and the aggregate over them. All calculators are
// pure functions of their parameters; only final reported numbers are
// rounded.
package finance

import (
	"fmt"
	"math"

	"github.com/drivelane/showroom/internal/domain"
	domfin "github.com/drivelane/showroom/internal/domain/finance"
)

// Options carries the financing business assumptions as named,
// overridable values. The defaults are simulated data, not market
// rates.
type Options struct {
	// ResidualRate is the default lease residual as a fraction of price,
	// used when the caller supplies no residual value.
	ResidualRate float64
	// SubscriptionRate is the fraction of the net amount amortized into
	// the subscription's vehicle portion.
	SubscriptionRate float64
	// MonthlyInsurance is the flat insurance estimate bundled into a
	// subscription.
	MonthlyInsurance float64
	// MonthlyMaintenance is the flat maintenance estimate bundled into
	// a subscription.
	MonthlyMaintenance float64
}

// DefaultOptions returns the standard assumptions: 55% residual, 60%
// subscription amortization, $150/mo insurance, $100/mo maintenance.
func DefaultOptions() Options {
	return Options{
		ResidualRate:       0.55,
		SubscriptionRate:   0.60,
		MonthlyInsurance:   150,
		MonthlyMaintenance: 100,
	}
}

// Purchase computes a standard amortizing-loan payment.
func Purchase(p domfin.Params, opts Options) (domfin.Calculation, error) {
	if err := p.Validate(); err != nil {
		return domfin.Calculation{}, err
	}

	tax := p.Price * p.TaxRate
	adjusted := p.Price + tax
	net := adjusted - p.TradeInValue - p.DownPayment

	// Trade-in plus down payment covering the adjusted price is a valid
	// degenerate purchase, not an error. Never divide by a non-positive
	// principal.
	if net <= 0 {
		zero := 0.0
		return domfin.Calculation{
			Scenario:       domfin.ScenarioPurchase,
			MonthlyPayment: 0,
			TotalCost:      domfin.Round(p.DownPayment + p.TradeInValue),
			TotalInterest:  &zero,
			Breakdown: map[string]float64{
				"vehicle_price":   domfin.Round(p.Price),
				"sales_tax":       domfin.Round(tax),
				"down_payment":    domfin.Round(p.DownPayment),
				"trade_in_credit": domfin.Round(p.TradeInValue),
				"amount_financed": 0,
			},
		}, nil
	}

	var monthly float64
	n := float64(p.TermMonths)
	if p.APR == 0 {
		// The annuity formula divides by zero at r=0; zero-interest
		// loans amortize straight-line.
		monthly = net / n
	} else {
		r := p.APR / 100 / 12
		monthly = net * r / (1 - math.Pow(1+r, -n))
	}

	totalCost := monthly*n + p.DownPayment + p.TradeInValue
	interest := domfin.Round(totalCost - adjusted)

	return domfin.Calculation{
		Scenario:       domfin.ScenarioPurchase,
		MonthlyPayment: domfin.Round(monthly),
		TotalCost:      domfin.Round(totalCost),
		TotalInterest:  &interest,
		Breakdown: map[string]float64{
			"vehicle_price":   domfin.Round(p.Price),
			"sales_tax":       domfin.Round(tax),
			"down_payment":    domfin.Round(p.DownPayment),
			"trade_in_credit": domfin.Round(p.TradeInValue),
			"amount_financed": domfin.Round(net),
			"total_interest":  interest,
		},
	}, nil
}

// Lease computes a depreciation-plus-finance-charge lease payment using
// the standard APR/2400 money-factor conversion.
func Lease(p domfin.Params, opts Options) (domfin.Calculation, error) {
	if err := p.Validate(); err != nil {
		return domfin.Calculation{}, err
	}

	net := p.NetAmount()
	residual := p.Price * opts.ResidualRate
	if p.ResidualValue != nil {
		residual = *p.ResidualValue
	}
	// A lease cannot depreciate to a residual larger than what is
	// being financed.
	if residual >= net {
		return domfin.Calculation{}, fmt.Errorf(
			"residual value %.2f must be below net amount %.2f: %w",
			residual, net, domain.ErrInvalidFinanceParams)
	}

	n := float64(p.TermMonths)
	moneyFactor := p.APR / 2400
	depreciation := (net - residual) / n
	financeCharge := (net + residual) * moneyFactor
	monthly := depreciation + financeCharge
	totalCost := monthly*n + p.DownPayment + p.TradeInValue

	roundedResidual := domfin.Round(residual)
	return domfin.Calculation{
		Scenario:       domfin.ScenarioLease,
		MonthlyPayment: domfin.Round(monthly),
		TotalCost:      domfin.Round(totalCost),
		ResidualValue:  &roundedResidual,
		Breakdown: map[string]float64{
			"monthly_depreciation":   domfin.Round(depreciation),
			"monthly_finance_charge": domfin.Round(financeCharge),
			"residual_value":         roundedResidual,
			"down_payment":           domfin.Round(p.DownPayment),
			"trade_in_credit":        domfin.Round(p.TradeInValue),
		},
	}, nil
}

// Subscription computes an all-inclusive monthly rate: a fraction of
// the net amount amortized straight-line with no interest, plus flat
// insurance and maintenance estimates. Subscriptions are rate-free in
// this model.
func Subscription(p domfin.Params, opts Options) (domfin.Calculation, error) {
	if err := p.Validate(); err != nil {
		return domfin.Calculation{}, err
	}

	net := p.NetAmount()
	n := float64(p.TermMonths)
	vehiclePortion := net * opts.SubscriptionRate / n
	monthly := vehiclePortion + opts.MonthlyInsurance + opts.MonthlyMaintenance
	totalCost := monthly*n + p.DownPayment + p.TradeInValue

	return domfin.Calculation{
		Scenario:       domfin.ScenarioSubscription,
		MonthlyPayment: domfin.Round(monthly),
		TotalCost:      domfin.Round(totalCost),
		Breakdown: map[string]float64{
			"vehicle_portion":       domfin.Round(vehiclePortion),
			"estimated_insurance":   domfin.Round(opts.MonthlyInsurance),
			"estimated_maintenance": domfin.Round(opts.MonthlyMaintenance),
			"down_payment":          domfin.Round(p.DownPayment),
			"trade_in_credit":       domfin.Round(p.TradeInValue),
		},
	}, nil
}
