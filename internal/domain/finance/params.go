// Package finance defines the financing input contract and the payment
// calculation produced from it. Parameters are constructed per request,
// validated, consumed once and discarded.
package finance

import (
	"fmt"
	"math"

	"github.com/drivelane/showroom/internal/domain"
)

// Params is the common input for all three payment scenarios.
type Params struct {
	Price         float64
	DownPayment   float64
	APR           float64
	TermMonths    int
	ResidualValue *float64
	TradeInValue  float64
	TaxRate       float64
}

// Validate checks the documented domain constraints. Violations are
// surfaced, never clamped.
func (p Params) Validate() error {
	if p.Price <= 0 {
		return fmt.Errorf("price must be positive, got %.2f: %w", p.Price, domain.ErrInvalidFinanceParams)
	}
	if p.DownPayment < 0 {
		return fmt.Errorf("down payment must not be negative, got %.2f: %w", p.DownPayment, domain.ErrInvalidFinanceParams)
	}
	if p.APR < 0 || p.APR > 100 {
		return fmt.Errorf("apr must be between 0 and 100, got %.2f: %w", p.APR, domain.ErrInvalidFinanceParams)
	}
	if p.TermMonths <= 0 {
		return fmt.Errorf("term must be positive, got %d months: %w", p.TermMonths, domain.ErrInvalidFinanceParams)
	}
	if p.TradeInValue < 0 {
		return fmt.Errorf("trade-in value must not be negative, got %.2f: %w", p.TradeInValue, domain.ErrInvalidFinanceParams)
	}
	if p.TaxRate < 0 || p.TaxRate > 1 {
		return fmt.Errorf("tax rate must be between 0 and 1, got %.4f: %w", p.TaxRate, domain.ErrInvalidFinanceParams)
	}
	return nil
}

// AdjustedPrice is the price with sales tax applied.
func (p Params) AdjustedPrice() float64 {
	return p.Price * (1 + p.TaxRate)
}

// NetAmount is the amount left to finance after trade-in and down payment.
// May be zero or negative when the buyer's credits cover the adjusted price.
func (p Params) NetAmount() float64 {
	return p.AdjustedPrice() - p.TradeInValue - p.DownPayment
}

// Round rounds a currency amount to the nearest whole unit. Applied only
// to final reported numbers; intermediates stay unrounded to avoid drift.
func Round(v float64) float64 {
	return math.Round(v)
}
