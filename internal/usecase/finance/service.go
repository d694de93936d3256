package finance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domfin "github.com/drivelane/showroom/internal/domain/finance"
	"github.com/drivelane/showroom/internal/metrics"
)

// Quote is the labeled triple returned by Aggregate.
type Quote struct {
	Purchase     domfin.Calculation `json:"purchase"`
	Lease        domfin.Calculation `json:"lease"`
	Subscription domfin.Calculation `json:"subscription"`
}

// Service exposes the calculators behind one entry point with logging
// and metrics. The calculators themselves stay pure.
type Service struct {
	opts   Options
	logger *zap.Logger
}

// New creates a finance service with default assumptions.
func New(logger *zap.Logger) *Service {
	return &Service{opts: DefaultOptions(), logger: logger}
}

// WithOptions overrides the named business assumptions.
func (s *Service) WithOptions(opts Options) *Service {
	s.opts = opts
	return s
}

// Calculate runs one scenario over the given parameters.
func (s *Service) Calculate(
	ctx context.Context, scenario domfin.Scenario, p domfin.Params,
) (domfin.Calculation, error) {
	var (
		calc domfin.Calculation
		err  error
	)
	switch scenario {
	case domfin.ScenarioPurchase:
		calc, err = Purchase(p, s.opts)
	case domfin.ScenarioLease:
		calc, err = Lease(p, s.opts)
	case domfin.ScenarioSubscription:
		calc, err = Subscription(p, s.opts)
	default:
		return domfin.Calculation{}, fmt.Errorf("unknown scenario %q", scenario)
	}
	if err != nil {
		metrics.FinanceCalculationsTotal.WithLabelValues(string(scenario), "error").Inc()
		return domfin.Calculation{}, err
	}

	metrics.FinanceCalculationsTotal.WithLabelValues(string(scenario), "ok").Inc()
	s.logger.Debug("finance calculation",
		zap.String("scenario", string(scenario)),
		zap.Float64("price", p.Price),
		zap.Int("term_months", p.TermMonths),
		zap.Float64("monthly_payment", calc.MonthlyPayment),
	)
	return calc, nil
}

// Aggregate runs all three scenarios over the same parameters.
func (s *Service) Aggregate(ctx context.Context, p domfin.Params) (Quote, error) {
	purchase, err := s.Calculate(ctx, domfin.ScenarioPurchase, p)
	if err != nil {
		return Quote{}, err
	}
	lease, err := s.Calculate(ctx, domfin.ScenarioLease, p)
	if err != nil {
		return Quote{}, err
	}
	subscription, err := s.Calculate(ctx, domfin.ScenarioSubscription, p)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Purchase: purchase, Lease: lease, Subscription: subscription}, nil
}
