// Package metrics computes per-subscription cost metrics, the keep/review/
// cancel recommendation, and aggregate statistics over a collection. Every
// operation is a pure projection over its inputs: nothing here mutates a
// subscription or retains state between calls.
package metrics

import (
	"math"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/exchange"
	"go.uber.org/zap"
)

// Metrics holds the derived values for one subscription. Costs are in the
// base currency; CostPerHour and ValueScore may be +Inf (see the sentinel
// rules on MetricsOf).
type Metrics struct {
	MonthlyCost    float64                     `json:"monthlyCost"`
	YearlyCost     float64                     `json:"yearlyCost"`
	HoursPerMonth  float64                     `json:"hoursPerMonth"`
	CostPerHour    float64                     `json:"costPerHour"`
	ValueScore     float64                     `json:"valueScore"`
	Recommendation subscription.Recommendation `json:"recommendation"`
}

// Engine evaluates subscriptions against an injected currency converter.
type Engine struct {
	conv   *exchange.Converter
	logger *zap.Logger
}

// NewEngine creates a metrics engine. A nil converter falls back to the
// default tables and a nil logger to a no-op logger.
func NewEngine(conv *exchange.Converter, logger *zap.Logger) *Engine {
	if conv == nil {
		conv = exchange.NewConverter(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{conv: conv, logger: logger}
}

// Converter exposes the engine's converter for callers that convert for
// display at the output boundary.
func (e *Engine) Converter() *exchange.Converter {
	return e.conv
}

// MetricsOf computes the full metrics record for one subscription.
//
// Zero usage makes CostPerHour +Inf: an unused subscription is infinitely
// expensive per hour. Zero cost makes ValueScore +Inf: a free, used
// subscription is maximally valuable. Both sentinels order above every
// finite value in sorts.
func (e *Engine) MetricsOf(sub subscription.Subscription) Metrics {
	priceInBase := e.conv.ToBase(sub.Price, sub.Currency)
	monthlyCost := e.conv.MonthlyCost(priceInBase, string(sub.BillingPeriod))
	yearlyCost := monthlyCost * constants.MonthsPerYear
	hoursPerMonth := sub.HoursPerWeek * constants.WeeksPerMonth

	costPerHour := math.Inf(1)
	if hoursPerMonth > 0 {
		costPerHour = monthlyCost / hoursPerMonth
	}

	valueScore := math.Inf(1)
	if monthlyCost > 0 {
		valueScore = float64(sub.Importance) * hoursPerMonth / monthlyCost * constants.PercentageMultiplier
	}

	recommendation := recommend(ruleInput{
		costPerHour:   costPerHour,
		hoursPerMonth: hoursPerMonth,
		importance:    sub.Importance,
		monthlyCost:   monthlyCost,
	})

	e.logger.Debug("computed subscription metrics",
		zap.String("subscription", sub.Name),
		zap.Float64("monthlyCost", monthlyCost),
		zap.String("recommendation", string(recommendation)),
	)

	return Metrics{
		MonthlyCost:    monthlyCost,
		YearlyCost:     yearlyCost,
		HoursPerMonth:  hoursPerMonth,
		CostPerHour:    costPerHour,
		ValueScore:     valueScore,
		Recommendation: recommendation,
	}
}
