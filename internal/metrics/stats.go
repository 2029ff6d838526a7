package metrics

import (
	"sort"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/mathutil"
)

// CategoryStats is the per-category aggregate, in the base currency.
type CategoryStats struct {
	Category         subscription.Category `json:"category"`
	TotalMonthlyCost float64               `json:"totalMonthlyCost"`
	TotalYearlyCost  float64               `json:"totalYearlyCost"`
	Count            int                   `json:"count"`
	Percentage       float64               `json:"percentage"`
}

// OverallStats is the whole-collection aggregate, in the base currency.
// An empty collection yields the zero value with empty (non-nil) lists.
type OverallStats struct {
	TotalMonthlyCost       float64                     `json:"totalMonthlyCost"`
	TotalYearlyCost        float64                     `json:"totalYearlyCost"`
	TotalSubscriptions     int                         `json:"totalSubscriptions"`
	AverageCostPerHour     float64                     `json:"averageCostPerHour"`
	CategoryBreakdown      []CategoryStats             `json:"categoryBreakdown"`
	TopValueSubscriptions  []subscription.Subscription `json:"topValueSubscriptions"`
	LowUsageSubscriptions  []subscription.Subscription `json:"lowUsageSubscriptions"`
	CancellationCandidates []subscription.Subscription `json:"candidatesForCancellation"`
}

type subscriptionWithMetrics struct {
	sub subscription.Subscription
	m   Metrics
}

func (e *Engine) evaluate(subs []subscription.Subscription) []subscriptionWithMetrics {
	evaluated := make([]subscriptionWithMetrics, len(subs))
	for i, sub := range subs {
		evaluated[i] = subscriptionWithMetrics{sub: sub, m: e.MetricsOf(sub)}
	}
	return evaluated
}

// CategoryStatsOf groups the collection by category and returns the per-
// category totals ordered by descending monthly cost. Percentages sum to 100
// whenever the total monthly cost is positive.
func (e *Engine) CategoryStatsOf(subs []subscription.Subscription) []CategoryStats {
	totals := make(map[subscription.Category]*CategoryStats)
	totalMonthly := 0.0

	for _, item := range e.evaluate(subs) {
		entry, ok := totals[item.sub.Category]
		if !ok {
			entry = &CategoryStats{Category: item.sub.Category}
			totals[item.sub.Category] = entry
		}
		entry.TotalMonthlyCost += item.m.MonthlyCost
		entry.Count++
		totalMonthly += item.m.MonthlyCost
	}

	stats := make([]CategoryStats, 0, len(totals))
	for _, entry := range totals {
		entry.TotalYearlyCost = entry.TotalMonthlyCost * constants.MonthsPerYear
		entry.Percentage = mathutil.CalculatePercentage(entry.TotalMonthlyCost, totalMonthly)
		stats = append(stats, *entry)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalMonthlyCost > stats[j].TotalMonthlyCost
	})
	return stats
}

// OverallStatsOf computes the whole-collection aggregate.
//
// AverageCostPerHour is the collection-wide ratio of total monthly cost to
// total hours per month, a weighted average, not the arithmetic mean of the
// per-item cost-per-hour values.
func (e *Engine) OverallStatsOf(subs []subscription.Subscription) OverallStats {
	stats := OverallStats{
		CategoryBreakdown:      []CategoryStats{},
		TopValueSubscriptions:  []subscription.Subscription{},
		LowUsageSubscriptions:  []subscription.Subscription{},
		CancellationCandidates: []subscription.Subscription{},
	}
	if len(subs) == 0 {
		return stats
	}

	evaluated := e.evaluate(subs)

	totalHoursPerMonth := 0.0
	for _, item := range evaluated {
		stats.TotalMonthlyCost += item.m.MonthlyCost
		totalHoursPerMonth += item.m.HoursPerMonth
	}
	stats.TotalYearlyCost = stats.TotalMonthlyCost * constants.MonthsPerYear
	stats.TotalSubscriptions = len(subs)
	if totalHoursPerMonth > 0 {
		stats.AverageCostPerHour = stats.TotalMonthlyCost / totalHoursPerMonth
	}
	stats.CategoryBreakdown = e.CategoryStatsOf(subs)

	// Infinite value scores order first.
	byValue := make([]subscriptionWithMetrics, len(evaluated))
	copy(byValue, evaluated)
	sort.SliceStable(byValue, func(i, j int) bool {
		return byValue[i].m.ValueScore > byValue[j].m.ValueScore
	})
	top := constants.TopValueCount
	if len(byValue) < top {
		top = len(byValue)
	}
	for _, item := range byValue[:top] {
		stats.TopValueSubscriptions = append(stats.TopValueSubscriptions, item.sub)
	}

	for _, item := range evaluated {
		if item.m.HoursPerMonth < constants.LowUsageHours && item.m.MonthlyCost > constants.LowUsageMonthlyCost {
			stats.LowUsageSubscriptions = append(stats.LowUsageSubscriptions, item.sub)
		}
	}

	candidates := make([]subscriptionWithMetrics, 0, len(evaluated))
	for _, item := range evaluated {
		if item.m.Recommendation == subscription.RecommendCancel || item.m.Recommendation == subscription.RecommendReview {
			candidates = append(candidates, item)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].m.MonthlyCost > candidates[j].m.MonthlyCost
	})
	for _, item := range candidates {
		stats.CancellationCandidates = append(stats.CancellationCandidates, item.sub)
	}

	return stats
}
