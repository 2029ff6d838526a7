package metrics

import (
	"sort"
	"strings"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
)

// Filters narrows a collection. Zero-valued fields are ignored; the cost
// range applies to the normalized monthly cost in the base currency.
type Filters struct {
	Category       subscription.Category
	MinMonthlyCost *float64
	MaxMonthlyCost *float64
	Recommendation subscription.Recommendation
	Search         string
}

// SortField selects the key for sorting a collection.
type SortField string

const (
	SortByName        SortField = "name"
	SortByMonthlyCost SortField = "price"
	SortByCostPerHour SortField = "costPerHour"
	SortByImportance  SortField = "importance"
	SortByValueScore  SortField = "valueScore"
)

// Filter returns the subscriptions matching f, preserving input order.
func (e *Engine) Filter(subs []subscription.Subscription, f Filters) []subscription.Subscription {
	result := make([]subscription.Subscription, 0, len(subs))
	search := strings.ToLower(f.Search)

	for _, sub := range subs {
		if f.Category != "" && sub.Category != f.Category {
			continue
		}
		if f.MinMonthlyCost != nil || f.MaxMonthlyCost != nil || f.Recommendation != "" {
			m := e.MetricsOf(sub)
			if f.MinMonthlyCost != nil && m.MonthlyCost < *f.MinMonthlyCost {
				continue
			}
			if f.MaxMonthlyCost != nil && m.MonthlyCost > *f.MaxMonthlyCost {
				continue
			}
			if f.Recommendation != "" && m.Recommendation != f.Recommendation {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(sub.Name), search) {
			continue
		}
		result = append(result, sub)
	}
	return result
}

// Sort returns a copy of subs ordered by field. Infinite cost-per-hour and
// value-score values order above every finite value, so they come last in
// ascending order and first in descending order.
func (e *Engine) Sort(subs []subscription.Subscription, field SortField, descending bool) []subscription.Subscription {
	sorted := make([]subscription.Subscription, len(subs))
	copy(sorted, subs)

	less := func(a, b subscription.Subscription) bool {
		switch field {
		case SortByMonthlyCost:
			return e.MetricsOf(a).MonthlyCost < e.MetricsOf(b).MonthlyCost
		case SortByCostPerHour:
			return e.MetricsOf(a).CostPerHour < e.MetricsOf(b).CostPerHour
		case SortByImportance:
			return a.Importance < b.Importance
		case SortByValueScore:
			return e.MetricsOf(a).ValueScore < e.MetricsOf(b).ValueScore
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
