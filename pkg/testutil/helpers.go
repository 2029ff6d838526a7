// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
)

// Sub builds a subscription fixture with fixed timestamps. Fields not covered
// by the parameters take neutral defaults.
func Sub(name string, category subscription.Category, price float64, currency string, period subscription.BillingPeriod, hoursPerWeek float64, importance int) subscription.Subscription {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return subscription.Subscription{
		ID:            "fixture-" + name,
		Name:          name,
		Category:      category,
		Price:         price,
		Currency:      currency,
		BillingPeriod: period,
		PlanType:      subscription.PlanIndividual,
		HoursPerWeek:  hoursPerWeek,
		Importance:    importance,
		IsCustom:      true,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}
