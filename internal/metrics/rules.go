package metrics

import (
	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
)

type ruleInput struct {
	costPerHour   float64
	hoursPerMonth float64
	importance    int
	monthlyCost   float64
}

type rule struct {
	name    string
	applies func(in ruleInput) bool
	outcome subscription.Recommendation
}

// recommendationRules is evaluated top to bottom, first match wins. The
// order is part of the policy: reordering changes the outcome for records
// that match more than one rule.
var recommendationRules = []rule{
	{
		name: "low importance, high cost",
		applies: func(in ruleInput) bool {
			return in.importance <= constants.CancelImportanceMax && in.monthlyCost > constants.CancelMonthlyCost
		},
		outcome: subscription.RecommendCancel,
	},
	{
		name: "low usage, expensive",
		applies: func(in ruleInput) bool {
			return in.hoursPerMonth < constants.ReviewUsageHours && in.monthlyCost > constants.ReviewUsageMonthlyCost
		},
		outcome: subscription.RecommendReview,
	},
	{
		name: "very expensive hour",
		applies: func(in ruleInput) bool {
			return in.costPerHour > constants.ReviewCostPerHour
		},
		outcome: subscription.RecommendReview,
	},
	{
		name: "low importance at any usage",
		applies: func(in ruleInput) bool {
			return in.importance <= constants.ReviewImportanceMax && in.costPerHour > constants.ReviewImportanceCostPerHour
		},
		outcome: subscription.RecommendReview,
	},
}

func recommend(in ruleInput) subscription.Recommendation {
	for _, r := range recommendationRules {
		if r.applies(in) {
			return r.outcome
		}
	}
	return subscription.RecommendKeep
}
