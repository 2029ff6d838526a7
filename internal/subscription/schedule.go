package subscription

import (
	"time"

	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/datetime"
)

// DateLayout is the format used for start and payment dates.
const DateLayout = datetime.DateLayout

// monthsPerCycle mirrors the billing-period divisor for schedule stepping.
func monthsPerCycle(period BillingPeriod) int {
	switch period {
	case BillingQuarterly:
		return 3
	case BillingYearly:
		return constants.MonthsPerYear
	case BillingLifetime:
		return constants.LifetimeMonths
	default:
		return 1
	}
}

// NextPaymentDate steps startDate forward one billing cycle at a time until
// it lands strictly after now. Empty or malformed start dates yield an empty
// date. Lifetime purchases step like any other period, in 120-month cycles.
func NextPaymentDate(startDate string, period BillingPeriod, now time.Time) string {
	if startDate == "" {
		return ""
	}
	months := monthsPerCycle(period)
	nowDate := now.Format(DateLayout)

	next := startDate
	for {
		upcoming, err := datetime.DateBeforeDate(nowDate, next)
		if err != nil {
			return ""
		}
		if upcoming {
			return next
		}
		if next, err = datetime.OffsetDate(next, DateLayout, months); err != nil {
			return ""
		}
	}
}

// PaymentDueSoon reports whether the next payment falls within the upcoming
// constants.DueSoonDays days. Empty or malformed dates are never due.
func PaymentDueSoon(nextPaymentDate string, now time.Time) bool {
	if nextPaymentDate == "" {
		return false
	}
	payment, err := time.Parse(DateLayout, nextPaymentDate)
	if err != nil {
		return false
	}
	days := payment.Sub(now).Hours() / 24
	return days >= 0 && days <= constants.DueSoonDays
}
