// Package exchange normalizes prices across currencies and billing periods.
// All functions are total: unknown currency codes fall back to a rate of 1 and
// unknown billing periods to a single-month divisor, so callers never need to
// handle conversion errors.
package exchange

import (
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
)

// RateTable maps a currency code to its value in the base currency, i.e. how
// many base-currency units one unit of that currency is worth.
type RateTable map[string]float64

// PeriodTable maps a billing period to its equivalent number of months.
type PeriodTable map[string]float64

// DefaultRates returns the built-in exchange-rate table relative to the base
// currency.
func DefaultRates() RateTable {
	return RateTable{
		"RUB": 1,
		"USD": 97,
		"EUR": 105,
		"GBP": 122,
		"CNY": 13.5,
		"KZT": 0.20,
		"BYN": 29,
		"UAH": 2.35,
	}
}

// DefaultPeriods returns the built-in billing-period table. A lifetime
// purchase is amortized over constants.LifetimeMonths.
func DefaultPeriods() PeriodTable {
	return PeriodTable{
		"monthly":   1,
		"quarterly": 3,
		"yearly":    constants.MonthsPerYear,
		"lifetime":  constants.LifetimeMonths,
	}
}

// SupportedCurrencies returns the currency codes present in the default rate
// table in display order.
func SupportedCurrencies() []string {
	return []string{"RUB", "USD", "EUR", "GBP", "CNY", "KZT", "BYN", "UAH"}
}

// Supported reports whether code is one of the built-in currency codes.
func Supported(code string) bool {
	_, ok := DefaultRates()[code]
	return ok
}

// Converter performs currency and billing-period normalization against
// injected tables so alternate rates can be tested or configured without
// global state.
type Converter struct {
	rates   RateTable
	periods PeriodTable
}

// NewConverter creates a Converter. Nil or empty tables fall back to the
// defaults.
func NewConverter(rates RateTable, periods PeriodTable) *Converter {
	if len(rates) == 0 {
		rates = DefaultRates()
	}
	if len(periods) == 0 {
		periods = DefaultPeriods()
	}
	return &Converter{rates: rates, periods: periods}
}

// Rate returns the base-currency rate for code, or 1 for unknown codes.
func (c *Converter) Rate(code string) float64 {
	if rate, ok := c.rates[code]; ok {
		return rate
	}
	return 1
}

// Convert converts amount from one currency to another through the base
// currency. Converting a currency to itself returns amount unchanged, with no
// floating round trip.
func (c *Converter) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	return amount * c.Rate(from) / c.Rate(to)
}

// ToBase converts amount into the base currency.
func (c *Converter) ToBase(amount float64, code string) float64 {
	if code == constants.BaseCurrency {
		return amount
	}
	return amount * c.Rate(code)
}

// FromBase converts a base-currency amount into the target currency.
func (c *Converter) FromBase(amount float64, code string) float64 {
	if code == constants.BaseCurrency {
		return amount
	}
	return amount / c.Rate(code)
}

// MonthsIn returns the number of months one billing cycle of period covers,
// or 1 for unknown periods.
func (c *Converter) MonthsIn(period string) float64 {
	if months, ok := c.periods[period]; ok {
		return months
	}
	return 1
}

// MonthlyCost normalizes a per-cycle price to its equivalent monthly cost.
func (c *Converter) MonthlyCost(price float64, period string) float64 {
	return price / c.MonthsIn(period)
}
