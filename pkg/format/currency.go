// Package format renders amounts, percentages, and usage hours for display.
// Infinite values render as distinct symbols rather than propagating into
// output as errors or NaN.
package format

import (
	"fmt"
	"math"
	"strings"
)

var currencySymbols = map[string]string{
	"RUB": "₽",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CNY": "¥",
	"KZT": "₸",
	"BYN": "Br",
	"UAH": "₴",
}

// Symbol returns the display symbol for a currency code, falling back to the
// code itself.
func Symbol(currency string) string {
	if symbol, ok := currencySymbols[currency]; ok {
		return symbol
	}
	return currency
}

// Price returns a price string in the given currency. Western currency
// symbols prefix the number; the rest are suffixed.
func Price(amount float64, currency string) string {
	return price(amount, currency, false)
}

// CompactPrice is Price with large amounts abbreviated (12.3K, 1.2M).
func CompactPrice(amount float64, currency string) string {
	return price(amount, currency, true)
}

func price(amount float64, currency string, compact bool) string {
	if math.IsInf(amount, 1) {
		return "∞"
	}
	symbol := Symbol(currency)
	if amount == 0 {
		return placeSymbol("0", symbol, currency)
	}

	var formatted string
	switch {
	case compact && amount >= 1000000:
		formatted = fmt.Sprintf("%.1fM", amount/1000000)
	case compact && amount >= 10000:
		formatted = fmt.Sprintf("%.0fK", amount/1000)
	case compact && amount >= 1000:
		formatted = fmt.Sprintf("%.1fK", amount/1000)
	case math.Abs(amount) < 10:
		formatted = fmt.Sprintf("%.2f", amount)
	default:
		formatted = groupThousands(fmt.Sprintf("%.0f", amount))
	}

	return placeSymbol(formatted, symbol, currency)
}

func placeSymbol(formatted, symbol, currency string) string {
	switch currency {
	case "USD", "EUR", "GBP", "CNY":
		return symbol + formatted
	default:
		return formatted + " " + symbol
	}
}

func groupThousands(intPart string) string {
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}
	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}
	if negative {
		return "-" + intPart
	}
	return intPart
}

// Percent returns a percentage with one decimal place (e.g., "12.5%").
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Hours returns a usage-hours string, switching to minutes below one hour.
// Infinite hours render as a dash.
func Hours(hours float64) string {
	if math.IsInf(hours, 1) {
		return "—"
	}
	if hours < 1 {
		return fmt.Sprintf("%d мин", int(math.Round(hours*60)))
	}
	return fmt.Sprintf("%.1f ч", hours)
}
