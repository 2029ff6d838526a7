// Package output provides utilities for formatting and displaying the
// subscription report. Amounts arrive in the base currency and are converted
// to the display currency exactly once, here.
package output

import (
	"fmt"
	"io"
	"math"

	"github.com/wessmexura1/subscription-calculator/internal/metrics"
	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, engine *metrics.Engine, subs []subscription.Subscription, displayCurrency string) {
	p := message.NewPrinter(language.English)
	conv := engine.Converter()
	display := func(amount float64) string {
		return format.Price(conv.FromBase(amount, displayCurrency), displayCurrency)
	}

	fmt.Fprintf(w, "--- Subscriptions (%d) ---\n", len(subs))
	fmt.Fprintf(w, "Name                      | Monthly      | Yearly       | Usage    | Cost/hour    | Score    | Advice\n")
	fmt.Fprintf(w, "____                      | _______      | ______       | _____    | _________    | _____    | ______\n")
	for _, sub := range subs {
		m := engine.MetricsOf(sub)
		score := "∞"
		if !math.IsInf(m.ValueScore, 1) {
			score = p.Sprintf("%.1f", m.ValueScore)
		}
		fmt.Fprintf(w, "%-25s | %-12s | %-12s | %-8s | %-12s | %-8s | %s\n",
			sub.Name,
			display(m.MonthlyCost),
			display(m.YearlyCost),
			format.Hours(m.HoursPerMonth),
			costPerHour(m, display),
			score,
			m.Recommendation,
		)
	}

	stats := engine.OverallStatsOf(subs)
	fmt.Fprintf(w, "\n--- Totals ---\n")
	fmt.Fprintf(w, "Monthly: %s\n", display(stats.TotalMonthlyCost))
	fmt.Fprintf(w, "Yearly:  %s\n", display(stats.TotalYearlyCost))
	fmt.Fprintf(w, "Average cost/hour: %s\n", display(stats.AverageCostPerHour))

	if len(stats.CategoryBreakdown) > 0 {
		fmt.Fprintf(w, "\n--- Categories ---\n")
		for _, cat := range stats.CategoryBreakdown {
			fmt.Fprintf(w, "%-10s | %-12s | %2d | %s\n",
				cat.Category, display(cat.TotalMonthlyCost), cat.Count, format.Percent(cat.Percentage))
		}
	}

	if len(stats.CancellationCandidates) > 0 {
		fmt.Fprintf(w, "\n--- Worth a look ---\n")
		for _, sub := range stats.CancellationCandidates {
			m := engine.MetricsOf(sub)
			fmt.Fprintf(w, "%-25s | %-12s | %s\n", sub.Name, display(m.MonthlyCost), m.Recommendation)
		}
	}
}

func costPerHour(m metrics.Metrics, display func(float64) string) string {
	if math.IsInf(m.CostPerHour, 1) {
		return "∞"
	}
	return display(m.CostPerHour)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, engine *metrics.Engine, subs []subscription.Subscription, displayCurrency string) {
	conv := engine.Converter()
	display := func(amount float64) float64 {
		return conv.FromBase(amount, displayCurrency)
	}

	fmt.Fprintf(w, `"name","category","monthly (%s)","yearly (%s)","hours/month","cost/hour (%s)","value score","recommendation"`,
		displayCurrency, displayCurrency, displayCurrency)
	fmt.Fprintf(w, "\n")
	for _, sub := range subs {
		m := engine.MetricsOf(sub)
		fmt.Fprintf(w, `"%s","%s","%.2f","%.2f","%.2f",%s,%s,"%s"`,
			sub.Name,
			sub.Category,
			display(m.MonthlyCost),
			display(m.YearlyCost),
			m.HoursPerMonth,
			csvNumber(display(m.CostPerHour), math.IsInf(m.CostPerHour, 1)),
			csvNumber(m.ValueScore, math.IsInf(m.ValueScore, 1)),
			m.Recommendation,
		)
		fmt.Fprintf(w, "\n")
	}
}

// csvNumber renders infinities as a quoted sentinel so spreadsheet imports
// do not choke on them.
func csvNumber(val float64, infinite bool) string {
	if infinite {
		return `"Infinity"`
	}
	return fmt.Sprintf(`"%.2f"`, val)
}
