// Package report builds an Excel workbook from the subscription collection.
package report

import (
	"fmt"
	"math"

	"github.com/wessmexura1/subscription-calculator/internal/metrics"
	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/mathutil"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSubscriptions = "Subscriptions"
	sheetSummary       = "Summary"
)

// Build assembles the workbook: one row per subscription with its metrics,
// plus a summary sheet with totals and the category breakdown. Amounts are
// converted to displayCurrency exactly once, when written.
func Build(engine *metrics.Engine, subs []subscription.Subscription, displayCurrency string) (*excelize.File, error) {
	f := excelize.NewFile()

	conv := engine.Converter()
	display := func(amount float64) float64 {
		return mathutil.Round(conv.FromBase(amount, displayCurrency))
	}

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetSubscriptions); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{
		"name",
		"category",
		"plan",
		"billing period",
		fmt.Sprintf("monthly (%s)", displayCurrency),
		fmt.Sprintf("yearly (%s)", displayCurrency),
		"hours/month",
		fmt.Sprintf("cost/hour (%s)", displayCurrency),
		"value score",
		"recommendation",
		"next payment",
	}
	if err := f.SetSheetRow(sheetSubscriptions, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, sub := range subs {
		m := engine.MetricsOf(sub)
		excelRow := []interface{}{
			sub.Name,
			string(sub.Category),
			string(sub.PlanType),
			string(sub.BillingPeriod),
			display(m.MonthlyCost),
			display(m.YearlyCost),
			mathutil.Round(m.HoursPerMonth),
			cellNumber(display(m.CostPerHour), m.CostPerHour),
			cellNumber(mathutil.Round(m.ValueScore), m.ValueScore),
			string(m.Recommendation),
			sub.NextPaymentDate,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheetSubscriptions, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	if err := writeSummary(f, engine, subs, displayCurrency, display); err != nil {
		return nil, err
	}
	return f, nil
}

// cellNumber keeps infinities out of numeric cells.
func cellNumber(rounded, raw float64) interface{} {
	if math.IsInf(raw, 1) {
		return "∞"
	}
	return rounded
}

func writeSummary(f *excelize.File, engine *metrics.Engine, subs []subscription.Subscription, displayCurrency string, display func(float64) float64) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	stats := engine.OverallStatsOf(subs)

	rows := [][]interface{}{
		{"subscriptions", stats.TotalSubscriptions},
		{fmt.Sprintf("total monthly (%s)", displayCurrency), display(stats.TotalMonthlyCost)},
		{fmt.Sprintf("total yearly (%s)", displayCurrency), display(stats.TotalYearlyCost)},
		{fmt.Sprintf("average cost/hour (%s)", displayCurrency), display(stats.AverageCostPerHour)},
		{},
		{"category", fmt.Sprintf("monthly (%s)", displayCurrency), "count", "share %"},
	}
	for _, cat := range stats.CategoryBreakdown {
		rows = append(rows, []interface{}{
			string(cat.Category),
			display(cat.TotalMonthlyCost),
			cat.Count,
			mathutil.Round(cat.Percentage),
		})
	}
	if len(stats.CancellationCandidates) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"worth a look", fmt.Sprintf("monthly (%s)", displayCurrency)})
		for _, sub := range stats.CancellationCandidates {
			m := engine.MetricsOf(sub)
			rows = append(rows, []interface{}{sub.Name, display(m.MonthlyCost)})
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetSummary, cell, &rows[i]); err != nil {
			return fmt.Errorf("write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(path string, engine *metrics.Engine, subs []subscription.Subscription, displayCurrency string) error {
	f, err := Build(engine, subs, displayCurrency)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
