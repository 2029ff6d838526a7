package metrics

import (
	"math"
	"testing"

	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/mathutil"
	"github.com/wessmexura1/subscription-calculator/pkg/testutil"
)

func sampleCollection() []subscription.Subscription {
	return []subscription.Subscription{
		testutil.Sub("Netflix", subscription.CategoryVideo, 999, "RUB", subscription.BillingMonthly, 10, 8),
		testutil.Sub("Okko", subscription.CategoryVideo, 399, "RUB", subscription.BillingMonthly, 2, 4),
		testutil.Sub("Spotify", subscription.CategoryMusic, 299, "RUB", subscription.BillingMonthly, 25, 9),
		testutil.Sub("PS Plus", subscription.CategoryGames, 4799, "RUB", subscription.BillingYearly, 6, 7),
		testutil.Sub("Forgotten VPN", subscription.CategoryVPN, 700, "RUB", subscription.BillingMonthly, 0, 2),
		testutil.Sub("iCloud", subscription.CategoryCloud, 99, "RUB", subscription.BillingMonthly, 1, 6),
	}
}

func TestCategoryStatsOfEmpty(t *testing.T) {
	engine := newTestEngine()

	stats := engine.CategoryStatsOf(nil)
	if len(stats) != 0 {
		t.Errorf("expected empty stats for empty collection, got %d entries", len(stats))
	}
}

func TestCategoryStatsOfGroupsAndOrders(t *testing.T) {
	engine := newTestEngine()
	stats := engine.CategoryStatsOf(sampleCollection())

	// Two video subscriptions collapse into one entry.
	if len(stats) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(stats))
	}

	// Descending by monthly cost.
	for i := 1; i < len(stats); i++ {
		if stats[i].TotalMonthlyCost > stats[i-1].TotalMonthlyCost {
			t.Errorf("stats not ordered: %s (%.2f) after %s (%.2f)",
				stats[i].Category, stats[i].TotalMonthlyCost, stats[i-1].Category, stats[i-1].TotalMonthlyCost)
		}
	}

	if stats[0].Category != subscription.CategoryVideo {
		t.Errorf("most expensive category = %s, expected video", stats[0].Category)
	}
	if stats[0].Count != 2 {
		t.Errorf("video count = %d, expected 2", stats[0].Count)
	}
	if !mathutil.WithinTolerance(stats[0].TotalMonthlyCost, 1398, 1e-9) {
		t.Errorf("video monthly = %v, expected 1398", stats[0].TotalMonthlyCost)
	}
	if !mathutil.WithinTolerance(stats[0].TotalYearlyCost, 1398*12, 1e-9) {
		t.Errorf("video yearly = %v, expected %v", stats[0].TotalYearlyCost, 1398*12.0)
	}

	sum := 0.0
	for _, s := range stats {
		sum += s.Percentage
	}
	if !mathutil.WithinTolerance(sum, 100, 1e-6) {
		t.Errorf("percentages sum to %v, expected 100", sum)
	}
}

func TestOverallStatsOfEmpty(t *testing.T) {
	engine := newTestEngine()
	stats := engine.OverallStatsOf([]subscription.Subscription{})

	if stats.TotalMonthlyCost != 0 || stats.TotalYearlyCost != 0 || stats.TotalSubscriptions != 0 {
		t.Errorf("expected zero totals, got %+v", stats)
	}
	if stats.AverageCostPerHour != 0 {
		t.Errorf("AverageCostPerHour = %v, expected 0", stats.AverageCostPerHour)
	}
	if stats.CategoryBreakdown == nil || len(stats.CategoryBreakdown) != 0 {
		t.Error("expected empty non-nil category breakdown")
	}
	if stats.TopValueSubscriptions == nil || stats.LowUsageSubscriptions == nil || stats.CancellationCandidates == nil {
		t.Error("expected empty non-nil lists")
	}
}

func TestOverallStatsOfTotals(t *testing.T) {
	engine := newTestEngine()
	subs := sampleCollection()
	stats := engine.OverallStatsOf(subs)

	wantMonthly := 999 + 399 + 299 + 4799.0/12 + 700 + 99.0
	if !mathutil.WithinTolerance(stats.TotalMonthlyCost, wantMonthly, 1e-9) {
		t.Errorf("TotalMonthlyCost = %v, expected %v", stats.TotalMonthlyCost, wantMonthly)
	}
	if !mathutil.WithinTolerance(stats.TotalYearlyCost, wantMonthly*12, 1e-9) {
		t.Errorf("TotalYearlyCost = %v, expected %v", stats.TotalYearlyCost, wantMonthly*12)
	}
	if stats.TotalSubscriptions != len(subs) {
		t.Errorf("TotalSubscriptions = %d, expected %d", stats.TotalSubscriptions, len(subs))
	}
}

func TestOverallStatsAverageCostPerHourIsWeighted(t *testing.T) {
	engine := newTestEngine()

	// Two subscriptions with very different hour totals. The weighted
	// collection ratio and the arithmetic mean of per-item ratios must
	// disagree, and the engine must produce the former.
	subs := []subscription.Subscription{
		testutil.Sub("Heavy use", subscription.CategoryVideo, 433, "RUB", subscription.BillingMonthly, 100, 8),
		testutil.Sub("Light use", subscription.CategorySoftware, 433, "RUB", subscription.BillingMonthly, 1, 8),
	}

	stats := engine.OverallStatsOf(subs)

	totalCost := 866.0
	totalHours := 101 * 4.33
	weighted := totalCost / totalHours

	perItemMean := (433/(100*4.33) + 433/(1*4.33)) / 2

	if !mathutil.WithinTolerance(stats.AverageCostPerHour, weighted, 1e-9) {
		t.Errorf("AverageCostPerHour = %v, expected weighted ratio %v", stats.AverageCostPerHour, weighted)
	}
	if mathutil.WithinTolerance(weighted, perItemMean, 1.0) {
		t.Fatalf("test fixture cannot distinguish weighted (%v) from mean (%v)", weighted, perItemMean)
	}
}

func TestOverallStatsTopValue(t *testing.T) {
	engine := newTestEngine()
	stats := engine.OverallStatsOf(sampleCollection())

	if len(stats.TopValueSubscriptions) != 5 {
		t.Fatalf("top value length = %d, expected 5", len(stats.TopValueSubscriptions))
	}

	// Sorted descending by value score.
	previous := math.Inf(1)
	for _, sub := range stats.TopValueSubscriptions {
		score := engine.MetricsOf(sub).ValueScore
		if score > previous {
			t.Errorf("top value list not descending at %s (%v after %v)", sub.Name, score, previous)
		}
		previous = score
	}

	// Spotify has the strongest usage-to-cost ratio in the fixture.
	if stats.TopValueSubscriptions[0].Name != "Spotify" {
		t.Errorf("top subscription = %s, expected Spotify", stats.TopValueSubscriptions[0].Name)
	}
}

func TestOverallStatsTopValueShorterThanFive(t *testing.T) {
	engine := newTestEngine()
	subs := sampleCollection()[:3]
	stats := engine.OverallStatsOf(subs)

	if len(stats.TopValueSubscriptions) != 3 {
		t.Errorf("top value length = %d, expected 3", len(stats.TopValueSubscriptions))
	}
}

func TestOverallStatsInfiniteValueScoreSortsFirst(t *testing.T) {
	engine := newTestEngine()

	subs := append(sampleCollection(),
		testutil.Sub("Free forever", subscription.CategoryOther, 0, "RUB", subscription.BillingMonthly, 5, 5))
	stats := engine.OverallStatsOf(subs)

	if stats.TopValueSubscriptions[0].Name != "Free forever" {
		t.Errorf("top subscription = %s, expected the free one (infinite value score)", stats.TopValueSubscriptions[0].Name)
	}
}

func TestOverallStatsLowUsage(t *testing.T) {
	engine := newTestEngine()
	stats := engine.OverallStatsOf(sampleCollection())

	// Okko: 8.66 h/month — not low usage. Forgotten VPN: 0 h, 700 RUB — low
	// usage. iCloud: 4.33 h but only 99 RUB — under the cost floor.
	if len(stats.LowUsageSubscriptions) != 1 {
		t.Fatalf("low usage length = %d, expected 1", len(stats.LowUsageSubscriptions))
	}
	if stats.LowUsageSubscriptions[0].Name != "Forgotten VPN" {
		t.Errorf("low usage entry = %s, expected Forgotten VPN", stats.LowUsageSubscriptions[0].Name)
	}
}

func TestOverallStatsCancellationCandidates(t *testing.T) {
	engine := newTestEngine()
	stats := engine.OverallStatsOf(sampleCollection())

	if len(stats.CancellationCandidates) == 0 {
		t.Fatal("expected cancellation candidates")
	}

	// Forgotten VPN (importance 2, 700 RUB) must be present: cancel.
	found := false
	for _, sub := range stats.CancellationCandidates {
		if sub.Name == "Forgotten VPN" {
			found = true
		}
	}
	if !found {
		t.Error("expected Forgotten VPN among cancellation candidates")
	}

	// Descending by monthly cost.
	previous := math.Inf(1)
	for _, sub := range stats.CancellationCandidates {
		cost := engine.MetricsOf(sub).MonthlyCost
		if cost > previous {
			t.Errorf("candidates not ordered by monthly cost at %s", sub.Name)
		}
		previous = cost
	}

	// Keep-rated subscriptions never appear.
	for _, sub := range stats.CancellationCandidates {
		if rec := engine.MetricsOf(sub).Recommendation; rec == subscription.RecommendKeep {
			t.Errorf("keep-rated %s among candidates", sub.Name)
		}
	}
}
