package output

import (
	"strings"
	"testing"

	"github.com/wessmexura1/subscription-calculator/internal/metrics"
	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/testutil"
)

func fixture() []subscription.Subscription {
	return []subscription.Subscription{
		testutil.Sub("Netflix", subscription.CategoryVideo, 999, "RUB", subscription.BillingMonthly, 10, 8),
		testutil.Sub("Forgotten VPN", subscription.CategoryVPN, 700, "RUB", subscription.BillingMonthly, 0, 2),
	}
}

func TestPrettyFormat(t *testing.T) {
	engine := metrics.NewEngine(nil, nil)
	var buf strings.Builder

	PrettyFormat(&buf, engine, fixture(), "RUB")
	got := buf.String()

	for _, want := range []string{
		"Subscriptions (2)",
		"Netflix",
		"Forgotten VPN",
		"Totals",
		"Categories",
		"Worth a look",
		"cancel",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("pretty output missing %q\n%s", want, got)
		}
	}

	// Zero usage renders the infinity symbol, never NaN.
	if !strings.Contains(got, "∞") {
		t.Errorf("expected infinity symbol in output\n%s", got)
	}
	if strings.Contains(got, "NaN") {
		t.Errorf("output contains NaN\n%s", got)
	}
}

func TestPrettyFormatConvertsOnceForDisplay(t *testing.T) {
	engine := metrics.NewEngine(nil, nil)
	var buf strings.Builder

	// 970 RUB/month shown in USD is $10.
	subs := []subscription.Subscription{
		testutil.Sub("Copilot", subscription.CategorySoftware, 970, "RUB", subscription.BillingMonthly, 10, 7),
	}
	PrettyFormat(&buf, engine, subs, "USD")

	if !strings.Contains(buf.String(), "$10") {
		t.Errorf("expected USD conversion at display boundary\n%s", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	engine := metrics.NewEngine(nil, nil)
	var buf strings.Builder

	CsvFormat(&buf, engine, fixture(), "RUB")
	got := buf.String()

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"name","category"`) {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(got, `"Infinity"`) {
		t.Errorf("expected Infinity sentinel for zero-usage cost per hour\n%s", got)
	}
	if !strings.Contains(lines[1], `"999.00"`) {
		t.Errorf("expected monthly cost in row\n%s", lines[1])
	}
}
