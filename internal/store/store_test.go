package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wessmexura1/subscription-calculator/internal/metrics"
	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "subscriptions.json")
	st, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	fixedNow := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	st.nowFn = func() time.Time { return fixedNow }
	counter := 0
	st.idFn = func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
	return st
}

func sampleInput(name string) subscription.Input {
	return subscription.Input{
		Name:          name,
		Category:      subscription.CategoryVideo,
		Price:         999,
		Currency:      "RUB",
		BillingPeriod: subscription.BillingMonthly,
		PlanType:      subscription.PlanIndividual,
		HoursPerWeek:  10,
		Importance:    8,
		IsCustom:      true,
	}
}

func TestOpenCreatesEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "subscriptions.json")
	st, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if st.Count() != 0 {
		t.Errorf("new store count = %d, expected 0", st.Count())
	}
	if st.DisplayCurrency() != "RUB" {
		t.Errorf("default display currency = %s, expected RUB", st.DisplayCurrency())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected data file to be created: %v", err)
	}
}

func TestAddAssignsIdentityAndPersists(t *testing.T) {
	st := newTestStore(t)

	sub, err := st.Add(sampleInput("Netflix"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if sub.ID != "id-1" {
		t.Errorf("ID = %s, expected id-1", sub.ID)
	}
	if sub.CreatedAt.IsZero() || !sub.CreatedAt.Equal(sub.UpdatedAt) {
		t.Errorf("timestamps not set on creation: %v / %v", sub.CreatedAt, sub.UpdatedAt)
	}

	// Reopen from disk and confirm the record survived.
	reopened, err := Open(st.filePath, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Count() != 1 {
		t.Errorf("reopened count = %d, expected 1", reopened.Count())
	}
	got, err := reopened.Get("id-1")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Name != "Netflix" {
		t.Errorf("Name = %s, expected Netflix", got.Name)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	st := newTestStore(t)

	in := sampleInput("Bad")
	in.Importance = 0
	if _, err := st.Add(in); err == nil {
		t.Fatal("expected validation error")
	}
	if st.Count() != 0 {
		t.Errorf("invalid input was stored, count = %d", st.Count())
	}
}

func TestUpdate(t *testing.T) {
	st := newTestStore(t)
	sub, _ := st.Add(sampleInput("Netflix"))

	later := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st.nowFn = func() time.Time { return later }

	in := sampleInput("Netflix Family")
	in.PlanType = subscription.PlanFamily
	updated, err := st.Update(sub.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "Netflix Family" {
		t.Errorf("Name = %s, expected Netflix Family", updated.Name)
	}
	if updated.ID != sub.ID {
		t.Errorf("ID changed to %s", updated.ID)
	}
	if !updated.CreatedAt.Equal(sub.CreatedAt) {
		t.Errorf("CreatedAt changed to %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, expected %v", updated.UpdatedAt, later)
	}
}

func TestUpdateMissing(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Update("absent", sampleInput("x")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)
	sub, _ := st.Add(sampleInput("Netflix"))
	_, _ = st.Add(sampleInput("Spotify"))

	if err := st.Delete(sub.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if st.Count() != 1 {
		t.Errorf("count = %d, expected 1", st.Count())
	}
	if _, err := st.Get(sub.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted id, got %v", err)
	}
	if err := st.Delete(sub.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestListReturnsCopy(t *testing.T) {
	st := newTestStore(t)
	_, _ = st.Add(sampleInput("Netflix"))

	list := st.List()
	list[0].Name = "mutated"

	got, _ := st.Get("id-1")
	if got.Name != "Netflix" {
		t.Error("List leaked a mutable reference to stored records")
	}
}

func TestClear(t *testing.T) {
	st := newTestStore(t)
	_, _ = st.Add(sampleInput("Netflix"))

	if err := st.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if st.Count() != 0 {
		t.Errorf("count after clear = %d, expected 0", st.Count())
	}
}

func TestSetDisplayCurrency(t *testing.T) {
	st := newTestStore(t)

	if err := st.SetDisplayCurrency("USD"); err != nil {
		t.Fatalf("set display currency: %v", err)
	}
	if st.DisplayCurrency() != "USD" {
		t.Errorf("display currency = %s, expected USD", st.DisplayCurrency())
	}
	if err := st.SetDisplayCurrency("XBT"); err == nil {
		t.Error("expected error for unknown currency")
	}
}

func TestExportImportRoundTripPreservesMetrics(t *testing.T) {
	st := newTestStore(t)
	_, _ = st.Add(sampleInput("Netflix"))

	in := sampleInput("Forgotten VPN")
	in.Category = subscription.CategoryVPN
	in.Price = 700
	in.HoursPerWeek = 0
	in.Importance = 2
	_, _ = st.Add(in)
	_ = st.SetDisplayCurrency("EUR")

	engine := metrics.NewEngine(nil, nil)
	before := make(map[string]metrics.Metrics)
	for _, sub := range st.List() {
		before[sub.ID] = engine.MetricsOf(sub)
	}

	var buf bytes.Buffer
	if err := st.WriteExport(&buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	other := newTestStore(t)
	if err := other.Import(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("import: %v", err)
	}

	if other.DisplayCurrency() != "EUR" {
		t.Errorf("display currency after import = %s, expected EUR", other.DisplayCurrency())
	}
	if other.Count() != st.Count() {
		t.Fatalf("count after import = %d, expected %d", other.Count(), st.Count())
	}
	for _, sub := range other.List() {
		after := engine.MetricsOf(sub)
		if after != before[sub.ID] {
			t.Errorf("metrics changed across export/import for %s\nwant: %+v\ngot:  %+v", sub.Name, before[sub.ID], after)
		}
	}
}

func TestImportRejectsMissingSubscriptions(t *testing.T) {
	st := newTestStore(t)

	err := st.Import(strings.NewReader(`{"currency":"USD","version":1}`))
	if err == nil {
		t.Fatal("expected error for document without subscriptions")
	}
	if st.DisplayCurrency() != "RUB" {
		t.Error("failed import must not change state")
	}
}

func TestImportMalformedJSON(t *testing.T) {
	st := newTestStore(t)
	if err := st.Import(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected parse error")
	}
}
