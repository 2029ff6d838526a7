// Package server exposes the subscription collection over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wessmexura1/subscription-calculator/internal/metrics"
	"github.com/wessmexura1/subscription-calculator/internal/presets"
	"github.com/wessmexura1/subscription-calculator/internal/store"
	"github.com/wessmexura1/subscription-calculator/internal/subscription"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	store         *store.Store
	engine        *metrics.Engine
	maxUploadSize int64
	version       string
}

// Options tunes the handler beyond its required collaborators.
type Options struct {
	MaxUploadSize int64
	Version       string
	ExposeMetrics bool
}

// NewHandler constructs the HTTP handler serving the subscription API.
func NewHandler(logger *zap.Logger, st *store.Store, engine *metrics.Engine, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = metrics.NewEngine(nil, logger)
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		store:         st,
		engine:        engine,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Collection endpoints
	mux.HandleFunc("/api/subscriptions", h.handleSubscriptions)
	mux.HandleFunc("/api/subscriptions/", h.handleSubscriptionByID)

	// Aggregates
	mux.HandleFunc("/api/stats", h.handleStats)

	// Backup endpoints
	mux.HandleFunc("/api/export", h.handleExport)
	mux.HandleFunc("/api/import", h.handleImport)

	// Catalogue of known services
	mux.HandleFunc("/api/presets", h.handlePresets)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.HandleFunc("/healthz", h.handleHealth)

	if opts.ExposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	return mux
}

// subscriptionItem pairs a stored subscription with its derived metrics,
// converted to the response currency.
type subscriptionItem struct {
	subscription.Subscription
	Metrics metrics.Metrics `json:"metrics"`
}

type listResponse struct {
	Subscriptions []subscriptionItem `json:"subscriptions"`
	Currency      string             `json:"currency"`
}

func (h *handler) handleSubscriptions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSubscriptions(w, r)
	case http.MethodPost:
		h.addSubscription(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filters := metrics.Filters{
		Category:       subscription.Category(query.Get("category")),
		Recommendation: subscription.Recommendation(query.Get("recommendation")),
		Search:         query.Get("search"),
	}
	if filters.Category != "" && !filters.Category.Valid() {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", filters.Category), "server.listSubscriptions")
		return
	}
	if filters.Recommendation != "" && !filters.Recommendation.Valid() {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown recommendation %q", filters.Recommendation), "server.listSubscriptions")
		return
	}
	for _, bound := range []struct {
		param  string
		target **float64
	}{
		{"minMonthlyCost", &filters.MinMonthlyCost},
		{"maxMonthlyCost", &filters.MaxMonthlyCost},
	} {
		raw := query.Get(bound.param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %v", bound.param, err), "server.listSubscriptions")
			return
		}
		*bound.target = &value
	}

	subs := h.engine.Filter(h.store.List(), filters)

	if sortBy := query.Get("sortBy"); sortBy != "" {
		descending := query.Get("order") != "asc"
		subs = h.engine.Sort(subs, metrics.SortField(sortBy), descending)
	}

	currency, ok := h.responseCurrency(w, r)
	if !ok {
		return
	}

	items := make([]subscriptionItem, 0, len(subs))
	for _, sub := range subs {
		items = append(items, subscriptionItem{
			Subscription: sub,
			Metrics:      h.displayMetrics(h.engine.MetricsOf(sub), currency),
		})
	}

	h.writeJSON(w, http.StatusOK, listResponse{Subscriptions: items, Currency: currency})
}

func (h *handler) addSubscription(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r, "server.addSubscription")
	if !ok {
		return
	}

	sub, err := h.store.Add(in)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.addSubscription")
		return
	}

	h.writeJSON(w, http.StatusCreated, subscriptionItem{
		Subscription: sub,
		Metrics:      h.displayMetrics(h.engine.MetricsOf(sub), h.store.DisplayCurrency()),
	})
}

func (h *handler) handleSubscriptionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/subscriptions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		sub, err := h.store.Get(id)
		if err != nil {
			h.respondStoreError(w, err, "server.getSubscription")
			return
		}
		currency, ok := h.responseCurrency(w, r)
		if !ok {
			return
		}
		h.writeJSON(w, http.StatusOK, subscriptionItem{
			Subscription: sub,
			Metrics:      h.displayMetrics(h.engine.MetricsOf(sub), currency),
		})
	case http.MethodPut:
		in, ok := h.decodeInput(w, r, "server.updateSubscription")
		if !ok {
			return
		}
		sub, err := h.store.Update(id, in)
		if err != nil {
			h.respondStoreError(w, err, "server.updateSubscription")
			return
		}
		h.writeJSON(w, http.StatusOK, subscriptionItem{
			Subscription: sub,
			Metrics:      h.displayMetrics(h.engine.MetricsOf(sub), h.store.DisplayCurrency()),
		})
	case http.MethodDelete:
		if err := h.store.Delete(id); err != nil {
			h.respondStoreError(w, err, "server.deleteSubscription")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

type statsResponse struct {
	metrics.OverallStats
	Currency string `json:"currency"`
}

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	currency, ok := h.responseCurrency(w, r)
	if !ok {
		return
	}

	stats := h.engine.OverallStatsOf(h.store.List())

	conv := h.engine.Converter()
	stats.TotalMonthlyCost = conv.FromBase(stats.TotalMonthlyCost, currency)
	stats.TotalYearlyCost = conv.FromBase(stats.TotalYearlyCost, currency)
	stats.AverageCostPerHour = conv.FromBase(stats.AverageCostPerHour, currency)
	for i := range stats.CategoryBreakdown {
		stats.CategoryBreakdown[i].TotalMonthlyCost = conv.FromBase(stats.CategoryBreakdown[i].TotalMonthlyCost, currency)
		stats.CategoryBreakdown[i].TotalYearlyCost = conv.FromBase(stats.CategoryBreakdown[i].TotalYearlyCost, currency)
	}

	h.writeJSON(w, http.StatusOK, statsResponse{OverallStats: stats, Currency: currency})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="subscriptions.json"`)
	if err := h.store.WriteExport(w); err != nil && h.logger != nil {
		h.logger.Error("failed to write export",
			zap.String("op", "server.handleExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	if err := h.store.Import(r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), "server.handleImport")
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to import: %v", err), "server.handleImport")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int{"count": h.store.Count()})
}

func (h *handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	catalogue := presets.All()
	if category := subscription.Category(r.URL.Query().Get("category")); category != "" {
		if !category.Valid() {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", category), "server.handlePresets")
			return
		}
		catalogue = presets.ByCategory(category)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"presets": catalogue})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// responseCurrency resolves the currency query parameter, falling back to the
// store's display currency.
func (h *handler) responseCurrency(w http.ResponseWriter, r *http.Request) (string, bool) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		return h.store.DisplayCurrency(), true
	}
	if err := validation.ValidateCurrency(currency); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.responseCurrency")
		return "", false
	}
	return currency, true
}

// displayMetrics converts the monetary fields of m to the response currency.
// Per-hour infinities survive the conversion unchanged.
func (h *handler) displayMetrics(m metrics.Metrics, currency string) metrics.Metrics {
	conv := h.engine.Converter()
	m.MonthlyCost = conv.FromBase(m.MonthlyCost, currency)
	m.YearlyCost = conv.FromBase(m.YearlyCost, currency)
	m.CostPerHour = conv.FromBase(m.CostPerHour, currency)
	return m
}

func (h *handler) decodeInput(w http.ResponseWriter, r *http.Request, op string) (subscription.Input, bool) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var in subscription.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode subscription: %v", err), op)
		return subscription.Input{}, false
	}
	return in, true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	status := http.StatusBadRequest
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
	}
	h.respondError(w, status, err.Error(), op)
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
