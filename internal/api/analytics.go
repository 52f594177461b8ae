package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rgoodman/trade-journal-service/internal/analytics"
	"github.com/rgoodman/trade-journal-service/internal/cache"
	"github.com/rgoodman/trade-journal-service/internal/models"
)

func (h *Handler) analyticsConfig() analytics.Config {
	return analytics.Config{
		DefaultAccountSize:   h.cfg.DefaultAccountSize,
		InfiniteProfitFactor: h.cfg.InfiniteProfitFactor,
	}
}

// accountTrades loads and filters one account's trades for an analytics view
func (h *Handler) accountTrades(r *http.Request, accountID string) ([]*models.Trade, analytics.Filter, error) {
	trades, err := h.db.GetTradesByAccount(accountID)
	if err != nil {
		return nil, analytics.Filter{}, err
	}

	q := r.URL.Query()
	f := analytics.Filter{
		AccountID:  accountID,
		Window:     analytics.ParseTimeWindow(q.Get("window")),
		Instrument: q.Get("instrument"),
		Strategy:   q.Get("strategy"),
	}
	return analytics.FilterTrades(trades, f), f, nil
}

// cacheable reports whether a filter is a pure account+window view. Views
// narrowed by instrument or strategy are computed fresh.
func cacheable(f analytics.Filter) bool {
	return f.Instrument == "" && f.Strategy == "" && f.Status == ""
}

func (h *Handler) tryCache(r *http.Request, key string, dest interface{}) bool {
	if h.cache == nil {
		return false
	}
	hit, err := h.cache.Get(r.Context(), key, dest)
	if err != nil {
		h.logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (h *Handler) storeCache(r *http.Request, key string, value interface{}) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(r.Context(), key, value); err != nil {
		h.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// GetPerformanceSummary handles GET /accounts/{id}/analytics/summary
func (h *Handler) GetPerformanceSummary(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	trades, f, err := h.accountTrades(r, accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	key := cache.Key(accountID, "summary", string(f.Window))
	if cacheable(f) {
		var cached analytics.PerformanceSummary
		if h.tryCache(r, key, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	summary := analytics.Summarize(trades, h.analyticsConfig())
	if cacheable(f) {
		h.storeCache(r, key, summary)
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetBuckets handles GET /accounts/{id}/analytics/buckets
func (h *Handler) GetBuckets(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]
	q := r.URL.Query()

	g := analytics.Granularity(q.Get("granularity"))
	switch g {
	case analytics.GranularityHour, analytics.GranularityWeekday, analytics.GranularityWeek:
	default:
		http.Error(w, "granularity must be hour, weekday or week", http.StatusBadRequest)
		return
	}

	count := h.cfg.DefaultWeekBuckets
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid count", http.StatusBadRequest)
			return
		}
		count = n
	}

	trades, f, err := h.accountTrades(r, accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	key := cache.Key(accountID, "buckets-"+string(g), string(f.Window))
	if cacheable(f) && q.Get("count") == "" {
		var cached []analytics.BucketResult
		if h.tryCache(r, key, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	buckets := analytics.BucketBy(trades, g, count, time.Now(), h.analyticsConfig())
	if cacheable(f) && q.Get("count") == "" {
		h.storeCache(r, key, buckets)
	}

	respondJSON(w, http.StatusOK, buckets)
}

// GetRiskSummary handles GET /accounts/{id}/analytics/risk
func (h *Handler) GetRiskSummary(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	account, err := h.db.GetAccountByID(accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	trades, f, err := h.accountTrades(r, accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	key := cache.Key(accountID, "risk", string(f.Window))
	if cacheable(f) {
		var cached analytics.RiskSummary
		if h.tryCache(r, key, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	summary := analytics.ComputeRisk(trades, account, h.analyticsConfig())
	if cacheable(f) {
		h.storeCache(r, key, summary)
	}

	respondJSON(w, http.StatusOK, summary)
}

// GetPairBreakdown handles GET /accounts/{id}/analytics/pairs
func (h *Handler) GetPairBreakdown(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	trades, f, err := h.accountTrades(r, accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	key := cache.Key(accountID, "pairs", string(f.Window))
	if cacheable(f) {
		var cached []analytics.PairBreakdown
		if h.tryCache(r, key, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	breakdown := analytics.BreakdownByInstrument(trades)
	if cacheable(f) {
		h.storeCache(r, key, breakdown)
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// GetStrategyBreakdown handles GET /accounts/{id}/analytics/strategies
func (h *Handler) GetStrategyBreakdown(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	strategies, err := h.db.GetAllStrategies()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	trades, f, err := h.accountTrades(r, accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	key := cache.Key(accountID, "strategies", string(f.Window))
	if cacheable(f) {
		var cached []analytics.StrategyBreakdown
		if h.tryCache(r, key, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	breakdown := analytics.BreakdownByStrategy(trades, strategies)
	if cacheable(f) {
		h.storeCache(r, key, breakdown)
	}

	respondJSON(w, http.StatusOK, breakdown)
}

// GetEquityCurve handles GET /accounts/{id}/analytics/equity-curve
func (h *Handler) GetEquityCurve(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	trades, f, err := h.accountTrades(r, accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	key := cache.Key(accountID, "equity-curve", string(f.Window))
	if cacheable(f) {
		var cached []analytics.EquityPoint
		if h.tryCache(r, key, &cached) {
			respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	curve := analytics.CumulativeProfit(trades)
	if cacheable(f) {
		h.storeCache(r, key, curve)
	}

	respondJSON(w, http.StatusOK, curve)
}
