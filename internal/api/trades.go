package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rgoodman/trade-journal-service/internal/analytics"
	"github.com/rgoodman/trade-journal-service/internal/models"
)

// CreateTrade handles POST /trades
func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var trade models.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if trade.AccountRef() == "" {
		http.Error(w, "account_id is required", http.StatusBadRequest)
		return
	}
	if trade.Instrument == "" {
		http.Error(w, "instrument is required", http.StatusBadRequest)
		return
	}
	if trade.Direction != models.DirectionLong && trade.Direction != models.DirectionShort {
		http.Error(w, "direction must be long or short", http.StatusBadRequest)
		return
	}

	if err := h.db.CreateTrade(&trade); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishTradeCreated(r.Context(), &trade); err != nil {
			h.logger.Warn("failed to publish trade created event",
				zap.Int("trade_id", trade.ID), zap.Error(err))
		}
	}
	h.invalidateAccount(r.Context(), trade.AccountRef())

	respondJSON(w, http.StatusCreated, trade)
}

// GetTrade handles GET /trades/{id}
func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid trade id", http.StatusBadRequest)
		return
	}

	trade, err := h.db.GetTradeByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, trade)
}

// GetAccountTrades handles GET /accounts/{id}/trades. Supports window,
// status, instrument and strategy query filters.
func (h *Handler) GetAccountTrades(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	trades, err := h.db.GetTradesByAccount(accountID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	filtered := analytics.FilterTrades(trades, analytics.Filter{
		AccountID:  accountID,
		Window:     analytics.ParseTimeWindow(q.Get("window")),
		Status:     q.Get("status"),
		Instrument: q.Get("instrument"),
		Strategy:   q.Get("strategy"),
	})

	respondJSON(w, http.StatusOK, filtered)
}

// GetRecentTrades handles GET /accounts/{id}/trades/recent
func (h *Handler) GetRecentTrades(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	trades, err := h.db.GetRecentTrades(accountID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if trades == nil {
		trades = []*models.Trade{}
	}

	respondJSON(w, http.StatusOK, trades)
}

// UpdateTrade handles PUT /trades/{id}
func (h *Handler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid trade id", http.StatusBadRequest)
		return
	}

	var trade models.Trade
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	trade.ID = id

	if err := h.db.UpdateTrade(&trade); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishTradeUpdated(r.Context(), &trade); err != nil {
			h.logger.Warn("failed to publish trade updated event",
				zap.Int("trade_id", trade.ID), zap.Error(err))
		}
	}
	h.invalidateAccount(r.Context(), trade.AccountRef())

	respondJSON(w, http.StatusOK, trade)
}

// DeleteTrade handles DELETE /trades/{id}
func (h *Handler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid trade id", http.StatusBadRequest)
		return
	}

	trade, err := h.db.GetTradeByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := h.db.DeleteTrade(id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishTradeDeleted(r.Context(), id, trade.AccountRef()); err != nil {
			h.logger.Warn("failed to publish trade deleted event",
				zap.Int("trade_id", id), zap.Error(err))
		}
	}
	h.invalidateAccount(r.Context(), trade.AccountRef())

	w.WriteHeader(http.StatusNoContent)
}
