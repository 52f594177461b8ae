package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// CreateStrategy handles POST /strategies
func (h *Handler) CreateStrategy(w http.ResponseWriter, r *http.Request) {
	var strategy models.Strategy
	if err := json.NewDecoder(r.Body).Decode(&strategy); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strategy.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.db.CreateStrategy(&strategy); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, strategy)
}

// GetAllStrategies handles GET /strategies
func (h *Handler) GetAllStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := h.db.GetAllStrategies()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if strategies == nil {
		strategies = []*models.Strategy{}
	}

	respondJSON(w, http.StatusOK, strategies)
}

// DeleteStrategy handles DELETE /strategies/{id}
func (h *Handler) DeleteStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid strategy id", http.StatusBadRequest)
		return
	}

	if err := h.db.DeleteStrategy(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
