package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// CreateAccount handles POST /accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var account models.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if account.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.db.CreateAccount(&account); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, account)
}

// GetAccount handles GET /accounts/{id}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.db.GetAccountByID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, account)
}

// GetAllAccounts handles GET /accounts
func (h *Handler) GetAllAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.db.GetAllAccounts()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}

	respondJSON(w, http.StatusOK, accounts)
}

// UpdateAccountBalance handles PUT /accounts/{id}/balance
func (h *Handler) UpdateAccountBalance(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	var req struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.db.UpdateAccountBalance(accountID, req.Balance); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.invalidateAccount(r.Context(), accountID)

	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteAccount handles DELETE /accounts/{id}
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	if err := h.db.DeleteAccount(accountID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.invalidateAccount(r.Context(), accountID)

	w.WriteHeader(http.StatusNoContent)
}
