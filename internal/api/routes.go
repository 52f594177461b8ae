package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Trade routes
	api.HandleFunc("/trades", handler.CreateTrade).Methods("POST")
	api.HandleFunc("/trades/{id:[0-9]+}", handler.GetTrade).Methods("GET")
	api.HandleFunc("/trades/{id:[0-9]+}", handler.UpdateTrade).Methods("PUT")
	api.HandleFunc("/trades/{id:[0-9]+}", handler.DeleteTrade).Methods("DELETE")

	// Account routes
	api.HandleFunc("/accounts", handler.CreateAccount).Methods("POST")
	api.HandleFunc("/accounts", handler.GetAllAccounts).Methods("GET")
	api.HandleFunc("/accounts/{id}", handler.GetAccount).Methods("GET")
	api.HandleFunc("/accounts/{id}", handler.DeleteAccount).Methods("DELETE")
	api.HandleFunc("/accounts/{id}/balance", handler.UpdateAccountBalance).Methods("PUT")
	api.HandleFunc("/accounts/{id}/trades", handler.GetAccountTrades).Methods("GET")
	api.HandleFunc("/accounts/{id}/trades/recent", handler.GetRecentTrades).Methods("GET")

	// Analytics routes
	api.HandleFunc("/accounts/{id}/analytics/summary", handler.GetPerformanceSummary).Methods("GET")
	api.HandleFunc("/accounts/{id}/analytics/buckets", handler.GetBuckets).Methods("GET")
	api.HandleFunc("/accounts/{id}/analytics/risk", handler.GetRiskSummary).Methods("GET")
	api.HandleFunc("/accounts/{id}/analytics/pairs", handler.GetPairBreakdown).Methods("GET")
	api.HandleFunc("/accounts/{id}/analytics/strategies", handler.GetStrategyBreakdown).Methods("GET")
	api.HandleFunc("/accounts/{id}/analytics/equity-curve", handler.GetEquityCurve).Methods("GET")

	// Strategy routes
	api.HandleFunc("/strategies", handler.CreateStrategy).Methods("POST")
	api.HandleFunc("/strategies", handler.GetAllStrategies).Methods("GET")
	api.HandleFunc("/strategies/{id:[0-9]+}", handler.DeleteStrategy).Methods("DELETE")

	return r
}
