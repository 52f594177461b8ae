package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rgoodman/trade-journal-service/internal/config"
	"github.com/rgoodman/trade-journal-service/internal/models"
)

// Store defines the database operations the API depends on
type Store interface {
	CreateTrade(t *models.Trade) error
	GetTradeByID(id int) (*models.Trade, error)
	GetTradesByAccount(accountID string) ([]*models.Trade, error)
	GetRecentTrades(accountID string, limit int) ([]*models.Trade, error)
	UpdateTrade(t *models.Trade) error
	DeleteTrade(id int) error

	CreateAccount(a *models.Account) error
	GetAccountByID(id string) (*models.Account, error)
	GetAllAccounts() ([]*models.Account, error)
	UpdateAccountBalance(id string, balance decimal.Decimal) error
	DeleteAccount(id string) error

	CreateStrategy(s *models.Strategy) error
	GetAllStrategies() ([]*models.Strategy, error)
	DeleteStrategy(id int) error
}

// Publisher defines the journal event publishing operations
type Publisher interface {
	PublishTradeCreated(ctx context.Context, trade *models.Trade) error
	PublishTradeUpdated(ctx context.Context, trade *models.Trade) error
	PublishTradeDeleted(ctx context.Context, tradeID int, accountID string) error
}

// SnapshotCache defines the analytics snapshot cache operations
type SnapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	InvalidateAccount(ctx context.Context, accountID string) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	db       Store
	producer Publisher
	cache    SnapshotCache
	logger   *zap.Logger
	cfg      config.AnalyticsConfig
}

// NewHandler creates a new Handler. producer and cache may be nil when the
// corresponding backends are disabled.
func NewHandler(db Store, producer Publisher, cache SnapshotCache, logger *zap.Logger, cfg config.AnalyticsConfig) *Handler {
	return &Handler{
		db:       db,
		producer: producer,
		cache:    cache,
		logger:   logger,
		cfg:      cfg,
	}
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) invalidateAccount(ctx context.Context, accountID string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateAccount(ctx, accountID); err != nil {
		h.logger.Warn("failed to invalidate analytics cache",
			zap.String("account_id", accountID), zap.Error(err))
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
