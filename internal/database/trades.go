package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

const tradeColumns = `
	id, account_id, order_id, source, instrument, strategy_name, direction,
	status, opened_at, realized_profit, risk_amount, risk_reward_ratio,
	planned_risk_reward, risk_reward, position_size, account_size_at_trade,
	notes, created_at, updated_at`

// CreateTrade inserts a new journal entry
func (db *DB) CreateTrade(t *models.Trade) error {
	query := `
		INSERT INTO trades (
			account_id, order_id, source, instrument, strategy_name, direction,
			status, opened_at, realized_profit, risk_amount, risk_reward_ratio,
			planned_risk_reward, risk_reward, position_size, account_size_at_trade,
			notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		RETURNING id
	`
	now := time.Now()

	err := db.conn.QueryRow(query,
		t.AccountRef(), nullString(t.OrderID), nullString(t.Source), t.Instrument,
		nullString(t.StrategyName), t.Direction, nullString(t.Status), t.OpenedAt,
		t.RealizedProfit, decimalPtrValue(t.RiskAmount), t.RiskRewardRatio,
		nullString(t.PlannedRiskReward), t.RiskReward, decimalPtrValue(t.PositionSize),
		decimalPtrValue(t.AccountSizeAtTrade), nullString(t.Notes), now, now,
	).Scan(&t.ID)

	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	t.AccountID = t.AccountRef()
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

// GetTradeByID retrieves a single journal entry
func (db *DB) GetTradeByID(id int) (*models.Trade, error) {
	query := `SELECT` + tradeColumns + ` FROM trades WHERE id = $1`
	t, err := scanTrade(db.conn.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trade not found: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}
	return t, nil
}

// GetTradesByAccount retrieves every journal entry for an account in
// insertion order. The analytics engine consumes the full set.
func (db *DB) GetTradesByAccount(accountID string) ([]*models.Trade, error) {
	query := `SELECT` + tradeColumns + ` FROM trades WHERE account_id = $1 ORDER BY id ASC`
	return scanTrades(db.conn.Query(query, accountID))
}

// GetRecentTrades retrieves the most recent journal entries for an account,
// newest first by event time.
func (db *DB) GetRecentTrades(accountID string, limit int) ([]*models.Trade, error) {
	query := `SELECT` + tradeColumns + `
		FROM trades
		WHERE account_id = $1
		ORDER BY COALESCE(opened_at, created_at) DESC
		LIMIT $2`
	return scanTrades(db.conn.Query(query, accountID, limit))
}

// GetAllTrades retrieves journal entries across accounts with a limit
func (db *DB) GetAllTrades(limit int) ([]*models.Trade, error) {
	query := `SELECT` + tradeColumns + ` FROM trades ORDER BY id DESC LIMIT $1`
	return scanTrades(db.conn.Query(query, limit))
}

// UpdateTrade updates an existing journal entry
func (db *DB) UpdateTrade(t *models.Trade) error {
	query := `
		UPDATE trades SET
			account_id = $2, instrument = $3, strategy_name = $4, direction = $5,
			status = $6, opened_at = $7, realized_profit = $8, risk_amount = $9,
			risk_reward_ratio = $10, planned_risk_reward = $11, risk_reward = $12,
			position_size = $13, account_size_at_trade = $14, notes = $15,
			updated_at = $16
		WHERE id = $1
	`
	now := time.Now()
	result, err := db.conn.Exec(query,
		t.ID, t.AccountRef(), t.Instrument, nullString(t.StrategyName), t.Direction,
		nullString(t.Status), t.OpenedAt, t.RealizedProfit, decimalPtrValue(t.RiskAmount),
		t.RiskRewardRatio, nullString(t.PlannedRiskReward), t.RiskReward,
		decimalPtrValue(t.PositionSize), decimalPtrValue(t.AccountSizeAtTrade),
		nullString(t.Notes), now,
	)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("trade not found: %d", t.ID)
	}
	t.UpdatedAt = now
	return nil
}

// DeleteTrade removes a journal entry by ID
func (db *DB) DeleteTrade(id int) error {
	result, err := db.conn.Exec(`DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("trade not found: %d", id)
	}
	return nil
}

// TradeExistsByOrderID checks if a trade with the given order_id and source
// already exists. Used for idempotent event ingestion.
func (db *DB) TradeExistsByOrderID(orderID, source string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM trades WHERE order_id = $1 AND source = $2)`
	var exists bool
	if err := db.conn.QueryRow(query, orderID, source).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for duplicate trade: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var orderID, source, strategyName, status, plannedRR, notes sql.NullString
	var openedAt sql.NullTime
	var realizedProfit, riskAmount, positionSize, accountSize sql.NullString
	var riskRewardRatio, riskReward sql.NullFloat64

	err := row.Scan(
		&t.ID, &t.AccountID, &orderID, &source, &t.Instrument, &strategyName,
		&t.Direction, &status, &openedAt, &realizedProfit, &riskAmount,
		&riskRewardRatio, &plannedRR, &riskReward, &positionSize, &accountSize,
		&notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.OrderID = orderID.String
	t.Source = source.String
	t.StrategyName = strategyName.String
	t.Status = status.String
	t.PlannedRiskReward = plannedRR.String
	t.Notes = notes.String
	if openedAt.Valid {
		t.OpenedAt = &openedAt.Time
	}
	if realizedProfit.Valid {
		t.RealizedProfit, _ = decimal.NewFromString(realizedProfit.String)
	}
	t.RiskAmount = decimalPtrFromNull(riskAmount)
	t.PositionSize = decimalPtrFromNull(positionSize)
	t.AccountSizeAtTrade = decimalPtrFromNull(accountSize)
	if riskRewardRatio.Valid {
		t.RiskRewardRatio = &riskRewardRatio.Float64
	}
	if riskReward.Valid {
		t.RiskReward = &riskReward.Float64
	}

	return &t, nil
}

func scanTrades(rows *sql.Rows, err error) ([]*models.Trade, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func decimalPtrFromNull(v sql.NullString) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil
	}
	return &d
}

func decimalPtrValue(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
