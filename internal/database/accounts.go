package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// CreateAccount inserts or updates a trading account
func (db *DB) CreateAccount(a *models.Account) error {
	query := `
		INSERT INTO accounts (id, name, balance, initial_balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			balance = EXCLUDED.balance,
			initial_balance = EXCLUDED.initial_balance,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	_, err := db.conn.Exec(query,
		a.ID, a.Name, a.Balance, decimalPtrValue(a.InitialBalance),
		nullString(a.Currency), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// GetAccountByID retrieves an account by its identifier
func (db *DB) GetAccountByID(id string) (*models.Account, error) {
	query := `
		SELECT id, name, balance, initial_balance, currency, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var a models.Account
	var initialBalance, currency sql.NullString
	var balance string

	err := db.conn.QueryRow(query, id).Scan(
		&a.ID, &a.Name, &balance, &initialBalance, &currency, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	a.Balance, _ = decimal.NewFromString(balance)
	a.InitialBalance = decimalPtrFromNull(initialBalance)
	a.Currency = currency.String
	return &a, nil
}

// GetAllAccounts retrieves every account
func (db *DB) GetAllAccounts() ([]*models.Account, error) {
	query := `
		SELECT id, name, balance, initial_balance, currency, created_at, updated_at
		FROM accounts
		ORDER BY created_at ASC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		var initialBalance, currency sql.NullString
		var balance string

		if err := rows.Scan(&a.ID, &a.Name, &balance, &initialBalance, &currency, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Balance, _ = decimal.NewFromString(balance)
		a.InitialBalance = decimalPtrFromNull(initialBalance)
		a.Currency = currency.String
		accounts = append(accounts, &a)
	}
	return accounts, nil
}

// UpdateAccountBalance sets the current balance of an account
func (db *DB) UpdateAccountBalance(id string, balance decimal.Decimal) error {
	result, err := db.conn.Exec(
		`UPDATE accounts SET balance = $2, updated_at = $3 WHERE id = $1`,
		id, balance, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}

// DeleteAccount removes an account and its journal entries
func (db *DB) DeleteAccount(id string) error {
	result, err := db.conn.Exec(`DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("account not found: %s", id)
	}
	return nil
}
