package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a trading account being journaled.
type Account struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Balance        decimal.Decimal  `json:"balance"`
	InitialBalance *decimal.Decimal `json:"initial_balance,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BalanceValue returns the current balance as a float64.
func (a *Account) BalanceValue() float64 {
	return a.Balance.InexactFloat64()
}

// InitialBalanceValue returns the starting balance, falling back to the
// current balance when no initial balance was recorded.
func (a *Account) InitialBalanceValue() float64 {
	if a.InitialBalance != nil {
		return a.InitialBalance.InexactFloat64()
	}
	return a.Balance.InexactFloat64()
}
