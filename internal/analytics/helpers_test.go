package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// trade builds a minimal trade for a test case.
func trade(status string, profit float64) *models.Trade {
	return &models.Trade{
		AccountID:      "acct-1",
		Instrument:     "EUR/USD",
		Direction:      models.DirectionLong,
		Status:         status,
		RealizedProfit: decimal.NewFromFloat(profit),
		CreatedAt:      time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

// tradeAt builds a trade with an explicit open time.
func tradeAt(status string, profit float64, at time.Time) *models.Trade {
	t := trade(status, profit)
	t.OpenedAt = &at
	return t
}

func decimalFrom(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func floatPtr(v float64) *float64 {
	return &v
}

func testAccount(balance, initial float64) *models.Account {
	return &models.Account{
		ID:             "acct-1",
		Name:           "Main",
		Balance:        decimal.NewFromFloat(balance),
		InitialBalance: decPtr(initial),
	}
}
