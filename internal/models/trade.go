package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Trade direction constants
const (
	DirectionLong  = "long"
	DirectionShort = "short"
)

// Trade status constants. Win and loss are closed ("completed") trades;
// pending and active trades are still open.
const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusWin     = "win"
	StatusLoss    = "loss"
)

// Trade represents a single journal entry for an executed or planned trade.
// Optional numeric fields use pointers so that "not recorded" stays
// distinguishable from zero; the analytics engine excludes absent values
// from averages instead of coercing them to 0.
type Trade struct {
	ID                 int              `json:"id"`
	AccountID          string           `json:"account_id,omitempty"`
	Account            string           `json:"account,omitempty"` // legacy key, see AccountRef
	OrderID            string           `json:"order_id,omitempty"`
	Source             string           `json:"source,omitempty"`
	Instrument         string           `json:"instrument"`
	StrategyName       string           `json:"strategy_name,omitempty"`
	Direction          string           `json:"direction"`
	Status             string           `json:"status,omitempty"`
	OpenedAt           *time.Time       `json:"opened_at,omitempty"`
	RealizedProfit     decimal.Decimal  `json:"realized_profit,omitempty"`
	RiskAmount         *decimal.Decimal `json:"risk_amount,omitempty"`
	RiskRewardRatio    *float64         `json:"risk_reward_ratio,omitempty"`
	PlannedRiskReward  string           `json:"planned_risk_reward,omitempty"`
	RiskReward         *float64         `json:"risk_reward,omitempty"`
	PositionSize       *decimal.Decimal `json:"position_size,omitempty"`
	AccountSizeAtTrade *decimal.Decimal `json:"account_size_at_trade,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// AccountRef returns the owning account reference. Entries imported from
// older exports carry the account under "account" instead of "account_id",
// so both keys are checked, in that order.
func (t *Trade) AccountRef() string {
	if t.AccountID != "" {
		return t.AccountID
	}
	return t.Account
}

// EventTime returns the event time of the trade: the open timestamp when
// recorded, otherwise the record creation time.
func (t *Trade) EventTime() time.Time {
	if t.OpenedAt != nil && !t.OpenedAt.IsZero() {
		return *t.OpenedAt
	}
	return t.CreatedAt
}

// EffectiveStatus returns the trade status, treating a missing status as
// pending.
func (t *Trade) EffectiveStatus() string {
	if t.Status == "" {
		return StatusPending
	}
	return t.Status
}

// IsCompleted reports whether the trade has been closed with a win or loss
// outcome. Only completed trades enter profit and win-rate arithmetic.
func (t *Trade) IsCompleted() bool {
	s := t.EffectiveStatus()
	return s == StatusWin || s == StatusLoss
}

// IsOpen reports whether the trade is still pending or active.
func (t *Trade) IsOpen() bool {
	return !t.IsCompleted()
}

// ProfitValue returns the realized profit as a float64, 0 when absent.
func (t *Trade) ProfitValue() float64 {
	return t.RealizedProfit.InexactFloat64()
}

// RiskRewardValue resolves the risk/reward ratio for a trade. Three sources
// are tried in order: the computed ratio, the planned "1:N" string, and the
// plain risk-reward field. Returns 0 when none is recorded.
func (t *Trade) RiskRewardValue() float64 {
	if t.RiskRewardRatio != nil {
		return *t.RiskRewardRatio
	}
	if rr, ok := parsePlannedRiskReward(t.PlannedRiskReward); ok {
		return rr
	}
	if t.RiskReward != nil {
		return *t.RiskReward
	}
	return 0
}

// AccountSizeOr returns the account-size snapshot recorded on the trade,
// or def when absent.
func (t *Trade) AccountSizeOr(def float64) float64 {
	if t.AccountSizeAtTrade != nil {
		return t.AccountSizeAtTrade.InexactFloat64()
	}
	return def
}

// parsePlannedRiskReward parses a planned risk/reward string such as
// "1:2.5" or a bare number such as "2.5".
func parsePlannedRiskReward(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[idx+1:]
	}
	rr, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return rr, true
}
