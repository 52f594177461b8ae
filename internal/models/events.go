package models

import "time"

// TradeEvent represents an incoming Kafka event from an external trade
// detector. Numeric fields arrive as strings and are parsed on ingest.
type TradeEvent struct {
	EventType string         `json:"event_type"`
	Source    string         `json:"source"`
	Timestamp time.Time      `json:"timestamp"`
	Data      TradeEventData `json:"data"`
}

// TradeEventData carries the trade payload of a TradeEvent.
type TradeEventData struct {
	OrderID           string  `json:"order_id"`
	AccountID         string  `json:"account_id,omitempty"`
	Account           string  `json:"account,omitempty"`
	Instrument        string  `json:"instrument"`
	Direction         string  `json:"direction"`
	Status            string  `json:"status,omitempty"`
	StrategyName      string  `json:"strategy_name,omitempty"`
	RealizedProfit    string  `json:"realized_profit,omitempty"`
	RiskAmount        string  `json:"risk_amount,omitempty"`
	PlannedRiskReward string  `json:"planned_risk_reward,omitempty"`
	PositionSize      string  `json:"position_size,omitempty"`
	AccountSize       string  `json:"account_size,omitempty"`
	Notes             string  `json:"notes,omitempty"`
	OpenedAt          *string `json:"opened_at,omitempty"`
}

// JournalEvent represents a Kafka event published when a journal entry
// changes.
type JournalEvent struct {
	EventType string    `json:"event_type"`
	Trade     *Trade    `json:"trade,omitempty"`
	TradeID   int       `json:"trade_id"`
	AccountID string    `json:"account_id"`
	Timestamp time.Time `json:"timestamp"`
}
