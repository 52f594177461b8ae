package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// TradeRepository defines the interface for trade database operations
type TradeRepository interface {
	CreateTrade(t *models.Trade) error
	TradeExistsByOrderID(orderID, source string) (bool, error)
}

// Consumer ingests trade events from external detectors into the journal
type Consumer struct {
	reader *kafka.Reader
	repo   TradeRepository
	logger *zap.Logger
}

// NewConsumer creates a new Kafka consumer for trade events
func NewConsumer(brokers []string, topic, groupID string, repo TradeRepository, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader: reader,
		repo:   repo,
		logger: logger,
	}
}

// Start begins consuming messages from Kafka
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting kafka consumer", zap.String("topic", c.reader.Config().Topic))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("kafka consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil // Context cancelled, normal shutdown
				}
				c.logger.Error("error reading message", zap.Error(err))
				continue
			}

			if err := c.processMessage(msg); err != nil {
				c.logger.Error("error processing message", zap.Error(err))
				// Continue processing other messages
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(msg kafka.Message) error {
	c.logger.Debug("received message",
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
		zap.String("key", string(msg.Key)))

	var event models.TradeEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal trade event: %w", err)
	}

	// Only process TRADE_LOGGED events
	if event.EventType != "TRADE_LOGGED" {
		c.logger.Debug("ignoring event type", zap.String("event_type", event.EventType))
		return nil
	}

	// Check for duplicate (idempotency)
	exists, err := c.repo.TradeExistsByOrderID(event.Data.OrderID, event.Source)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate trade: %w", err)
	}
	if exists {
		c.logger.Info("trade already exists, skipping",
			zap.String("order_id", event.Data.OrderID),
			zap.String("source", event.Source))
		return nil
	}

	trade, err := c.convertEventToTrade(event)
	if err != nil {
		return fmt.Errorf("failed to convert event to trade: %w", err)
	}

	if err := c.repo.CreateTrade(trade); err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}

	c.logger.Info("saved trade from event",
		zap.String("order_id", trade.OrderID),
		zap.String("instrument", trade.Instrument),
		zap.String("account_id", trade.AccountID))

	return nil
}

// convertEventToTrade maps a TradeEvent to a Trade model
func (c *Consumer) convertEventToTrade(event models.TradeEvent) (*models.Trade, error) {
	data := event.Data

	accountID := data.AccountID
	if accountID == "" {
		accountID = data.Account
	}
	if accountID == "" {
		return nil, fmt.Errorf("event missing account id for order %s", data.OrderID)
	}
	if data.Instrument == "" {
		return nil, fmt.Errorf("event missing instrument for order %s", data.OrderID)
	}

	direction := strings.ToLower(data.Direction)
	if direction != models.DirectionLong && direction != models.DirectionShort {
		return nil, fmt.Errorf("invalid trade direction: %s", data.Direction)
	}

	profit := decimal.Zero
	if data.RealizedProfit != "" {
		var err error
		profit, err = decimal.NewFromString(data.RealizedProfit)
		if err != nil {
			return nil, fmt.Errorf("invalid realized profit %s: %w", data.RealizedProfit, err)
		}
	}

	trade := &models.Trade{
		AccountID:         accountID,
		OrderID:           data.OrderID,
		Source:            event.Source,
		Instrument:        data.Instrument,
		StrategyName:      data.StrategyName,
		Direction:         direction,
		Status:            strings.ToLower(data.Status),
		RealizedProfit:    profit,
		PlannedRiskReward: data.PlannedRiskReward,
		Notes:             data.Notes,
	}

	trade.RiskAmount = parseOptionalDecimal(data.RiskAmount)
	trade.PositionSize = parseOptionalDecimal(data.PositionSize)
	trade.AccountSizeAtTrade = parseOptionalDecimal(data.AccountSize)

	// Parse opened_at timestamp
	if data.OpenedAt != nil && *data.OpenedAt != "" {
		openedAt, err := time.Parse(time.RFC3339, *data.OpenedAt)
		if err != nil {
			// Try parsing without timezone
			openedAt, err = time.Parse("2006-01-02T15:04:05", *data.OpenedAt)
			if err != nil {
				openedAt = event.Timestamp
			}
		}
		if !openedAt.IsZero() {
			trade.OpenedAt = &openedAt
		}
	} else if !event.Timestamp.IsZero() {
		ts := event.Timestamp
		trade.OpenedAt = &ts
	}

	return trade, nil
}

func parseOptionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
