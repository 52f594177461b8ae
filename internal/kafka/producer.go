package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// Producer handles publishing journal events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishTradeCreated publishes a trade created event
func (p *Producer) PublishTradeCreated(ctx context.Context, trade *models.Trade) error {
	event := models.JournalEvent{
		EventType: "TRADE_CREATED",
		Trade:     trade,
		TradeID:   trade.ID,
		AccountID: trade.AccountRef(),
		Timestamp: time.Now(),
	}
	return p.publish(ctx, trade.AccountRef(), event)
}

// PublishTradeUpdated publishes a trade updated event
func (p *Producer) PublishTradeUpdated(ctx context.Context, trade *models.Trade) error {
	event := models.JournalEvent{
		EventType: "TRADE_UPDATED",
		Trade:     trade,
		TradeID:   trade.ID,
		AccountID: trade.AccountRef(),
		Timestamp: time.Now(),
	}
	return p.publish(ctx, trade.AccountRef(), event)
}

// PublishTradeDeleted publishes a trade deleted event
func (p *Producer) PublishTradeDeleted(ctx context.Context, tradeID int, accountID string) error {
	event := models.JournalEvent{
		EventType: "TRADE_DELETED",
		TradeID:   tradeID,
		AccountID: accountID,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, accountID, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.JournalEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
