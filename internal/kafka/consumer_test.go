package kafka

import (
	"encoding/json"
	"testing"
	"time"

	segkafka "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// MockRepository implements the TradeRepository interface for testing
type MockRepository struct {
	trades      map[string]*models.Trade // key: orderID+source
	nextTradeID int

	CreateTradeCalls int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		trades:      make(map[string]*models.Trade),
		nextTradeID: 1,
	}
}

func (m *MockRepository) CreateTrade(t *models.Trade) error {
	m.CreateTradeCalls++
	t.ID = m.nextTradeID
	m.nextTradeID++
	key := t.OrderID + ":" + t.Source
	m.trades[key] = t
	return nil
}

func (m *MockRepository) TradeExistsByOrderID(orderID, source string) (bool, error) {
	key := orderID + ":" + source
	_, exists := m.trades[key]
	return exists, nil
}

func newTestConsumer(repo TradeRepository) *Consumer {
	return &Consumer{
		repo:   repo,
		logger: zap.NewNop(),
	}
}

func makeEventMessage(t *testing.T, event models.TradeEvent) segkafka.Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return segkafka.Message{Key: []byte(event.Data.OrderID), Value: data}
}

func validEvent() models.TradeEvent {
	openedAt := "2024-05-10T14:30:00Z"
	return models.TradeEvent{
		EventType: "TRADE_LOGGED",
		Source:    "mt4",
		Timestamp: time.Date(2024, 5, 10, 14, 30, 5, 0, time.UTC),
		Data: models.TradeEventData{
			OrderID:           "ord-1",
			AccountID:         "acct-1",
			Instrument:        "EUR/USD",
			Direction:         "long",
			Status:            "win",
			StrategyName:      "Breakout",
			RealizedProfit:    "150.25",
			RiskAmount:        "100",
			PlannedRiskReward: "1:2",
			AccountSize:       "10000",
			OpenedAt:          &openedAt,
		},
	}
}

func TestProcessMessage(t *testing.T) {
	t.Run("saves valid trade event", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		err := consumer.processMessage(makeEventMessage(t, validEvent()))
		require.NoError(t, err)
		require.Equal(t, 1, repo.CreateTradeCalls)

		trade := repo.trades["ord-1:mt4"]
		require.NotNil(t, trade)
		assert.Equal(t, "acct-1", trade.AccountID)
		assert.Equal(t, "EUR/USD", trade.Instrument)
		assert.Equal(t, models.DirectionLong, trade.Direction)
		assert.Equal(t, models.StatusWin, trade.Status)
		assert.Equal(t, "Breakout", trade.StrategyName)
		assert.Equal(t, "1:2", trade.PlannedRiskReward)
		assert.True(t, trade.RealizedProfit.Equal(decimal.NewFromFloat(150.25)))
		require.NotNil(t, trade.RiskAmount)
		assert.True(t, trade.RiskAmount.Equal(decimal.NewFromFloat(100)))
		require.NotNil(t, trade.AccountSizeAtTrade)
		require.NotNil(t, trade.OpenedAt)
		assert.Equal(t, time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC), trade.OpenedAt.UTC())
	})

	t.Run("skips duplicate order id and source", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		require.NoError(t, consumer.processMessage(makeEventMessage(t, validEvent())))
		require.NoError(t, consumer.processMessage(makeEventMessage(t, validEvent())))
		assert.Equal(t, 1, repo.CreateTradeCalls)
	})

	t.Run("same order id from different source is not a duplicate", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		require.NoError(t, consumer.processMessage(makeEventMessage(t, validEvent())))

		other := validEvent()
		other.Source = "mt5"
		require.NoError(t, consumer.processMessage(makeEventMessage(t, other)))
		assert.Equal(t, 2, repo.CreateTradeCalls)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		event := validEvent()
		event.EventType = "ACCOUNT_SYNCED"
		require.NoError(t, consumer.processMessage(makeEventMessage(t, event)))
		assert.Equal(t, 0, repo.CreateTradeCalls)
	})

	t.Run("rejects malformed payload", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		err := consumer.processMessage(segkafka.Message{Value: []byte("{not json")})
		assert.Error(t, err)
	})

	t.Run("rejects event without account", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		event := validEvent()
		event.Data.AccountID = ""
		event.Data.Account = ""
		err := consumer.processMessage(makeEventMessage(t, event))
		assert.Error(t, err)
		assert.Equal(t, 0, repo.CreateTradeCalls)
	})

	t.Run("accepts legacy account key", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		event := validEvent()
		event.Data.AccountID = ""
		event.Data.Account = "acct-legacy"
		require.NoError(t, consumer.processMessage(makeEventMessage(t, event)))

		trade := repo.trades["ord-1:mt4"]
		require.NotNil(t, trade)
		assert.Equal(t, "acct-legacy", trade.AccountID)
	})

	t.Run("rejects invalid direction", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		event := validEvent()
		event.Data.Direction = "sideways"
		err := consumer.processMessage(makeEventMessage(t, event))
		assert.Error(t, err)
	})

	t.Run("rejects invalid realized profit", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		event := validEvent()
		event.Data.RealizedProfit = "abc"
		err := consumer.processMessage(makeEventMessage(t, event))
		assert.Error(t, err)
	})

	t.Run("falls back to event timestamp when opened_at missing", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		event := validEvent()
		event.Data.OpenedAt = nil
		require.NoError(t, consumer.processMessage(makeEventMessage(t, event)))

		trade := repo.trades["ord-1:mt4"]
		require.NotNil(t, trade)
		require.NotNil(t, trade.OpenedAt)
		assert.Equal(t, event.Timestamp, trade.OpenedAt.UTC())
	})

	t.Run("parses opened_at without timezone", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		openedAt := "2024-05-10T14:30:00"
		event := validEvent()
		event.Data.OpenedAt = &openedAt
		require.NoError(t, consumer.processMessage(makeEventMessage(t, event)))

		trade := repo.trades["ord-1:mt4"]
		require.NotNil(t, trade)
		require.NotNil(t, trade.OpenedAt)
		assert.Equal(t, 14, trade.OpenedAt.Hour())
	})

	t.Run("invalid optional decimals become nil", func(t *testing.T) {
		repo := NewMockRepository()
		consumer := newTestConsumer(repo)

		event := validEvent()
		event.Data.RiskAmount = "n/a"
		event.Data.AccountSize = ""
		require.NoError(t, consumer.processMessage(makeEventMessage(t, event)))

		trade := repo.trades["ord-1:mt4"]
		require.NotNil(t, trade)
		assert.Nil(t, trade.RiskAmount)
		assert.Nil(t, trade.AccountSizeAtTrade)
	})
}
