package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

func TestBreakdownByInstrument(t *testing.T) {
	mk := func(instrument, status string, profit float64) *models.Trade {
		tr := trade(status, profit)
		tr.Instrument = instrument
		return tr
	}

	t.Run("groups and sorts by total profit descending", func(t *testing.T) {
		trades := []*models.Trade{
			mk("EUR/USD", models.StatusWin, 100),
			mk("EUR/USD", models.StatusLoss, -30),
			mk("GBP/USD", models.StatusWin, 250),
			mk("USD/JPY", models.StatusLoss, -80),
		}

		got := BreakdownByInstrument(trades)
		require.Len(t, got, 3)
		assert.Equal(t, "GBP/USD", got[0].Instrument)
		assert.Equal(t, "EUR/USD", got[1].Instrument)
		assert.Equal(t, "USD/JPY", got[2].Instrument)
		assert.InDelta(t, 70, got[1].TotalProfit, 0.001)
		assert.Equal(t, 2, got[1].TradeCount)
		assert.InDelta(t, 50.0, got[1].WinRatePct, 0.001)
	})

	t.Run("win rate divides by completed trades in the group only", func(t *testing.T) {
		trades := []*models.Trade{
			mk("EUR/USD", models.StatusWin, 100),
			mk("EUR/USD", models.StatusPending, 0),
			mk("EUR/USD", models.StatusActive, 0),
		}

		got := BreakdownByInstrument(trades)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].TradeCount)
		assert.InDelta(t, 100.0, got[0].WinRatePct, 0.001)
	})

	t.Run("trades without an instrument are skipped", func(t *testing.T) {
		tr := trade(models.StatusWin, 10)
		tr.Instrument = ""
		got := BreakdownByInstrument([]*models.Trade{tr})
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestBreakdownByStrategy(t *testing.T) {
	strategies := []*models.Strategy{
		{ID: 1, Name: "Breakout"},
		{ID: 2, Name: "Reversal"},
	}

	t.Run("matches by exact name or notes substring", func(t *testing.T) {
		byName := trade(models.StatusWin, 100)
		byName.StrategyName = "Breakout"

		byNotes := trade(models.StatusLoss, -40)
		byNotes.Notes = "classic BREAKOUT retest entry"

		unrelated := trade(models.StatusWin, 70)
		unrelated.StrategyName = "Scalp"

		got := BreakdownByStrategy([]*models.Trade{byName, byNotes, unrelated}, strategies)
		require.Len(t, got, 2)

		assert.Equal(t, "Breakout", got[0].Strategy)
		assert.Equal(t, 2, got[0].TradeCount)
		assert.InDelta(t, 60, got[0].TotalProfit, 0.001)
		assert.InDelta(t, 50.0, got[0].WinRatePct, 0.001)

		assert.Equal(t, "Reversal", got[1].Strategy)
		assert.Zero(t, got[1].TradeCount)
	})

	t.Run("a trade may count toward multiple strategies", func(t *testing.T) {
		both := trade(models.StatusWin, 10)
		both.StrategyName = "Breakout"
		both.Notes = "breakout that turned into a reversal"

		got := BreakdownByStrategy([]*models.Trade{both}, strategies)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].TradeCount)
		assert.Equal(t, 1, got[1].TradeCount)
	})

	t.Run("sorted by total profit descending", func(t *testing.T) {
		winner := trade(models.StatusWin, 500)
		winner.StrategyName = "Reversal"
		loser := trade(models.StatusLoss, -100)
		loser.StrategyName = "Breakout"

		got := BreakdownByStrategy([]*models.Trade{winner, loser}, strategies)
		require.Len(t, got, 2)
		assert.Equal(t, "Reversal", got[0].Strategy)
		assert.Equal(t, "Breakout", got[1].Strategy)
	})

	t.Run("empty registry yields empty result", func(t *testing.T) {
		got := BreakdownByStrategy([]*models.Trade{trade(models.StatusWin, 5)}, nil)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}
