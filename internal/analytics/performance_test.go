package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

func TestSummarize(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("mixed wins and losses", func(t *testing.T) {
		trades := []*models.Trade{
			trade(models.StatusWin, 100),
			trade(models.StatusLoss, -50),
			trade(models.StatusWin, 75),
		}

		s := Summarize(trades, cfg)

		assert.Equal(t, 3, s.TotalTrades)
		assert.Equal(t, 3, s.CompletedTrades)
		assert.Equal(t, 0, s.ActiveTrades)
		assert.Equal(t, 2, s.Wins)
		assert.Equal(t, 1, s.Losses)
		assert.InDelta(t, 66.7, s.WinRatePct, 0.001)
		assert.InDelta(t, 125, s.TotalProfit, 0.001)
		assert.InDelta(t, 87.5, s.AvgWin, 0.001)
		assert.InDelta(t, 50, s.AvgLoss, 0.001)
		assert.InDelta(t, 100, s.BestTrade, 0.001)
		assert.InDelta(t, -50, s.WorstTrade, 0.001)
		assert.InDelta(t, 3.5, s.ProfitFactor, 0.001) // 175 / 50
		assert.Equal(t, 1, s.MaxWinStreak)            // loss resets before the second win
		assert.Equal(t, 1, s.MaxLossStreak)
	})

	t.Run("empty trade set yields all zeros", func(t *testing.T) {
		s := Summarize(nil, cfg)

		assert.Equal(t, PerformanceSummary{}, s)
	})

	t.Run("open trades are excluded from completed arithmetic", func(t *testing.T) {
		trades := []*models.Trade{
			trade(models.StatusWin, 100),
			trade(models.StatusPending, 0),
			trade(models.StatusActive, 0),
		}

		s := Summarize(trades, cfg)

		assert.Equal(t, 3, s.TotalTrades)
		assert.Equal(t, 2, s.ActiveTrades)
		assert.Equal(t, 1, s.CompletedTrades)
		assert.InDelta(t, 100.0, s.WinRatePct, 0.001)
	})

	t.Run("missing status counts as pending", func(t *testing.T) {
		trades := []*models.Trade{
			{AccountID: "acct-1"},
			trade(models.StatusLoss, -20),
		}

		s := Summarize(trades, cfg)

		assert.Equal(t, 1, s.ActiveTrades)
		assert.Equal(t, 1, s.CompletedTrades)
		assert.Zero(t, s.WinRatePct)
	})

	t.Run("profit factor sentinel when no losses", func(t *testing.T) {
		trades := []*models.Trade{
			trade(models.StatusWin, 100),
			trade(models.StatusWin, 50),
		}

		s := Summarize(trades, cfg)
		assert.InDelta(t, cfg.InfiniteProfitFactor, s.ProfitFactor, 0.001)
	})

	t.Run("profit factor zero when nothing realized", func(t *testing.T) {
		trades := []*models.Trade{
			trade(models.StatusWin, 0),
			trade(models.StatusLoss, 0),
		}

		s := Summarize(trades, cfg)
		assert.Zero(t, s.ProfitFactor)
	})

	t.Run("profit factor sentinel override", func(t *testing.T) {
		custom := Config{DefaultAccountSize: 10000, InfiniteProfitFactor: 1e9}
		s := Summarize([]*models.Trade{trade(models.StatusWin, 10)}, custom)
		assert.InDelta(t, 1e9, s.ProfitFactor, 0.001)
	})

	t.Run("streak scan follows supplied order", func(t *testing.T) {
		trades := []*models.Trade{
			trade(models.StatusWin, 10),
			trade(models.StatusWin, 10),
			trade(models.StatusWin, 10),
			trade(models.StatusLoss, -10),
			trade(models.StatusLoss, -10),
			trade(models.StatusWin, 10),
		}

		s := Summarize(trades, cfg)
		assert.Equal(t, 3, s.MaxWinStreak)
		assert.Equal(t, 2, s.MaxLossStreak)
	})

	t.Run("open trades do not break streaks", func(t *testing.T) {
		trades := []*models.Trade{
			trade(models.StatusWin, 10),
			trade(models.StatusPending, 0),
			trade(models.StatusWin, 10),
		}

		s := Summarize(trades, cfg)
		assert.Equal(t, 2, s.MaxWinStreak)
	})

	t.Run("streak totals bounded by completed count", func(t *testing.T) {
		sets := [][]*models.Trade{
			nil,
			{trade(models.StatusWin, 5)},
			{trade(models.StatusLoss, -5), trade(models.StatusWin, 5), trade(models.StatusLoss, -5)},
			{trade(models.StatusWin, 1), trade(models.StatusWin, 2), trade(models.StatusLoss, -1), trade(models.StatusWin, 3)},
		}
		for _, trades := range sets {
			s := Summarize(trades, cfg)
			assert.LessOrEqual(t, s.MaxWinStreak+s.MaxLossStreak, s.CompletedTrades)
			assert.GreaterOrEqual(t, s.WinRatePct, 0.0)
			assert.LessOrEqual(t, s.WinRatePct, 100.0)
		}
	})

	t.Run("idempotent for identical input", func(t *testing.T) {
		trades := []*models.Trade{
			trade(models.StatusWin, 100),
			trade(models.StatusLoss, -50),
			trade(models.StatusPending, 0),
		}

		first := Summarize(trades, cfg)
		second := Summarize(trades, cfg)
		require.Equal(t, first, second)
	})
}
