package analytics

import (
	"math"
	"sort"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// PerformanceSummary holds the headline statistics for a set of trades.
type PerformanceSummary struct {
	TotalTrades     int     `json:"total_trades"`
	ActiveTrades    int     `json:"active_trades"`
	CompletedTrades int     `json:"completed_trades"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	WinRatePct      float64 `json:"win_rate_pct"`
	TotalProfit     float64 `json:"total_profit"`
	AvgWin          float64 `json:"avg_win"`
	AvgLoss         float64 `json:"avg_loss"`
	BestTrade       float64 `json:"best_trade"`
	WorstTrade      float64 `json:"worst_trade"`
	ProfitFactor    float64 `json:"profit_factor"`
	MaxWinStreak    int     `json:"max_win_streak"`
	MaxLossStreak   int     `json:"max_loss_streak"`
}

// streakState is the accumulator for the single-pass streak scan.
type streakState struct {
	currentWin  int
	currentLoss int
	maxWin      int
	maxLoss     int
}

func (s *streakState) record(won bool) {
	if won {
		s.currentWin++
		s.currentLoss = 0
		if s.currentWin > s.maxWin {
			s.maxWin = s.currentWin
		}
		return
	}
	s.currentLoss++
	s.currentWin = 0
	if s.currentLoss > s.maxLoss {
		s.maxLoss = s.currentLoss
	}
}

// Summarize computes the performance summary over an already-filtered set
// of trades. Streaks follow the supplied order of the completed
// subsequence; callers sort first when calendar order matters. Missing
// numeric fields never cause an error: absent profit counts as 0.
func Summarize(trades []*models.Trade, cfg Config) PerformanceSummary {
	var s PerformanceSummary
	s.TotalTrades = len(trades)

	var grossWin, grossLoss float64
	var streaks streakState
	first := true

	for _, t := range trades {
		if !t.IsCompleted() {
			s.ActiveTrades++
			continue
		}
		s.CompletedTrades++

		p := t.ProfitValue()
		s.TotalProfit += p
		if first {
			s.BestTrade = p
			s.WorstTrade = p
			first = false
		} else {
			s.BestTrade = math.Max(s.BestTrade, p)
			s.WorstTrade = math.Min(s.WorstTrade, p)
		}

		won := t.EffectiveStatus() == models.StatusWin
		if won {
			s.Wins++
			grossWin += p
		} else {
			s.Losses++
			grossLoss += math.Abs(p)
		}
		streaks.record(won)
	}

	if s.CompletedTrades > 0 {
		s.WinRatePct = round1(100 * float64(s.Wins) / float64(s.CompletedTrades))
	}
	if s.Wins > 0 {
		s.AvgWin = grossWin / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = grossLoss / float64(s.Losses)
	}
	s.ProfitFactor = profitFactor(grossWin, grossLoss, cfg)
	s.MaxWinStreak = streaks.maxWin
	s.MaxLossStreak = streaks.maxLoss
	return s
}

// profitFactor is gross win over gross loss, with the documented sentinel
// when there are wins but no losses, and 0 when there is nothing realized.
func profitFactor(grossWin, grossLoss float64, cfg Config) float64 {
	if grossLoss > 0 {
		return grossWin / grossLoss
	}
	if grossWin > 0 {
		return cfg.InfiniteProfitFactor
	}
	return 0
}

func sortByEventTime(trades []*models.Trade, ascending bool) []*models.Trade {
	out := make([]*models.Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].EventTime().Before(out[j].EventTime())
		}
		return out[i].EventTime().After(out[j].EventTime())
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
