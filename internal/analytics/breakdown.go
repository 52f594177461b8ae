package analytics

import (
	"sort"
	"strings"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// PairBreakdown is the per-instrument rollup.
type PairBreakdown struct {
	Instrument  string  `json:"instrument"`
	TradeCount  int     `json:"trade_count"`
	WinRatePct  float64 `json:"win_rate_pct"`
	TotalProfit float64 `json:"total_profit"`
}

// StrategyBreakdown is the per-strategy rollup.
type StrategyBreakdown struct {
	Strategy    string  `json:"strategy"`
	TradeCount  int     `json:"trade_count"`
	WinRatePct  float64 `json:"win_rate_pct"`
	TotalProfit float64 `json:"total_profit"`
}

// groupAccum accumulates one breakdown group.
type groupAccum struct {
	count     int
	completed int
	wins      int
	profit    float64
}

func (g *groupAccum) add(t *models.Trade) {
	g.count++
	g.profit += t.ProfitValue()
	if t.IsCompleted() {
		g.completed++
		if t.EffectiveStatus() == models.StatusWin {
			g.wins++
		}
	}
}

func (g *groupAccum) winRatePct() float64 {
	if g.completed == 0 {
		return 0
	}
	return round1(100 * float64(g.wins) / float64(g.completed))
}

// BreakdownByInstrument rolls trades up per instrument, sorted descending
// by total realized profit. Callers may truncate to a top-N.
func BreakdownByInstrument(trades []*models.Trade) []PairBreakdown {
	groups := make(map[string]*groupAccum)
	for _, t := range trades {
		if t.Instrument == "" {
			continue
		}
		g, ok := groups[t.Instrument]
		if !ok {
			g = &groupAccum{}
			groups[t.Instrument] = g
		}
		g.add(t)
	}

	out := make([]PairBreakdown, 0, len(groups))
	for instrument, g := range groups {
		out = append(out, PairBreakdown{
			Instrument:  instrument,
			TradeCount:  g.count,
			WinRatePct:  g.winRatePct(),
			TotalProfit: round2(g.profit),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalProfit != out[j].TotalProfit {
			return out[i].TotalProfit > out[j].TotalProfit
		}
		return out[i].Instrument < out[j].Instrument
	})
	return out
}

// BreakdownByStrategy rolls trades up per registered strategy, sorted
// descending by total realized profit. A trade belongs to a strategy when
// its strategy name matches exactly OR the strategy name appears in the
// trade notes, case-insensitively. The notes match is a deliberate
// heuristic with false-positive risk; changing it changes reported
// performance numbers.
func BreakdownByStrategy(trades []*models.Trade, strategies []*models.Strategy) []StrategyBreakdown {
	out := make([]StrategyBreakdown, 0, len(strategies))
	for _, strat := range strategies {
		if strat.Name == "" {
			continue
		}
		var g groupAccum
		lowered := strings.ToLower(strat.Name)
		for _, t := range trades {
			if t.StrategyName == strat.Name ||
				(t.Notes != "" && strings.Contains(strings.ToLower(t.Notes), lowered)) {
				g.add(t)
			}
		}
		out = append(out, StrategyBreakdown{
			Strategy:    strat.Name,
			TradeCount:  g.count,
			WinRatePct:  g.winRatePct(),
			TotalProfit: round2(g.profit),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalProfit != out[j].TotalProfit {
			return out[i].TotalProfit > out[j].TotalProfit
		}
		return out[i].Strategy < out[j].Strategy
	})
	return out
}
