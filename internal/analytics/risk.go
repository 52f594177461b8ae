package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// CorrelationRiskLevel is a coarse exposure-concentration classification.
type CorrelationRiskLevel string

// Correlation risk levels.
const (
	CorrelationLow    CorrelationRiskLevel = "Low"
	CorrelationMedium CorrelationRiskLevel = "Medium"
	CorrelationHigh   CorrelationRiskLevel = "High"
)

// DrawdownPoint is one step of the running-balance walk.
type DrawdownPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Balance     float64   `json:"balance"`
	DrawdownPct float64   `json:"drawdown_pct"`
	Peak        float64   `json:"peak"`
}

// RiskRewardBand tracks trades whose risk/reward ratio falls into a band.
type RiskRewardBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Wins  int    `json:"wins"`
}

// RiskSummary holds the risk metrics for an account's trade set.
type RiskSummary struct {
	PortfolioRiskPct     float64              `json:"portfolio_risk_pct"`
	MaxRiskPerTradePct   float64              `json:"max_risk_per_trade_pct"`
	AvgRiskPerTradePct   float64              `json:"avg_risk_per_trade_pct"`
	CurrentDrawdownPct   float64              `json:"current_drawdown_pct"`
	MaxDrawdownPct       float64              `json:"max_drawdown_pct"`
	VaR95                float64              `json:"var_95"`
	SharpeRatio          float64              `json:"sharpe_ratio"`
	SortinoRatio         float64              `json:"sortino_ratio"`
	VolatilityPct        float64              `json:"volatility_pct"`
	CorrelationRiskLevel CorrelationRiskLevel `json:"correlation_risk_level"`
	DrawdownHistory      []DrawdownPoint      `json:"drawdown_history"`
	RiskRewardBands      []RiskRewardBand     `json:"risk_reward_bands"`
}

// drawdownState carries the running-balance walk accumulator.
type drawdownState struct {
	balance float64
	peak    float64
	maxDD   float64
}

func (d *drawdownState) step(profit float64) (ddPct float64) {
	d.balance += profit
	if d.balance > d.peak {
		d.peak = d.balance
	}
	if d.peak > 0 {
		ddPct = round2(100 * (d.peak - d.balance) / d.peak)
	}
	if ddPct > d.maxDD {
		d.maxDD = ddPct
	}
	return ddPct
}

// ComputeRisk derives the risk summary for an account from its trades.
// Completed trades are walked in chronological order starting from the
// account's initial balance; the current drawdown is measured against the
// live account balance, which can diverge from the last walked balance
// while trades are still open.
func ComputeRisk(trades []*models.Trade, account *models.Account, cfg Config) RiskSummary {
	s := RiskSummary{
		CorrelationRiskLevel: correlationRisk(trades),
		DrawdownHistory:      []DrawdownPoint{},
		RiskRewardBands:      riskRewardBands(trades),
	}

	balance := account.BalanceValue()
	completed := completedChronological(trades)

	walk := drawdownState{
		balance: account.InitialBalanceValue(),
		peak:    account.InitialBalanceValue(),
	}
	for _, t := range completed {
		dd := walk.step(t.ProfitValue())
		s.DrawdownHistory = append(s.DrawdownHistory, DrawdownPoint{
			Timestamp:   t.EventTime(),
			Balance:     walk.balance,
			DrawdownPct: dd,
			Peak:        walk.peak,
		})
	}
	s.MaxDrawdownPct = walk.maxDD
	if walk.peak > 0 && balance < walk.peak {
		s.CurrentDrawdownPct = round2(100 * (walk.peak - balance) / walk.peak)
	}

	returns := percentReturns(completed, balance)
	s.VaR95 = valueAtRisk95(returns, balance)
	mean := meanOf(returns)
	vol := stddevOf(returns, mean)
	s.VolatilityPct = round2(vol)
	if vol > 0 {
		s.SharpeRatio = round2(mean / vol)
	}
	if downside := downsideDeviation(returns); downside > 0 {
		s.SortinoRatio = round2(mean / downside)
	}

	s.PortfolioRiskPct, s.MaxRiskPerTradePct, s.AvgRiskPerTradePct = riskExposure(trades, balance)
	return s
}

// completedChronological returns the completed trades sorted ascending by
// event time, leaving the input untouched.
func completedChronological(trades []*models.Trade) []*models.Trade {
	completed := make([]*models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsCompleted() {
			completed = append(completed, t)
		}
	}
	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].EventTime().Before(completed[j].EventTime())
	})
	return completed
}

// percentReturns converts each completed trade's profit to a percent of the
// account balance. Returns an empty slice when the balance is zero.
func percentReturns(completed []*models.Trade, balance float64) []float64 {
	if balance <= 0 {
		return nil
	}
	returns := make([]float64, len(completed))
	for i, t := range completed {
		returns[i] = 100 * t.ProfitValue() / balance
	}
	return returns
}

// valueAtRisk95 estimates the 95% Value-at-Risk from the empirical return
// distribution: the return at the 5th-percentile index of the ascending
// sort, scaled back to a currency amount.
func valueAtRisk95(returns []float64, balance float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)
	idx := int(math.Floor(float64(len(sorted)) * 0.05))
	return round2(math.Abs(sorted[idx]) * balance / 100)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddevOf is the population standard deviation.
func stddevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// downsideDeviation is the root-mean-square of the negative returns only,
// the denominator of the Sortino ratio. 0 when no return is negative.
func downsideDeviation(returns []float64) float64 {
	var sum float64
	var n int
	for _, r := range returns {
		if r < 0 {
			sum += r * r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}

// riskExposure computes portfolio risk over open trades and the max/avg
// risk per trade over every trade with a recorded risk amount, all as a
// percent of the current balance.
func riskExposure(trades []*models.Trade, balance float64) (portfolioPct, maxPct, avgPct float64) {
	if balance <= 0 {
		return 0, 0, 0
	}
	var openRisk, totalPct float64
	var withRisk int
	for _, t := range trades {
		if t.RiskAmount == nil {
			continue
		}
		risk := t.RiskAmount.InexactFloat64()
		if t.IsOpen() {
			openRisk += risk
		}
		pct := 100 * risk / balance
		totalPct += pct
		if pct > maxPct {
			maxPct = pct
		}
		withRisk++
	}
	portfolioPct = round2(100 * openRisk / balance)
	maxPct = round2(maxPct)
	if withRisk > 0 {
		avgPct = round2(totalPct / float64(withRisk))
	}
	return portfolioPct, maxPct, avgPct
}

// correlationRisk classifies exposure concentration by the number of
// distinct instruments traded. A heuristic stand-in for a correlation
// matrix: more instruments means more chances of correlated positions.
func correlationRisk(trades []*models.Trade) CorrelationRiskLevel {
	instruments := make(map[string]struct{})
	for _, t := range trades {
		if t.Instrument != "" {
			instruments[t.Instrument] = struct{}{}
		}
	}
	switch n := len(instruments); {
	case n > 5:
		return CorrelationHigh
	case n > 3:
		return CorrelationMedium
	default:
		return CorrelationLow
	}
}

// riskRewardBands buckets trades with a recorded risk/reward ratio into
// the dashboard's fixed bands.
func riskRewardBands(trades []*models.Trade) []RiskRewardBand {
	bands := []RiskRewardBand{
		{Label: "1:1-1.5"},
		{Label: "1:1.5-2"},
		{Label: "1:2-2.5"},
		{Label: "1:2.5-3"},
		{Label: "1:3+"},
	}
	bounds := [...]float64{1, 1.5, 2, 2.5, 3}

	for _, t := range trades {
		rr := t.RiskRewardValue()
		if rr < bounds[0] {
			continue
		}
		idx := len(bands) - 1
		for i := 0; i < len(bounds)-1; i++ {
			if rr < bounds[i+1] {
				idx = i
				break
			}
		}
		bands[idx].Count++
		if t.EffectiveStatus() == models.StatusWin {
			bands[idx].Wins++
		}
	}
	return bands
}
