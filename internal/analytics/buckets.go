package analytics

import (
	"fmt"
	"time"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// Granularity selects a calendar bucketing scheme.
type Granularity string

// Supported granularities.
const (
	GranularityHour    Granularity = "hour"
	GranularityWeekday Granularity = "weekday"
	GranularityWeek    Granularity = "week"
)

// BucketResult is the rollup for one calendar bucket. Every bucket of a
// granularity is always reported, even with zero trades, so consumers can
// render fixed-size tables.
type BucketResult struct {
	Label         string  `json:"label"`
	TradeCount    int     `json:"trade_count"`
	WinRatePct    float64 `json:"win_rate_pct"`
	SumRiskReward float64 `json:"sum_risk_reward"`
	SumProfitPct  float64 `json:"sum_profit_pct"`
}

// weekdayLabels is Monday-first, matching the dashboard's weekly table.
var weekdayLabels = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// bucketAccum accumulates one bucket during a pass over the trades.
type bucketAccum struct {
	count     int
	completed int
	wins      int
	sumRR     float64
	sumProfit float64
	firstSize float64 // account-size snapshot of the first trade seen
}

func (b *bucketAccum) add(t *models.Trade, cfg Config) {
	if b.count == 0 {
		b.firstSize = t.AccountSizeOr(cfg.DefaultAccountSize)
	}
	b.count++
	b.sumRR += t.RiskRewardValue()
	b.sumProfit += t.ProfitValue()
	if t.IsCompleted() {
		b.completed++
		if t.EffectiveStatus() == models.StatusWin {
			b.wins++
		}
	}
}

func (b *bucketAccum) result(label string) BucketResult {
	r := BucketResult{Label: label, TradeCount: b.count}
	if b.completed > 0 {
		r.WinRatePct = round1(100 * float64(b.wins) / float64(b.completed))
	}
	r.SumRiskReward = round2(b.sumRR)
	// The percent is taken against the account size recorded on the
	// bucket's first trade, not a per-trade average. Kept as-is so
	// reported numbers stay stable across dashboard versions.
	if b.firstSize > 0 {
		r.SumProfitPct = round2(100 * b.sumProfit / b.firstSize)
	}
	return r
}

// BucketBy groups trades into calendar buckets and computes the per-bucket
// rollups. count applies only to the week granularity (the most recent
// count weeks, oldest first); hour always yields 24 rows and weekday 7.
func BucketBy(trades []*models.Trade, g Granularity, count int, now time.Time, cfg Config) []BucketResult {
	if now.IsZero() {
		now = time.Now()
	}
	switch g {
	case GranularityHour:
		return bucketByHour(trades, cfg)
	case GranularityWeekday:
		return bucketByWeekday(trades, cfg)
	case GranularityWeek:
		return bucketByWeek(trades, count, now, cfg)
	default:
		return []BucketResult{}
	}
}

func bucketByHour(trades []*models.Trade, cfg Config) []BucketResult {
	var buckets [24]bucketAccum
	for _, t := range trades {
		buckets[t.EventTime().Hour()].add(t, cfg)
	}
	out := make([]BucketResult, 24)
	for h := range buckets {
		out[h] = buckets[h].result(fmt.Sprintf("%02d:00", h))
	}
	return out
}

func bucketByWeekday(trades []*models.Trade, cfg Config) []BucketResult {
	var buckets [7]bucketAccum
	for _, t := range trades {
		// time.Weekday is Sunday-based; shift to Monday-first.
		idx := (int(t.EventTime().Weekday()) + 6) % 7
		buckets[idx].add(t, cfg)
	}
	out := make([]BucketResult, 7)
	for i := range buckets {
		out[i] = buckets[i].result(weekdayLabels[i])
	}
	return out
}

func bucketByWeek(trades []*models.Trade, count int, now time.Time, cfg Config) []BucketResult {
	if count <= 0 {
		count = 8
	}
	currentStart := startOfWeek(now)

	starts := make([]time.Time, count)
	buckets := make([]bucketAccum, count)
	for i := 0; i < count; i++ {
		// Oldest week first.
		starts[i] = currentStart.AddDate(0, 0, -7*(count-1-i))
	}

	for _, t := range trades {
		et := t.EventTime()
		for i, start := range starts {
			if !et.Before(start) && et.Before(start.AddDate(0, 0, 7)) {
				buckets[i].add(t, cfg)
				break
			}
		}
	}

	out := make([]BucketResult, count)
	for i := range buckets {
		out[i] = buckets[i].result(fmt.Sprintf("Week %d", weekOfYear(starts[i])))
	}
	return out
}

// startOfWeek returns Monday 00:00:00 of the week containing ts, in ts's
// location.
func startOfWeek(ts time.Time) time.Time {
	offset := (int(ts.Weekday()) + 6) % 7
	day := ts.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, ts.Location())
}

// weekOfYear numbers a week by the ceiling of inclusive days elapsed since
// January 1st of the week's year, divided by 7.
func weekOfYear(weekStart time.Time) int {
	return (weekStart.YearDay() + 6) / 7
}
