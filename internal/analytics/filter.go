package analytics

import (
	"strings"
	"time"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// TimeWindow restricts a computation to trades whose event time falls
// within the last N days.
type TimeWindow string

// Supported time windows.
const (
	WindowAll    TimeWindow = "all"
	WindowLast7  TimeWindow = "last7d"
	WindowLast30 TimeWindow = "last30d"
	WindowLast90 TimeWindow = "last90d"
)

// ParseTimeWindow maps a query-string value to a TimeWindow, defaulting to
// WindowAll for empty or unknown values.
func ParseTimeWindow(s string) TimeWindow {
	switch TimeWindow(s) {
	case WindowLast7, WindowLast30, WindowLast90:
		return TimeWindow(s)
	default:
		return WindowAll
	}
}

// Cutoff returns the inclusive lower bound for a window relative to now.
// The second return value is false for WindowAll (no cutoff).
func (w TimeWindow) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case WindowLast7:
		return now.AddDate(0, 0, -7), true
	case WindowLast30:
		return now.AddDate(0, 0, -30), true
	case WindowLast90:
		return now.AddDate(0, 0, -90), true
	default:
		return time.Time{}, false
	}
}

// Filter selects the subset of trades relevant to a computation.
// AccountID is mandatory; the remaining criteria are optional.
type Filter struct {
	AccountID  string
	Window     TimeWindow
	Status     string
	Instrument string
	Strategy   string
	Now        time.Time
}

// FilterTrades returns the trades matching f. The account match is exact on
// the trade's normalized account reference. A status filter of "pending"
// also matches trades with no recorded status. Result ordering follows the
// input; callers that need chronological order sort explicitly. An empty
// result is a valid, non-nil slice.
func FilterTrades(trades []*models.Trade, f Filter) []*models.Trade {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	cutoff, bounded := f.Window.Cutoff(now)

	out := make([]*models.Trade, 0, len(trades))
	for _, t := range trades {
		if t.AccountRef() != f.AccountID {
			continue
		}
		if bounded && t.EventTime().Before(cutoff) {
			continue
		}
		if f.Status != "" && t.EffectiveStatus() != f.Status {
			continue
		}
		if f.Instrument != "" && t.Instrument != f.Instrument {
			continue
		}
		if f.Strategy != "" && !strings.EqualFold(t.StrategyName, f.Strategy) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortChronological orders trades ascending by event time, returning a new
// slice. Used for cumulative P&L curves and the drawdown walk.
func SortChronological(trades []*models.Trade) []*models.Trade {
	return sortByEventTime(trades, true)
}

// SortRecentFirst orders trades descending by event time, returning a new
// slice. Used for recent-trades displays.
func SortRecentFirst(trades []*models.Trade) []*models.Trade {
	return sortByEventTime(trades, false)
}
