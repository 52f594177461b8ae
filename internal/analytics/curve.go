package analytics

import (
	"time"

	"github.com/rgoodman/trade-journal-service/internal/models"
)

// EquityPoint is one step of the cumulative P&L curve.
type EquityPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Profit     float64   `json:"profit"`
	Cumulative float64   `json:"cumulative"`
}

// CumulativeProfit builds the cumulative realized P&L curve over completed
// trades in chronological order.
func CumulativeProfit(trades []*models.Trade) []EquityPoint {
	completed := completedChronological(trades)
	out := make([]EquityPoint, 0, len(completed))
	var running float64
	for _, t := range completed {
		p := t.ProfitValue()
		running += p
		out = append(out, EquityPoint{
			Timestamp:  t.EventTime(),
			Profit:     p,
			Cumulative: round2(running),
		})
	}
	return out
}
