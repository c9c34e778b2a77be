package analysis

import (
	"fmt"
	"time"

	"github.com/newthinker/tickr/internal/core"
)

// LatestMetrics is the scalar snapshot of the most recent bar.
type LatestMetrics struct {
	Time          time.Time   `json:"time"`
	Market        core.Market `json:"market,omitempty"`
	Currency      string      `json:"currency,omitempty"`
	CurrentPrice  float64     `json:"current_price"`
	PreviousClose float64     `json:"previous_close"`
	PercentChange float64     `json:"percent_change"`
	Volume        float64     `json:"volume"`
	AverageVolume *float64    `json:"average_volume,omitempty"` // Volume_SMA_20 when defined
}

// Summarize extracts the latest price, volume and day-over-day change.
// It needs at least two bars; table may be nil.
func Summarize(history core.PriceHistory, table *Table) (LatestMetrics, error) {
	n := history.Len()
	if n == 0 {
		return LatestMetrics{}, core.ErrEmptyHistory
	}
	if n < 2 {
		return LatestMetrics{}, core.WrapError(core.ErrInsufficientHistory,
			fmt.Errorf("got %d bar", n))
	}

	last := history.Last()
	prev := history.Bars[n-2]

	m := LatestMetrics{
		Time:          last.Time,
		Market:        history.Market,
		Currency:      history.Currency,
		CurrentPrice:  last.Close,
		PreviousClose: prev.Close,
		Volume:        last.Volume,
	}
	// A zero previous close has no meaningful relative change.
	if prev.Close != 0 {
		m.PercentChange = (last.Close - prev.Close) / prev.Close * 100
	}

	if table != nil && table.Len() == n {
		if avg, ok := table.At(VolumeSMA20, n-1); ok {
			m.AverageVolume = &avg
		}
	}

	return m, nil
}
