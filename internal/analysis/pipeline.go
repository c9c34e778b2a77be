// Package analysis turns a price history into an aligned indicator table and
// the scalar metrics of its most recent bar.
package analysis

import (
	"time"

	"github.com/newthinker/tickr/internal/core"
	"github.com/newthinker/tickr/internal/indicator"
)

const (
	shortSMAPeriod  = 20
	mediumSMAPeriod = 50
	longSMAPeriod   = 200
	rsiPeriod       = 14
	macdFastSpan    = 12
	macdSlowSpan    = 26
	macdSignalSpan  = 9
	bollingerWindow = 20
	bollingerStdDev = 2.0
	volumeSMAPeriod = 20
)

// Compute derives every indicator column from the history. Short histories
// produce undefined values rather than errors; only an empty history fails.
func Compute(history core.PriceHistory) (*Table, error) {
	if history.Len() == 0 {
		return nil, core.ErrEmptyHistory
	}

	closes := history.Closes()
	volumes := history.Volumes()

	emaFast := indicator.EMA(closes, macdFastSpan)
	emaSlow := indicator.EMA(closes, macdSlowSpan)
	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	bands := indicator.Bollinger(closes, bollingerWindow, bollingerStdDev)
	volumeSMA := indicator.SMA(volumes, volumeSMAPeriod)

	columns := map[string][]float64{
		SMA20:       indicator.SMA(closes, shortSMAPeriod),
		SMA50:       indicator.SMA(closes, mediumSMAPeriod),
		SMA200:      indicator.SMA(closes, longSMAPeriod),
		RSI14:       indicator.RSI(closes, rsiPeriod),
		MACD:        macd,
		SignalLine:  indicator.EMA(macd, macdSignalSpan),
		BBUpper:     bands.Upper,
		BBMiddle:    bands.Middle,
		BBLower:     bands.Lower,
		VolumeSMA20: volumeSMA,
		VolumeRatio: volumeRatio(volumes, volumeSMA),
	}

	times := make([]time.Time, history.Len())
	for i, bar := range history.Bars {
		times[i] = bar.Time
	}

	return &Table{times: times, columns: columns}, nil
}

// volumeRatio divides volume by its moving average, leaving the ratio
// undefined where the average is undefined or zero.
func volumeRatio(volumes, avg []float64) []float64 {
	out := make([]float64, len(volumes))
	for i := range volumes {
		if !indicator.IsDefined(avg[i]) || avg[i] == 0 {
			out[i] = indicator.Undefined
			continue
		}
		out[i] = volumes[i] / avg[i]
	}
	return out
}
