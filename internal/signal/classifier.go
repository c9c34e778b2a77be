package signal

import (
	"github.com/newthinker/tickr/internal/analysis"
)

// Thresholds
const (
	OverboughtRSI   = 70.0
	OversoldRSI     = 30.0
	HighVolumeRatio = 1.5
)

// Classify evaluates each rule independently against the latest indicator
// row and price. Undefined indicators are skipped.
func Classify(row analysis.Row, metrics analysis.LatestMetrics) Set {
	price := metrics.CurrentPrice
	set := Set{
		ShortTerm: trendAgainst(row, analysis.SMA20, price),
		LongTerm:  trendAgainst(row, analysis.SMA200, price),
		Tags:      []Tag{},
	}

	if rsi, ok := row.Get(analysis.RSI14); ok {
		set.RSI = &rsi
		switch {
		case rsi > OverboughtRSI:
			set.Tags = append(set.Tags, TagOverbought)
		case rsi < OversoldRSI:
			set.Tags = append(set.Tags, TagOversold)
		}
	}

	macd, okMACD := row.Get(analysis.MACD)
	signalLine, okSignal := row.Get(analysis.SignalLine)
	if okMACD && okSignal {
		if macd > signalLine {
			set.Tags = append(set.Tags, TagMACDBullish)
		} else {
			set.Tags = append(set.Tags, TagMACDBearish)
		}
	}

	if upper, ok := row.Get(analysis.BBUpper); ok && price > upper {
		set.Tags = append(set.Tags, TagAboveUpperBand)
	} else if lower, ok := row.Get(analysis.BBLower); ok && price < lower {
		set.Tags = append(set.Tags, TagBelowLowerBand)
	}

	if ratio, ok := row.Get(analysis.VolumeRatio); ok && ratio > HighVolumeRatio {
		set.Tags = append(set.Tags, TagHighVolume)
	}

	return set
}

func trendAgainst(row analysis.Row, name string, price float64) Trend {
	ma, ok := row.Get(name)
	if !ok {
		return TrendUnknown
	}
	if price > ma {
		return TrendBullish
	}
	return TrendBearish
}
