// Package signal classifies the latest indicator values into trend labels
// and qualitative tags.
package signal

// Tag is a qualitative label emitted when an indicator crosses a threshold.
type Tag string

const (
	TagOverbought     Tag = "OVERBOUGHT"
	TagOversold       Tag = "OVERSOLD"
	TagMACDBullish    Tag = "MACD_BULLISH"
	TagMACDBearish    Tag = "MACD_BEARISH"
	TagAboveUpperBand Tag = "ABOVE_UPPER_BAND"
	TagBelowLowerBand Tag = "BELOW_LOWER_BAND"
	TagHighVolume     Tag = "HIGH_VOLUME"
)

// Trend is the direction of price relative to a moving average.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	TrendUnknown Trend = "UNKNOWN"
)

// Set is the outcome of one classification. Tags keep evaluation order.
type Set struct {
	ShortTerm Trend    `json:"short_term_trend"`
	LongTerm  Trend    `json:"long_term_trend"`
	RSI       *float64 `json:"rsi,omitempty"`
	Tags      []Tag    `json:"tags"`
}

// Has reports whether tag was emitted.
func (s Set) Has(tag Tag) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
