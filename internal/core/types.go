package core

import (
	"fmt"
	"strings"
	"time"
)

// Market represents a trading market
type Market string

const (
	MarketUS  Market = "US"
	MarketHK  Market = "HK"
	MarketCNA Market = "CN_A"
	MarketEU  Market = "EU"
)

// DetectMarket infers the market from the symbol's exchange suffix.
// Symbols without a known suffix are US listings.
func DetectMarket(symbol string) Market {
	upper := strings.ToUpper(symbol)
	switch {
	case strings.HasSuffix(upper, ".HK"):
		return MarketHK
	case strings.HasSuffix(upper, ".SH") || strings.HasSuffix(upper, ".SS") || strings.HasSuffix(upper, ".SZ"):
		return MarketCNA
	case strings.HasSuffix(upper, ".L") || strings.HasSuffix(upper, ".DE") || strings.HasSuffix(upper, ".PA"):
		return MarketEU
	default:
		return MarketUS
	}
}

// OHLCV represents a single trading-period observation
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceHistory is a chronologically ordered series of bars for one symbol.
// Consumers treat it as read-only.
type PriceHistory struct {
	Symbol   string  `json:"symbol"`
	Market   Market  `json:"market,omitempty"`
	Currency string  `json:"currency,omitempty"` // ISO code reported by the source
	Interval string  `json:"interval"`           // "1d", "1h", ...
	Bars     []OHLCV `json:"bars"`
}

// Len returns the number of bars
func (h PriceHistory) Len() int {
	return len(h.Bars)
}

// Closes extracts the close column
func (h PriceHistory) Closes() []float64 {
	closes := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the volume column
func (h PriceHistory) Volumes() []float64 {
	volumes := make([]float64, len(h.Bars))
	for i, b := range h.Bars {
		volumes[i] = b.Volume
	}
	return volumes
}

// Last returns the most recent bar. The history must not be empty.
func (h PriceHistory) Last() OHLCV {
	return h.Bars[len(h.Bars)-1]
}

// Validate checks the history is non-empty and strictly increasing in time.
func (h PriceHistory) Validate() error {
	if len(h.Bars) == 0 {
		return ErrEmptyHistory
	}
	for i := 1; i < len(h.Bars); i++ {
		if !h.Bars[i].Time.After(h.Bars[i-1].Time) {
			return WrapError(ErrUnorderedHistory,
				fmt.Errorf("bar %d (%s) is not after bar %d (%s)",
					i, h.Bars[i].Time.Format(time.RFC3339), i-1, h.Bars[i-1].Time.Format(time.RFC3339)))
		}
	}
	return nil
}
