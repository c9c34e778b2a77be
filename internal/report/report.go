// Package report renders analysis results as a plain-text report.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/newthinker/tickr/internal/analysis"
	"github.com/newthinker/tickr/internal/signal"
)

// Report is an ordered list of text lines.
type Report struct {
	Lines []string `json:"lines"`
}

// String joins the lines with newlines.
func (r Report) String() string {
	return strings.Join(r.Lines, "\n")
}

// phrases maps each signal-section tag to its description. HIGH_VOLUME is
// rendered in the volume section instead.
var phrases = map[signal.Tag]string{
	signal.TagOverbought:     "RSI above 70, the stock may be overbought",
	signal.TagOversold:       "RSI below 30, the stock may be oversold",
	signal.TagMACDBullish:    "MACD is above its signal line (bullish momentum)",
	signal.TagMACDBearish:    "MACD is at or below its signal line (bearish momentum)",
	signal.TagAboveUpperBand: "price closed above the upper Bollinger Band",
	signal.TagBelowLowerBand: "price closed below the lower Bollinger Band",
}

const highVolumePhrase = "volume is more than 1.5x its 20-day average"

// Format renders the price header, trend, signal and volume sections in that
// order.
func Format(symbol string, m analysis.LatestMetrics, set signal.Set) Report {
	var lines []string

	if symbol != "" {
		lines = append(lines, fmt.Sprintf("Technical Analysis for $%s", symbol))
	} else {
		lines = append(lines, "Technical Analysis")
	}
	lines = append(lines, fmt.Sprintf("Current Price: $%.2f (%+.2f%%)", m.CurrentPrice, m.PercentChange))

	lines = append(lines, "", "Trend Analysis:")
	lines = append(lines, fmt.Sprintf("- Short-term trend: %s (price vs 20-day SMA)", set.ShortTerm))
	lines = append(lines, fmt.Sprintf("- Long-term trend: %s (price vs 200-day SMA)", set.LongTerm))
	if set.RSI != nil {
		lines = append(lines, fmt.Sprintf("- RSI (14): %.2f", *set.RSI))
	}

	lines = append(lines, "", "Signals:")
	n := 0
	for _, tag := range set.Tags {
		phrase, ok := phrases[tag]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", tag, phrase))
		n++
	}
	if n == 0 {
		lines = append(lines, "- No notable signals")
	}

	lines = append(lines, "", "Volume Analysis:")
	lines = append(lines, fmt.Sprintf("- Current volume: %s", formatVolume(m.Volume)))
	if m.AverageVolume != nil {
		lines = append(lines, fmt.Sprintf("- 20-day average volume: %s", formatVolume(*m.AverageVolume)))
	}
	if set.Has(signal.TagHighVolume) {
		lines = append(lines, fmt.Sprintf("- %s: %s", signal.TagHighVolume, highVolumePhrase))
	}

	return Report{Lines: lines}
}

func formatVolume(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}
