package analyzer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/newthinker/tickr/internal/analysis"
	"github.com/newthinker/tickr/internal/core"
	"github.com/newthinker/tickr/internal/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRecorder struct {
	outcomes []string
	tags     []string
}

func (f *fakeRecorder) RecordAnalysis(outcome string, duration float64) {
	f.outcomes = append(f.outcomes, outcome)
}

func (f *fakeRecorder) RecordSignal(tag string) {
	f.tags = append(f.tags, tag)
}

func history(symbol string, closes []float64) core.PriceHistory {
	start := time.Date(2024, 3, 1, 21, 0, 0, 0, time.UTC)
	bars := make([]core.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = core.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000 + float64(i%3)*10_000,
		}
	}
	return core.PriceHistory{Symbol: symbol, Interval: "1d", Bars: bars}
}

// overboughtCloses returns 30 closes whose last 14 deltas gain 12 and lose 4,
// so RSI(14) at the last index is 75.
func overboughtCloses() []float64 {
	closes := make([]float64, 0, 30)
	for i := 0; i < 16; i++ {
		closes = append(closes, 100)
	}
	price := 100.0
	deltas := []float64{1, 1, 1, 1, 1, 1, -2, 1, 1, 1, 1, 1, 1, -2}
	for _, d := range deltas {
		price += d
		closes = append(closes, price)
	}
	return closes
}

func TestAnalyze_Overbought(t *testing.T) {
	svc := New(nil, nil)

	result, err := svc.Analyze(history("NVDA", overboughtCloses()))
	require.NoError(t, err)

	rsi, ok := result.Table.Latest().Get(analysis.RSI14)
	require.True(t, ok)
	assert.InDelta(t, 75.0, rsi, 1e-9)

	text := result.Report.String()
	assert.Contains(t, text, string(signal.TagOverbought))
	assert.NotContains(t, text, string(signal.TagOversold))
	assert.True(t, strings.HasPrefix(text, "Technical Analysis for $NVDA"))
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	rec := &fakeRecorder{}
	svc := New(nil, rec)

	_, err := svc.Analyze(core.PriceHistory{Symbol: "AAPL"})
	assert.True(t, errors.Is(err, core.ErrEmptyHistory))
	assert.Equal(t, []string{OutcomeEmptyHistory}, rec.outcomes)
}

func TestAnalyze_SinglePoint(t *testing.T) {
	rec := &fakeRecorder{}
	svc := New(nil, rec)

	_, err := svc.Analyze(history("AAPL", []float64{187.2}))
	assert.True(t, errors.Is(err, core.ErrInsufficientHistory))
	assert.Equal(t, []string{OutcomeInsufficientHistory}, rec.outcomes)
}

func TestAnalyze_UnorderedHistory(t *testing.T) {
	h := history("AAPL", []float64{1, 2, 3})
	h.Bars[2].Time = h.Bars[0].Time

	_, err := New(nil, nil).Analyze(h)
	assert.True(t, errors.Is(err, core.ErrUnorderedHistory))
}

func TestAnalyze_Idempotent(t *testing.T) {
	closes := make([]float64, 260)
	for i := range closes {
		closes[i] = 100 + float64(i%17) - float64(i%5)*0.75 + float64(i)*0.1
	}
	h := history("MSFT", closes)
	svc := New(nil, nil)

	first, err := svc.Analyze(h)
	require.NoError(t, err)
	second, err := svc.Analyze(h)
	require.NoError(t, err)

	assert.Equal(t, first.Report.String(), second.Report.String())
}

func TestAnalyze_MonotonicIsBullish(t *testing.T) {
	closes := make([]float64, 220)
	for i := range closes {
		closes[i] = 20 + float64(i)
	}

	result, err := New(nil, nil).Analyze(history("AMZN", closes))
	require.NoError(t, err)

	assert.Equal(t, signal.TrendBullish, result.Signals.ShortTerm)
	assert.Equal(t, signal.TrendBullish, result.Signals.LongTerm)
}

func TestAnalyze_ShortHistoryDegrades(t *testing.T) {
	result, err := New(nil, nil).Analyze(history("TSLA", []float64{100, 105}))
	require.NoError(t, err)

	assert.Equal(t, 5.0, result.Metrics.PercentChange)
	assert.Equal(t, signal.TrendUnknown, result.Signals.ShortTerm)
	assert.Equal(t, signal.TrendUnknown, result.Signals.LongTerm)
	assert.Nil(t, result.Signals.RSI)
	// MACD and its signal line are defined from the first bar
	assert.Len(t, result.Signals.Tags, 1)
	assert.NotContains(t, result.Report.String(), "RSI (14)")
}

func TestAnalyze_RecordsSignalsAndLogs(t *testing.T) {
	obsCore, logs := observer.New(zapcore.InfoLevel)
	rec := &fakeRecorder{}
	svc := New(zap.New(obsCore), rec)

	result, err := svc.Analyze(history("NVDA", overboughtCloses()))
	require.NoError(t, err)

	assert.Equal(t, []string{OutcomeOK}, rec.outcomes)
	require.Len(t, rec.tags, len(result.Signals.Tags))
	for i, tag := range result.Signals.Tags {
		assert.Equal(t, string(tag), rec.tags[i])
	}

	entries := logs.FilterMessage("analysis complete").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "NVDA", entries[0].ContextMap()["symbol"])
}
