package analysis

import (
	"errors"
	"testing"

	"github.com/newthinker/tickr/internal/core"
)

func TestSummarize_PercentChange(t *testing.T) {
	h := historyFromCloses([]float64{100.0, 105.0}, 2500)

	m, err := Summarize(h, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PercentChange != 5.0 {
		t.Errorf("PercentChange = %v, want exactly 5.0", m.PercentChange)
	}
	if m.CurrentPrice != 105 {
		t.Errorf("CurrentPrice = %v, want 105", m.CurrentPrice)
	}
	if m.PreviousClose != 100 {
		t.Errorf("PreviousClose = %v, want 100", m.PreviousClose)
	}
	if m.Volume != 2500 {
		t.Errorf("Volume = %v, want 2500", m.Volume)
	}
	if m.AverageVolume != nil {
		t.Error("AverageVolume should be nil without a table")
	}
}

func TestSummarize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		closes  []float64
		wantErr error
	}{
		{"empty", nil, core.ErrEmptyHistory},
		{"single point", []float64{42}, core.ErrInsufficientHistory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(historyFromCloses(tt.closes, 1), nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Summarize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSummarize_NegativeChange(t *testing.T) {
	m, err := Summarize(historyFromCloses([]float64{50, 40}, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PercentChange != -20 {
		t.Errorf("PercentChange = %v, want -20", m.PercentChange)
	}
}

func TestSummarize_ZeroPreviousClose(t *testing.T) {
	m, err := Summarize(historyFromCloses([]float64{0, 3}, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PercentChange != 0 {
		t.Errorf("PercentChange = %v, want 0", m.PercentChange)
	}
}

func TestSummarize_AverageVolumeFromTable(t *testing.T) {
	h := historyFromCloses(rising(25, 10, 1), 300)
	table, err := Compute(h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := Summarize(h, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.AverageVolume == nil || *m.AverageVolume != 300 {
		t.Errorf("AverageVolume = %v, want 300", m.AverageVolume)
	}
}

func TestSummarize_CarriesMarketAndCurrency(t *testing.T) {
	h := historyFromCloses([]float64{380, 384}, 1000)
	h.Symbol = "0700.HK"
	h.Market = core.MarketHK
	h.Currency = "HKD"

	m, err := Summarize(h, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Market != core.MarketHK || m.Currency != "HKD" {
		t.Errorf("expected HK/HKD, got %s/%s", m.Market, m.Currency)
	}
	if !m.Time.Equal(h.Bars[1].Time) {
		t.Errorf("expected latest bar time %s, got %s", h.Bars[1].Time, m.Time)
	}
}
