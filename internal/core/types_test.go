package core

import (
	"errors"
	"testing"
	"time"
)

func dailyBars(closes ...float64) []OHLCV {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = OHLCV{Time: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func TestMarket_Constants(t *testing.T) {
	markets := []Market{MarketUS, MarketHK, MarketCNA, MarketEU}
	expected := []string{"US", "HK", "CN_A", "EU"}

	for i, m := range markets {
		if string(m) != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], m)
		}
	}
}

func TestDetectMarket(t *testing.T) {
	tests := []struct {
		symbol   string
		expected Market
	}{
		{"AAPL", MarketUS},
		{"BRK.B", MarketUS},
		{"0700.HK", MarketHK},
		{"600519.SH", MarketCNA},
		{"600519.SS", MarketCNA},
		{"000001.sz", MarketCNA},
		{"VOD.L", MarketEU},
		{"sap.de", MarketEU},
	}

	for _, tc := range tests {
		if got := DetectMarket(tc.symbol); got != tc.expected {
			t.Errorf("DetectMarket(%s) = %s, want %s", tc.symbol, got, tc.expected)
		}
	}
}

func TestPriceHistory_Columns(t *testing.T) {
	h := PriceHistory{Symbol: "AAPL", Bars: dailyBars(1, 2, 3)}

	closes := h.Closes()
	if len(closes) != 3 || closes[2] != 3 {
		t.Errorf("unexpected closes: %v", closes)
	}

	closes[0] = 99
	if h.Bars[0].Close != 1 {
		t.Error("Closes must return a copy")
	}

	volumes := h.Volumes()
	if volumes[1] != 1000 {
		t.Errorf("unexpected volumes: %v", volumes)
	}

	if h.Last().Close != 3 {
		t.Errorf("Last().Close = %f, want 3", h.Last().Close)
	}
}

func TestPriceHistory_Validate(t *testing.T) {
	ordered := dailyBars(1, 2, 3)
	duplicate := dailyBars(1, 2, 3)
	duplicate[2].Time = duplicate[1].Time
	reversed := dailyBars(1, 2)
	reversed[0], reversed[1] = reversed[1], reversed[0]

	tests := []struct {
		name    string
		bars    []OHLCV
		wantErr error
	}{
		{"valid", ordered, nil},
		{"single bar", dailyBars(5), nil},
		{"empty", nil, ErrEmptyHistory},
		{"duplicate timestamp", duplicate, ErrUnorderedHistory},
		{"reversed", reversed, ErrUnorderedHistory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PriceHistory{Bars: tt.bars}.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
