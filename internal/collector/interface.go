package collector

import (
	"context"
	"time"

	"github.com/newthinker/tickr/internal/core"
)

// Collector fetches raw OHLCV history from a market-data provider.
type Collector interface {
	Name() string
	SupportedMarkets() []core.Market

	// FetchHistory returns bars in [start, end] ordered oldest first.
	FetchHistory(ctx context.Context, symbol string, start, end time.Time, interval string) (core.PriceHistory, error)
}
