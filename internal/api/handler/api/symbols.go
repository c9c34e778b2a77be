package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/newthinker/tickr/internal/analysis"
	"github.com/newthinker/tickr/internal/analyzer"
	"github.com/newthinker/tickr/internal/api/response"
	"github.com/newthinker/tickr/internal/core"
	"github.com/newthinker/tickr/internal/indicator"
)

// MaxLookbackDays bounds the days query parameter.
const MaxLookbackDays = 3650

// SymbolAnalyzer runs the analysis pipeline for a symbol.
type SymbolAnalyzer interface {
	AnalyzeSymbol(ctx context.Context, symbol string, days int) (*analyzer.Result, error)
}

// SymbolHandler handles per-symbol analysis API requests
type SymbolHandler struct {
	analyzer SymbolAnalyzer
}

// NewSymbolHandler creates a new symbol handler
func NewSymbolHandler(a SymbolAnalyzer) *SymbolHandler {
	return &SymbolHandler{analyzer: a}
}

// AnalysisResponse is the body of the analysis endpoint.
type AnalysisResponse struct {
	Symbol     string                 `json:"symbol"`
	Metrics    analysis.LatestMetrics `json:"metrics"`
	Signals    []string               `json:"signals"`
	ShortTerm  string                 `json:"short_term_trend"`
	LongTerm   string                 `json:"long_term_trend"`
	RSI        *float64               `json:"rsi"`
	Indicators map[string]*float64    `json:"indicators"`
	Report     string                 `json:"report"`
}

// IndicatorsResponse is the full aligned indicator table. Undefined values
// encode as null.
type IndicatorsResponse struct {
	Symbol     string                `json:"symbol"`
	Times      []time.Time           `json:"times"`
	Indicators map[string][]*float64 `json:"indicators"`
}

// Analysis handles GET /api/v1/symbols/{symbol}/analysis
func (h *SymbolHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}

	tags := make([]string, len(result.Signals.Tags))
	for i, t := range result.Signals.Tags {
		tags[i] = string(t)
	}

	response.JSON(w, http.StatusOK, AnalysisResponse{
		Symbol:     result.Symbol,
		Metrics:    result.Metrics,
		Signals:    tags,
		ShortTerm:  string(result.Signals.ShortTerm),
		LongTerm:   string(result.Signals.LongTerm),
		RSI:        result.Signals.RSI,
		Indicators: result.Table.Latest().Nullable(),
		Report:     result.Report.String(),
	})
}

// Indicators handles GET /api/v1/symbols/{symbol}/indicators
func (h *SymbolHandler) Indicators(w http.ResponseWriter, r *http.Request) {
	result, ok := h.run(w, r)
	if !ok {
		return
	}

	table := result.Table
	columns := make(map[string][]*float64, len(table.Names()))
	for _, name := range table.Names() {
		values, _ := table.Column(name)
		col := make([]*float64, len(values))
		for i := range values {
			if indicator.IsDefined(values[i]) {
				col[i] = &values[i]
			}
		}
		columns[name] = col
	}

	response.JSON(w, http.StatusOK, IndicatorsResponse{
		Symbol:     result.Symbol,
		Times:      table.Times(),
		Indicators: columns,
	})
}

func (h *SymbolHandler) run(w http.ResponseWriter, r *http.Request) (*analyzer.Result, bool) {
	symbol := strings.ToUpper(strings.TrimSpace(r.PathValue("symbol")))
	if symbol == "" {
		response.Error(w, http.StatusBadRequest, core.ErrInvalidSymbol)
		return nil, false
	}

	days, err := parseDays(r.URL.Query().Get("days"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, core.WrapError(core.ErrBadRequest, err))
		return nil, false
	}

	result, err := h.analyzer.AnalyzeSymbol(r.Context(), symbol, days)
	if err != nil {
		response.Error(w, statusFor(err), err)
		return nil, false
	}
	return result, true
}

// parseDays returns 0 for an absent value, meaning the configured default.
func parseDays(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("days must be an integer: %q", raw)
	}
	if days < 2 || days > MaxLookbackDays {
		return 0, fmt.Errorf("days must be between 2 and %d, got %d", MaxLookbackDays, days)
	}
	return days, nil
}
