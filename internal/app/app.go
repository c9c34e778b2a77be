package app

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/tickr/internal/analyzer"
	"github.com/newthinker/tickr/internal/collector"
	"github.com/newthinker/tickr/internal/config"
	"github.com/newthinker/tickr/internal/core"
	"github.com/newthinker/tickr/internal/llm"
	"github.com/newthinker/tickr/internal/storage/archive"
	"github.com/newthinker/tickr/internal/ticker"
	"go.uber.org/zap"
)

// Reply sources
const (
	SourceAnalysis = "analysis"
	SourceLLM      = "llm"
)

// Recorder receives host-side metrics. *metrics.Registry satisfies it.
type Recorder interface {
	analyzer.Recorder
	RecordFetch(collector string, err error)
	RecordLLMRequest(provider string, err error)
	RecordArchiveWrite(err error)
}

// Reply is the answer to a free-form prompt.
type Reply struct {
	Response string   `json:"response"`
	Source   string   `json:"source"`
	Symbol   string   `json:"symbol,omitempty"`
	Signals  []string `json:"signals,omitempty"`
}

// ModelInfo describes what answers prompts.
type ModelInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// App wires collectors, the analysis service, the chat provider and the
// report archive together.
type App struct {
	cfg        *config.Config
	logger     *zap.Logger
	recorder   Recorder
	collectors *collector.Registry
	analyzer   *analyzer.Service
	now        func() time.Time

	mu       sync.RWMutex
	provider llm.Provider
	archiver *archive.Archiver
}

// New creates a new App instance. A nil recorder discards metrics.
func New(cfg *config.Config, logger *zap.Logger, recorder Recorder) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Defaults()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		recorder:   recorder,
		collectors: collector.NewRegistry(),
		analyzer:   analyzer.New(logger.Named("analyzer"), recorder),
		now:        time.Now,
	}
}

// RegisterCollector adds a collector to the app
func (a *App) RegisterCollector(c collector.Collector) {
	a.collectors.Register(c)
}

// SetProvider sets the chat model used for prompts without a ticker.
func (a *App) SetProvider(p llm.Provider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.provider = p
}

// SetArchiver enables report archiving.
func (a *App) SetArchiver(ar *archive.Archiver) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.archiver = ar
}

func (a *App) getProvider() llm.Provider {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.provider
}

func (a *App) getArchiver() *archive.Archiver {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.archiver
}

// AnalyzeSymbol fetches the last days of history for symbol and runs the
// full analysis. days <= 0 uses the configured lookback.
func (a *App) AnalyzeSymbol(ctx context.Context, symbol string, days int) (*analyzer.Result, error) {
	if days <= 0 {
		days = a.cfg.Collector.LookbackDays
	}

	market := core.DetectMarket(symbol)
	col, ok := a.collectors.Select(a.cfg.Collector.Provider, market)
	if !ok {
		return nil, core.WrapError(core.ErrCollectorUnavailable,
			fmt.Errorf("no collector serves market %s", market))
	}

	end := a.now()
	start := end.AddDate(0, 0, -days)

	history, err := col.FetchHistory(ctx, symbol, start, end, a.cfg.Collector.Interval)
	a.recorder.RecordFetch(col.Name(), err)
	if err != nil {
		a.logger.Debug("failed to fetch history",
			zap.String("symbol", symbol),
			zap.String("collector", col.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	return a.analyzer.Analyze(history)
}

// Generate answers a prompt. A $TICKER prompt yields a technical analysis
// report; anything else goes to the chat provider when one is configured.
func (a *App) Generate(ctx context.Context, prompt, requestID string) (*Reply, error) {
	if symbol, ok := ticker.Extract(prompt); ok {
		result, err := a.AnalyzeSymbol(ctx, symbol, 0)
		if err != nil {
			return nil, err
		}
		a.archive(ctx, requestID, prompt, result)

		tags := make([]string, len(result.Signals.Tags))
		for i, t := range result.Signals.Tags {
			tags[i] = string(t)
		}
		return &Reply{
			Response: result.Report.String(),
			Source:   SourceAnalysis,
			Symbol:   result.Symbol,
			Signals:  tags,
		}, nil
	}

	p := a.getProvider()
	if p == nil {
		return nil, core.ErrNoTicker
	}

	text, err := llm.Reply(ctx, p, a.cfg.LLM.SystemPrompt, prompt, a.cfg.LLM.MaxTokens)
	a.recorder.RecordLLMRequest(p.Name(), err)
	if err != nil {
		a.logger.Warn("chat provider failed",
			zap.String("provider", p.Name()),
			zap.Error(err),
		)
		return nil, err
	}
	return &Reply{Response: text, Source: SourceLLM}, nil
}

// archive stores the report when archiving is enabled. Failures are logged
// and never fail the request.
func (a *App) archive(ctx context.Context, requestID, prompt string, result *analyzer.Result) {
	ar := a.getArchiver()
	if ar == nil {
		return
	}
	// Request ids name archive files; anything but a UUID is replaced.
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}

	tags := make([]string, len(result.Signals.Tags))
	for i, t := range result.Signals.Tags {
		tags[i] = string(t)
	}

	p, err := ar.Save(ctx, archive.Record{
		RequestID:     requestID,
		Symbol:        result.Symbol,
		Prompt:        prompt,
		CreatedAt:     a.now().UTC(),
		Market:        string(result.Metrics.Market),
		Currency:      result.Metrics.Currency,
		CurrentPrice:  result.Metrics.CurrentPrice,
		PercentChange: result.Metrics.PercentChange,
		Signals:       tags,
		Report:        result.Report.String(),
	})
	a.recorder.RecordArchiveWrite(err)
	if err != nil {
		a.logger.Warn("failed to archive report",
			zap.String("symbol", result.Symbol),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return
	}
	a.logger.Debug("report archived", zap.String("path", p))
}

// Reports returns up to limit archived reports for symbol, newest first.
func (a *App) Reports(ctx context.Context, symbol string, limit int) ([]archive.Record, error) {
	ar := a.getArchiver()
	if ar == nil {
		return nil, core.ErrArchiveDisabled
	}

	paths, err := ar.List(ctx, symbol)
	if err != nil {
		return nil, err
	}
	// Paths sort by day; ids within a day are random, so the whole oldest
	// kept day is loaded and ordering is settled by CreatedAt.
	if limit > 0 && len(paths) > limit {
		cut := len(paths) - limit
		day := path.Dir(paths[cut])
		for cut > 0 && path.Dir(paths[cut-1]) == day {
			cut--
		}
		paths = paths[cut:]
	}

	records := make([]archive.Record, 0, len(paths))
	for _, p := range paths {
		rec, err := ar.Load(ctx, p)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ModelInfo reports the active chat provider, or the built-in analyst when
// none is configured.
func (a *App) ModelInfo() ModelInfo {
	p := a.getProvider()
	if p == nil {
		return ModelInfo{
			Name:        "tickr-analyst",
			Version:     "technical-indicators",
			Description: "Technical analysis reports for $TICKER prompts (SMA, RSI, MACD, Bollinger Bands, volume).",
		}
	}
	return ModelInfo{
		Name:    p.Name(),
		Version: p.Model(),
		Description: fmt.Sprintf("Technical analysis reports for $TICKER prompts; other prompts are answered by %s (%s).",
			p.Name(), p.Model()),
	}
}

// GetStats returns application statistics
func (a *App) GetStats() map[string]any {
	names := make([]string, 0)
	for _, c := range a.collectors.GetAll() {
		names = append(names, c.Name())
	}

	provider := ""
	if p := a.getProvider(); p != nil {
		provider = p.Name()
	}

	return map[string]any{
		"collectors": strings.Join(names, ","),
		"provider":   provider,
		"archive":    a.getArchiver() != nil,
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordAnalysis(string, float64) {}
func (nopRecorder) RecordSignal(string)            {}
func (nopRecorder) RecordFetch(string, error)      {}
func (nopRecorder) RecordLLMRequest(string, error) {}
func (nopRecorder) RecordArchiveWrite(error)       {}
