// Package analyzer runs the full technical-analysis pipeline for one price
// history: indicators, latest metrics, signal classification and report.
package analyzer

import (
	"errors"
	"fmt"
	"time"

	"github.com/newthinker/tickr/internal/analysis"
	"github.com/newthinker/tickr/internal/core"
	"github.com/newthinker/tickr/internal/report"
	"github.com/newthinker/tickr/internal/signal"
	"go.uber.org/zap"
)

// Outcome labels passed to the Recorder
const (
	OutcomeOK                  = "ok"
	OutcomeEmptyHistory        = "empty_history"
	OutcomeInsufficientHistory = "insufficient_history"
	OutcomeInvalidHistory      = "invalid_history"
)

// Recorder receives analysis metrics. *metrics.Registry satisfies it.
type Recorder interface {
	RecordAnalysis(outcome string, duration float64)
	RecordSignal(tag string)
}

// Result is everything derived from one history.
type Result struct {
	Symbol  string
	Table   *analysis.Table
	Metrics analysis.LatestMetrics
	Signals signal.Set
	Report  report.Report
}

// Service is safe for concurrent use; it keeps no per-call state.
type Service struct {
	logger   *zap.Logger
	recorder Recorder
}

// New creates an analysis service. Both arguments may be nil.
func New(logger *zap.Logger, recorder Recorder) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{logger: logger, recorder: recorder}
}

// Analyze validates the history and derives the indicator table, latest
// metrics, signals and report. The history is never modified.
func (s *Service) Analyze(history core.PriceHistory) (*Result, error) {
	start := time.Now()

	result, err := s.analyze(history)
	duration := time.Since(start).Seconds()
	outcome := outcomeOf(err)
	s.recorder.RecordAnalysis(outcome, duration)

	if err != nil {
		s.logger.Debug("analysis rejected",
			zap.String("symbol", history.Symbol),
			zap.Int("bars", history.Len()),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}

	for _, tag := range result.Signals.Tags {
		s.recorder.RecordSignal(string(tag))
	}

	s.logger.Info("analysis complete",
		zap.String("symbol", history.Symbol),
		zap.Int("bars", history.Len()),
		zap.String("short_term", string(result.Signals.ShortTerm)),
		zap.String("long_term", string(result.Signals.LongTerm)),
		zap.Int("tags", len(result.Signals.Tags)),
		zap.Float64("duration_s", duration),
	)

	return result, nil
}

func (s *Service) analyze(history core.PriceHistory) (*Result, error) {
	if err := history.Validate(); err != nil {
		return nil, err
	}

	table, err := analysis.Compute(history)
	if err != nil {
		return nil, fmt.Errorf("computing indicators: %w", err)
	}

	metrics, err := analysis.Summarize(history, table)
	if err != nil {
		return nil, fmt.Errorf("summarizing latest bar: %w", err)
	}

	signals := signal.Classify(table.Latest(), metrics)

	return &Result{
		Symbol:  history.Symbol,
		Table:   table,
		Metrics: metrics,
		Signals: signals,
		Report:  report.Format(history.Symbol, metrics, signals),
	}, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, core.ErrEmptyHistory):
		return OutcomeEmptyHistory
	case errors.Is(err, core.ErrInsufficientHistory):
		return OutcomeInsufficientHistory
	default:
		return OutcomeInvalidHistory
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordAnalysis(string, float64) {}
func (nopRecorder) RecordSignal(string)            {}
