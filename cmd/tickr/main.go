package main

import (
	"fmt"
	"os"

	"github.com/newthinker/tickr/internal/app"
	"github.com/newthinker/tickr/internal/collector/yahoo"
	"github.com/newthinker/tickr/internal/config"
	"github.com/newthinker/tickr/internal/llm/factory"
	"github.com/newthinker/tickr/internal/metrics"
	"github.com/newthinker/tickr/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "tickr",
	Short: "tickr - technical analysis reports for $TICKER prompts",
	Long: `tickr answers chat prompts. Prompts naming a ticker with the $SYMBOL
convention get a technical analysis report built from daily price history
(moving averages, RSI, MACD, Bollinger Bands and volume). Other prompts are
forwarded to a configured chat model.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file when given, otherwise defaults, and
// validates the result.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// buildApp wires the collector, chat provider and archive described by cfg.
// The returned registry is nil when metrics are disabled.
func buildApp(cfg *config.Config, log *zap.Logger) (*app.App, *metrics.Registry, error) {
	var reg *metrics.Registry
	var recorder app.Recorder
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
		recorder = reg
	}

	a := app.New(cfg, log, recorder)
	a.RegisterCollector(yahoo.New(yahoo.Options{
		BaseURL:           cfg.Collector.BaseURL,
		Timeout:           cfg.Collector.Timeout,
		RequestsPerSecond: cfg.Collector.RequestsPerSecond,
	}))

	provider, err := factory.New(cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("creating llm provider: %w", err)
	}
	if provider != nil {
		a.SetProvider(provider)
		log.Info("chat provider enabled",
			zap.String("provider", provider.Name()),
			zap.String("model", provider.Model()),
		)
	}

	if cfg.Archive.Enabled {
		storage, err := archive.Open(cfg.Archive)
		if err != nil {
			return nil, nil, fmt.Errorf("opening archive: %w", err)
		}
		a.SetArchiver(archive.NewArchiver(storage))
		log.Info("report archive enabled", zap.String("type", cfg.Archive.Type))
	}

	return a, reg, nil
}
