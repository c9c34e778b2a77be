package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newthinker/tickr/internal/logger"
	"github.com/spf13/cobra"
)

var (
	analyzeDays int
	analyzeJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol]",
	Short: "Print a technical analysis report for a symbol",
	Long:  "Fetch daily history for a symbol and print the same report /generate returns for a $SYMBOL prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "calendar days of history to fetch (default: collector.lookback_days)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print metrics, signals and the latest indicators as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a, _, err := buildApp(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	result, err := a.AnalyzeSymbol(ctx, args[0], analyzeDays)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", args[0], err)
	}

	if !analyzeJSON {
		fmt.Fprintln(cmd.OutOrStdout(), result.Report.String())
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"symbol":     result.Symbol,
		"metrics":    result.Metrics,
		"signals":    result.Signals,
		"indicators": result.Table.Latest().Nullable(),
		"report":     result.Report.Lines,
	})
}
