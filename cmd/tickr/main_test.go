package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/newthinker/tickr/internal/config"
	"go.uber.org/zap"
)

func TestBuildApp_Defaults(t *testing.T) {
	cfg := config.Defaults()

	a, reg, err := buildApp(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}
	if reg == nil {
		t.Error("expected metrics registry when metrics are enabled")
	}

	stats := a.GetStats()
	if stats["collectors"] != "yahoo" {
		t.Errorf("expected yahoo collector, got %v", stats["collectors"])
	}
	if stats["provider"] != "" {
		t.Errorf("expected no chat provider by default, got %v", stats["provider"])
	}
}

func TestBuildApp_MetricsDisabled(t *testing.T) {
	cfg := config.Defaults()
	cfg.Metrics.Enabled = false

	_, reg, err := buildApp(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}
	if reg != nil {
		t.Error("expected nil registry when metrics are disabled")
	}
}

func TestBuildApp_ProviderAndArchive(t *testing.T) {
	cfg := config.Defaults()
	cfg.LLM.Provider = "ollama"
	cfg.LLM.Ollama.Endpoint = "http://localhost:11434"
	cfg.Archive.Enabled = true
	cfg.Archive.Type = "localfs"
	cfg.Archive.Path = t.TempDir()

	a, _, err := buildApp(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}

	stats := a.GetStats()
	if stats["provider"] != "ollama" {
		t.Errorf("expected ollama provider, got %v", stats["provider"])
	}
	if stats["archive"] != true {
		t.Error("expected archive to be enabled")
	}
}

func TestBuildApp_UnknownArchive(t *testing.T) {
	cfg := config.Defaults()
	cfg.Archive.Enabled = true
	cfg.Archive.Type = "ftp"

	if _, _, err := buildApp(cfg, zap.NewNop()); err == nil {
		t.Error("expected error for unknown archive type")
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "tickr dev\n") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestAnalyzeCommand_RequiresSymbol(t *testing.T) {
	rootCmd.SetArgs([]string{"analyze"})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error without a symbol argument")
	}
}
