package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Development(t *testing.T) {
	log, err := New(true)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("development logger should enable debug level")
	}

	// Should not panic
	log.Info("test message")
}

func TestNew_Production(t *testing.T) {
	log, err := New(false)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("production logger should not enable debug level")
	}
}

func TestForMode(t *testing.T) {
	tests := []struct {
		mode      string
		debug     bool
		wantDebug bool
	}{
		{"release", false, false},
		{"debug", false, true},
		{"release", true, true},
	}

	for _, tt := range tests {
		log, err := ForMode(tt.mode, tt.debug)
		if err != nil {
			t.Fatalf("ForMode(%q, %v): %v", tt.mode, tt.debug, err)
		}
		if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
			t.Errorf("ForMode(%q, %v) debug enabled = %v, want %v", tt.mode, tt.debug, got, tt.wantDebug)
		}
	}
}

func TestMust(t *testing.T) {
	// Should not panic
	log := Must(true)
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
}
