package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestLoggerUsableBeforeInit(t *testing.T) {
	if Logger == nil {
		t.Fatal("package logger must expose a usable default before Init")
	}

	// Must not panic when a process (or test binary) logs without Init.
	Logger.Warn("warning before init", zap.String("key", "value"))
	Logger.Error("error before init")
}
