// pkg/logger/logger_test.go

package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	defer Replace(Log)()

	if err := Initialize("debug"); err != nil {
		t.Fatal(err)
	}
	if !Log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug level should be enabled")
	}

	if err := Initialize("loud"); err == nil {
		t.Fatal("want error for unknown level")
	}
}

func TestReplaceAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))

	Log.Info("hello",
		String("s", "v"), Int("i", 1), Int64("i64", 2), Error(errors.New("boom")), Stringer("st", zapcore.InfoLevel))

	restore()
	Log.Info("dropped")

	if logs.Len() != 1 {
		t.Fatalf("entries=%d want=1", logs.Len())
	}
	ctx := logs.All()[0].ContextMap()
	if ctx["s"] != "v" || ctx["i"] != int64(1) || ctx["i64"] != int64(2) || ctx["error"] != "boom" || ctx["st"] != "info" {
		t.Fatalf("fields unexpected: %+v", ctx)
	}
}
