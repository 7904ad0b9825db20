package telemetry

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWritesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	Info("match.status", map[string]any{
		"resume_id": "resume-1",
		"score":     68,
	})

	entries := logs.FilterMessage("match.status").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["resume_id"] != "resume-1" {
		t.Fatalf("unexpected resume_id: %v", ctx["resume_id"])
	}
	if ctx["score"] != int64(68) {
		t.Fatalf("unexpected score: %#v", ctx["score"])
	}
}

func TestErrorLevel(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })

	Error("http.error", nil)

	entries := logs.All()
	if len(entries) != 1 || entries[0].Level != zap.ErrorLevel {
		t.Fatalf("expected one error entry, got %+v", entries)
	}
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("expected non-nil logger")
	}
	Info("noop", map[string]any{"k": "v"})
}
