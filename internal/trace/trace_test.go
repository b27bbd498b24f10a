package trace

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogSinkForwardsStage(t *testing.T) {
	var buf bytes.Buffer
	sink := SlogSink{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	sink.Stage("extract", "Extracting product and market candidates...")

	out := buf.String()
	if !strings.Contains(out, "stage=extract") {
		t.Fatalf("stage attribute missing: %s", out)
	}
	if !strings.Contains(out, "Extracting product and market candidates") {
		t.Fatalf("message missing: %s", out)
	}
}

func TestSlogSinkNilLoggerIsSafe(t *testing.T) {
	var sink SlogSink
	sink.Stage("extract", "message")
}

func TestSpanSinkNilSpanIsSafe(t *testing.T) {
	var sink SpanSink
	sink.Stage("extract", "message")
}
