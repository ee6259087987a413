package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func plainHandler(buf *bytes.Buffer, level slog.Level) *TerminalHandler {
	h := newTerminalHandler(buf, &slog.HandlerOptions{Level: level})
	h.color = false
	return h
}

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := plainHandler(&buf, slog.LevelDebug)

	ts := time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "seed applied", 0)
	r.AddAttrs(slog.String("version", "2024-06-menus"), slog.Int("inserted", 12))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	want := "10:30:45.123 INF seed applied version=2024-06-menus inserted=12\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(plainHandler(&buf, slog.LevelDebug))
		logger.Log(context.Background(), tt.level, "msg")
		if !strings.Contains(buf.String(), tt.label) {
			t.Errorf("level %v: expected %s in %q", tt.level, tt.label, buf.String())
		}
	}
}

func TestTerminalHandler_ColourCodes(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)
	h.color = true

	slog.New(h).Error("boom")

	if !strings.Contains(buf.String(), ansiRed) {
		t.Errorf("expected red escape code, got %q", buf.String())
	}
}

func TestTerminalHandler_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(plainHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestTerminalHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(plainHandler(&buf, slog.LevelInfo)).
		With("command", "classify").
		WithGroup("report")

	logger.Info("done", "updated", 3, slog.Group("failed", "count", 1))

	out := buf.String()
	for _, want := range []string{"command=classify", "report.updated=3", "report.failed.count=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestTerminalHandler_QuotesStrings(t *testing.T) {
	var buf bytes.Buffer
	slog.New(plainHandler(&buf, slog.LevelInfo)).Info("x", "title", "Laporan Tahunan 2023")

	if !strings.Contains(buf.String(), `title="Laporan Tahunan 2023"`) {
		t.Errorf("expected quoted value, got %q", buf.String())
	}
}

func TestTerminalHandler_EmptyGroupIsNoop(t *testing.T) {
	var buf bytes.Buffer
	h := plainHandler(&buf, slog.LevelInfo)

	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}
