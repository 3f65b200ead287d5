package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestCloudRunHandlerSeverityAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(slog.LevelInfo, &buf)).With("widget_id", "serrano.age_distribution")

	log.Warn("widget load failed", "error", "timeout")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid json line: %v", err)
	}
	if event["severity"] != "WARNING" {
		t.Errorf("expected WARNING severity, got %v", event["severity"])
	}
	data, _ := event["data"].(map[string]any)
	if data["widget_id"] != "serrano.age_distribution" || data["error"] != "timeout" {
		t.Errorf("unexpected data: %v", data)
	}
}

func TestCloudRunHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newCloudRunHandler(slog.LevelWarn, &buf))

	log.Info("dropped")

	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %s", buf.String())
	}
}

func TestGetSlogLevel(t *testing.T) {
	if getSlogLevel("DEBUG") != slog.LevelDebug {
		t.Error("expected debug level")
	}
	if getSlogLevel("nonsense") != slog.LevelInfo {
		t.Error("expected info fallback")
	}
}
