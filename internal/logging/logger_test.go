package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitJSONWithComponent(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	logger := Component("dashboard")
	logger.Info().Str("conversation_id", "conv-1").Msg("conversation opened")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "dashboard" {
		t.Errorf("component = %v, want dashboard", entry["component"])
	}
	if entry["message"] != "conversation opened" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestLevelFilters(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	Logger.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	logger := WithConversation("conv-9")
	logger.Warn().Msg("shown")
	if !strings.Contains(buf.String(), `"conversation_id":"conv-9"`) {
		t.Fatalf("missing conversation field: %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := WithContext(context.Background(), WithRole("clinic"))
	logger := FromContext(ctx)
	logger.Info().Msg("x")
	if !strings.Contains(buf.String(), `"role":"clinic"`) {
		t.Fatalf("expected role field, got %q", buf.String())
	}

	// Without an attached logger the global one is returned.
	_ = FromContext(context.Background())
}

func TestOpenOutput(t *testing.T) {
	w, closeFn, err := OpenOutput("", true)
	if err != nil || w != io.Discard {
		t.Fatalf("expected discard writer, got %v %v", w, err)
	}
	_ = closeFn()

	w, closeFn, err = OpenOutput("", false)
	if err != nil || w != io.Writer(os.Stderr) {
		t.Fatalf("expected stderr, got %v %v", w, err)
	}
	_ = closeFn()

	path := filepath.Join(t.TempDir(), "logs", "carewatch.log")
	w, closeFn, err = OpenOutput(path, true)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	if _, err := io.WriteString(w, "line\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Fatalf("unexpected log contents %q: %v", data, err)
	}
}
