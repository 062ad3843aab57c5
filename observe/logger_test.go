package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

// TestLogger_IncludesTypeFields verifies operation fields are present in log output.
func TestLogger_IncludesTypeFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	meta := TypeMeta{Operation: OpGetType, RequestedType: "Customer", KeySlots: 3, Participants: 2}
	logger.WithType(meta).Info(context.Background(), "generated")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]

	if v, ok := entry["typepipe.operation"].(string); !ok || v != OpGetType {
		t.Errorf("expected typepipe.operation=%q, got %v", OpGetType, entry["typepipe.operation"])
	}
	if v, ok := entry["typepipe.requested_type"].(string); !ok || v != "Customer" {
		t.Errorf("expected typepipe.requested_type='Customer', got %v", entry["typepipe.requested_type"])
	}
	if v, ok := entry["typepipe.key_slots"].(float64); !ok || v != 3 {
		t.Errorf("expected typepipe.key_slots=3, got %v", entry["typepipe.key_slots"])
	}
	if entry["msg"] != "generated" || entry["level"] != "info" {
		t.Errorf("unexpected msg/level: %v/%v", entry["msg"], entry["level"])
	}
}

// TestLogger_OmitsEmptyTypeFields verifies optional fields are not emitted.
func TestLogger_OmitsEmptyTypeFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.WithType(TypeMeta{Operation: OpLoadFlushedCode}).Info(context.Background(), "loaded")

	entry := decodeLines(t, &buf)[0]
	for _, key := range []string{"typepipe.requested_type", "typepipe.key_slots", "typepipe.participants"} {
		if _, ok := entry[key]; ok {
			t.Errorf("expected %s to be omitted", key)
		}
	}
}

// TestLogger_LevelFiltering verifies messages below the level are dropped.
func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{"debug", 4},
		{"info", 3},
		{"warn", 2},
		{"error", 1},
		{"bogus", 3},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(tt.level, &buf)
			ctx := context.Background()

			logger.Debug(ctx, "d")
			logger.Info(ctx, "i")
			logger.Warn(ctx, "w")
			logger.Error(ctx, "e")

			if got := len(decodeLines(t, &buf)); got != tt.want {
				t.Errorf("level %s: got %d entries, want %d", tt.level, got, tt.want)
			}
		})
	}
}

// TestLogger_ArgumentsRedacted verifies constructor arguments never reach the log.
func TestLogger_ArgumentsRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "invoke",
		Field{Key: "args", Value: []string{"hunter2"}},
		Field{Key: "token", Value: "abc"},
		Field{Key: "delegate", Value: "Func<Customer>"},
	)

	out := buf.String()
	if strings.Contains(out, "hunter2") || strings.Contains(out, "abc\"") {
		t.Errorf("sensitive values leaked: %s", out)
	}
	entry := decodeLines(t, &buf)[0]
	if entry["args"] != "[REDACTED]" {
		t.Errorf("expected args to be redacted, got %v", entry["args"])
	}
	if entry["delegate"] != "Func<Customer>" {
		t.Errorf("expected delegate to be kept, got %v", entry["delegate"])
	}
}

// TestLogger_DerivedLoggersShareWriter verifies concurrent writes from derived loggers do not interleave.
func TestLogger_DerivedLoggersShareWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.WithType(TypeMeta{Operation: OpGetType}).Info(context.Background(), "line", Field{Key: "i", Value: i})
		}(i)
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 20 {
		t.Errorf("expected 20 well-formed entries, got %d", got)
	}
}

// TestParseLogLevel verifies round trips through String.
func TestParseLogLevel(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "error"} {
		if got := ParseLogLevel(s).String(); got != s {
			t.Errorf("ParseLogLevel(%q).String() = %q", s, got)
		}
	}
}
