package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-viewgen/internal/logging"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("warn", "text", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "name", "ViewA")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "name=ViewA") {
		t.Fatalf("unexpected text output %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logging.New("debug", "JSON", &buf).Debug("generated", "levels", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected json record, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "generated" || record["levels"] != float64(3) {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestContextRoundTrip(t *testing.T) {
	if logging.FromContext(context.Background()) != logging.Discard() {
		t.Fatal("expected discard logger without a context value")
	}

	var buf bytes.Buffer
	logger := logging.New("info", "text", &buf)
	ctx := logging.WithLogger(context.Background(), logger)
	if logging.FromContext(ctx) != logger {
		t.Fatal("expected logger from context")
	}
}
