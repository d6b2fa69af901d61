package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

// capture swaps the default logger for one writing JSON into a buffer and
// restores it when the test ends.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestFromContextIncludesRequestID(t *testing.T) {
	buf := capture(t)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-123")
	FromContext(ctx).Info("hello")

	if got := buf.String(); !strings.Contains(got, `"request_id":"req-123"`) {
		t.Errorf("log entry missing request_id: %s", got)
	}
}

func TestFromContextWithoutRequestID(t *testing.T) {
	buf := capture(t)

	FromContext(context.Background()).Info("hello")

	if got := buf.String(); strings.Contains(got, "request_id") {
		t.Errorf("log entry has unexpected request_id: %s", got)
	}
}

func TestWithFieldsCarriesFieldsAndRequestID(t *testing.T) {
	buf := capture(t)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-456")
	WithFields(ctx, "import_id", "abc", "kind", "exercises").Info("started")

	got := buf.String()
	for _, want := range []string{`"request_id":"req-456"`, `"import_id":"abc"`, `"kind":"exercises"`} {
		if !strings.Contains(got, want) {
			t.Errorf("log entry missing %s: %s", want, got)
		}
	}
}
