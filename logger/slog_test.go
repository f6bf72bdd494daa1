//go:build go1.21

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSlogLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{AddSource: true})
	logger := NewSlogLogger(slog.New(handler), Config{LogLevel: Info})

	logger.Trace(WithTable(context.Background(), "users"), time.Now(), func() (string, int64) {
		return "select count(*) from users", 0
	}, nil)

	if strings.Contains(buf.String(), "logger/slog.go") {
		t.Error("Found internal slog.go reference in caller frame. Expected only test file references.")
	}

	if !strings.Contains(buf.String(), "logger/slog_test.go") {
		t.Error("Missing expected test file reference. 'logger/slog_test.go' should appear in caller frames.")
	}

	if !strings.Contains(buf.String(), "table=users") {
		t.Errorf("expected table attribute, got %s", buf.String())
	}
}
