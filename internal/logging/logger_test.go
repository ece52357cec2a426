// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// decodeLine parses the single JSON entry in buf.
func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    zerolog.Level
		wantErr bool
	}{
		{"trace", zerolog.TraceLevel, false},
		{"DEBUG", zerolog.DebugLevel, false},
		{"", zerolog.InfoLevel, false},
		{"warning", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"off", zerolog.Disabled, false},
		{"verbose", zerolog.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidFormat(t *testing.T) {
	t.Parallel()

	for format, want := range map[string]bool{"json": true, "Console": true, "text": false, "": false} {
		if got := ValidFormat(format); got != want {
			t.Errorf("ValidFormat(%q) = %v, want %v", format, got, want)
		}
	}
}

// The following tests reconfigure the global logger and must not run in parallel.

func TestInit_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: FormatJSON, Service: "idk", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := WithComponent("picker")
	logger.Info().Str("place_id", "p1").Msg("Restaurant picked")

	entry := decodeLine(t, &buf)
	for key, want := range map[string]string{
		"level":     "info",
		"message":   "Restaurant picked",
		"service":   "idk",
		"component": "picker",
		"place_id":  "p1",
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %q", key, entry[key], want)
		}
	}
	if _, ok := entry["time"]; !ok {
		t.Error("missing time field")
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("hidden")
	Debug().Msg("hidden")
	Err(errors.New("boom")).Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info/debug written at warn level: %s", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Errorf("expected error entry, got: %s", out)
	}
}

func TestCtx_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = ContextWithUserID(ctx, "user-1")
	CtxInfo(ctx).Msg("hello")

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-1" || entry["user_id"] != "user-1" {
		t.Errorf("context fields missing: %v", entry)
	}
}

func TestCtx_StoredLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf).With().Str("component", "api").Logger())
	CtxWarn(ctx).Msg("stored")

	entry := decodeLine(t, &buf)
	if entry["component"] != "api" {
		t.Errorf("stored logger not used: %v", entry)
	}
}

func TestRequestIDHelpers(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q", got)
	}
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b || len(a) != 36 {
		t.Errorf("GenerateRequestID() = %q, %q", a, b)
	}
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() { Init(DefaultConfig()) })

	slogger := NewSlogLogger(NewTestLogger(&buf)).
		With("supervisor", "idk").
		WithGroup("service")
	slogger.Warn("Service restarted", "name", "recent-cleanup", "attempt", 2)

	entry := decodeLine(t, &buf)
	if entry["level"] != "warn" || entry["message"] != "Service restarted" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["supervisor"] != "idk" || entry["service.name"] != "recent-cleanup" {
		t.Errorf("grouped attrs missing: %v", entry)
	}
	if entry["service.attempt"] != float64(2) {
		t.Errorf("attempt = %v, want 2", entry["service.attempt"])
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled on warn logger")
	}
}
