// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package telemetry provides utilities for setting up and configuring
// application observability, including logging, tracing, and metrics.
// This file specifically handles the setup of structured logging that
// is compatible with Google Cloud Logging and integrates with OpenTelemetry traces.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaycherian/animastery-api/internal/cloud"
)

// spanContextLogHandler is a slog.Handler that wraps another handler and
// injects the OpenTelemetry trace and span IDs found in the record's context,
// using the field names Google Cloud Logging correlates with Cloud Trace.
type spanContextLogHandler struct {
	slog.Handler
}

func handlerWithSpanContext(handler slog.Handler) *spanContextLogHandler {
	return &spanContextLogHandler{Handler: handler}
}

// Handle adds the trace context attributes, when present, and delegates.
// See: https://cloud.google.com/logging/docs/structured-logging#special-payload-fields
func (t *spanContextLogHandler) Handle(ctx context.Context, record slog.Record) error {
	if s := trace.SpanContextFromContext(ctx); s.IsValid() {
		record.AddAttrs(
			slog.Any("logging.googleapis.com/trace", s.TraceID()),
			slog.Any("logging.googleapis.com/spanId", s.SpanID()),
			slog.Bool("logging.googleapis.com/trace_sampled", s.TraceFlags().IsSampled()),
		)
	}
	return t.Handler.Handle(ctx, record)
}

func (t *spanContextLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return handlerWithSpanContext(t.Handler.WithAttrs(attrs))
}

func (t *spanContextLogHandler) WithGroup(name string) slog.Handler {
	return handlerWithSpanContext(t.Handler.WithGroup(name))
}

// fanoutHandler sends every record to all of its handlers.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	for _, h := range f {
		if h.Enabled(ctx, record.Level) {
			err = errors.Join(err, h.Handle(ctx, record.Clone()))
		}
	}
	return err
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// levelHandler drops records below level before they reach the wrapped handler.
type levelHandler struct {
	slog.Handler
	level slog.Leveler
}

func (l *levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= l.level.Level() && l.Handler.Enabled(ctx, level)
}

func (l *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{Handler: l.Handler.WithAttrs(attrs), level: l.level}
}

func (l *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{Handler: l.Handler.WithGroup(name), level: l.level}
}

// replacer renames the default slog keys to the ones Google Cloud Logging
// expects ("severity", "timestamp", "message") and maps WARN to WARNING.
// https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#LogSeverity
func replacer(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
		if level, ok := a.Value.Any().(slog.Level); ok && level == slog.LevelWarn {
			a.Value = slog.StringValue("WARNING")
		}
	case slog.TimeKey:
		a.Key = "timestamp"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// ParseLevel converts a configured level name to a slog.Level. An empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(name) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// NewLogHandler builds the Cloud Logging JSON handler writing to out, wrapped
// so that trace context is injected into each record.
func NewLogHandler(out io.Writer, level slog.Leveler) slog.Handler {
	jsonHandler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level, ReplaceAttr: replacer})
	return handlerWithSpanContext(jsonHandler)
}

// SetupLogging initializes the logging system for the entire application.
// It configures both the standard `log` package and the structured `slog` package
// to write JSON to stdout and, when config.File is set, to that file as well.
// With config.OtelBridge set, every record at or above the level is also handed
// to the OpenTelemetry logs API under the serviceName scope; the provider behind
// it is installed by SetupOpenTelemetry.
//
// Inputs:
//   - config: The logging section of the application configuration.
//   - serviceName: The instrumentation scope of bridged records.
//
// Outputs:
//   - closer: Closes the log file, if any. Safe to call when no file was opened.
//   - err: An invalid level or an unopenable log file.
func SetupLogging(config cloud.Logging, serviceName string) (closer func() error, err error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stdout
	closer = func() error { return nil }
	if config.File != "" {
		file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.File, err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file.Close
	}

	var handler slog.Handler = NewLogHandler(out, level)
	if config.OtelBridge {
		handler = fanoutHandler{handler, &levelHandler{Handler: otelslog.NewHandler(serviceName), level: level}}
	}

	slog.SetDefault(slog.New(handler))
	// The std log package is routed through slog by SetDefault; keep its
	// records at info.
	slog.SetLogLoggerLevel(slog.LevelInfo)
	log.SetFlags(0)
	return closer, nil
}
