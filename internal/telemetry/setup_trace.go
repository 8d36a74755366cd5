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
// This file focuses on initializing the OpenTelemetry SDK for capturing and
// exporting trace and metric data to Google Cloud's observability suite.
package telemetry

import (
	"context"
	"errors"
	"log/slog"

	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	telemetryexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/contrib/propagators/autoprop"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/cor"
)

// SetupOpenTelemetry initializes the OpenTelemetry SDK for the application.
// Propagators are always installed. When telemetry is enabled, traces are
// exported to Cloud Trace and metrics to Cloud Monitoring, and, with
// logging.otel_bridge set, bridged log records go to an OTLP collector.
// Otherwise the global no-op providers stay in place. The returned `shutdown` function
// flushes and stops every component and must be called on exit.
//
// Inputs:
//   - ctx: The parent context, used for initialization of clients.
//   - config: The application's configuration, providing the project ID and
//     the service name.
//
// Returns:
//   - shutdown: A function that gracefully shuts down the providers.
//   - err: An error if any part of the setup fails.
func SetupOpenTelemetry(ctx context.Context, config *cloud.Config) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error
	shutdown = func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	otel.SetTextMapPropagator(autoprop.NewTextMapPropagator())

	if !config.Telemetry.Enabled {
		slog.Info("telemetry export disabled")
		return shutdown, nil
	}

	res, err := resource.New(ctx,
		resource.WithDetectors(gcp.NewDetector()),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.Application.Name),
		),
	)
	if errors.Is(err, resource.ErrPartialResource) || errors.Is(err, resource.ErrSchemaURLConflict) {
		slog.Warn("partial resource detection", "error", err)
	} else if err != nil {
		slog.Error("resource.New failed", "error", err)
		return nil, err
	}

	traceExporter, err := telemetryexporter.New(telemetryexporter.WithProjectID(config.Telemetry.GoogleProjectId))
	if err != nil {
		slog.Error("unable to set up trace exporter", "error", err)
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, tp.Shutdown)
	otel.SetTracerProvider(tp)

	mExporter, err := mexporter.New(
		mexporter.WithProjectID(config.Telemetry.GoogleProjectId),
	)
	if err != nil {
		slog.Error("unable to set up metric exporter", "error", err)
		return nil, errors.Join(err, shutdown(ctx))
	}
	mProvider := metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(mExporter)),
		metric.WithResource(res),
	)
	shutdownFuncs = append(shutdownFuncs, mProvider.Shutdown)
	otel.SetMeterProvider(mProvider)

	if config.Logging.OtelBridge {
		logOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(config.Telemetry.LogsEndpoint)}
		if config.Telemetry.LogsInsecure {
			logOpts = append(logOpts, otlploggrpc.WithInsecure())
		}
		logExporter, err := otlploggrpc.New(ctx, logOpts...)
		if err != nil {
			slog.Error("unable to set up log exporter", "error", err)
			return nil, errors.Join(err, shutdown(ctx))
		}
		lProvider := InstallLoggerProvider(sdklog.NewBatchProcessor(logExporter), res)
		shutdownFuncs = append(shutdownFuncs, lProvider.Shutdown)
	}

	slog.Info("telemetry export enabled", "project", config.Telemetry.GoogleProjectId, "meter", cor.MeterName)
	return shutdown, nil
}

// InstallLoggerProvider creates a LoggerProvider feeding processor and
// registers it as the global provider used by the otelslog bridge.
//
// Inputs:
//   - processor: The processor (batching or simple) wrapping the exporter.
//   - res: The resource attached to every record; may be nil.
//
// Returns:
//   - The provider, whose Shutdown flushes the processor.
func InstallLoggerProvider(processor sdklog.Processor, res *resource.Resource) *sdklog.LoggerProvider {
	opts := []sdklog.LoggerProviderOption{sdklog.WithProcessor(processor)}
	if res != nil {
		opts = append(opts, sdklog.WithResource(res))
	}
	provider := sdklog.NewLoggerProvider(opts...)
	global.SetLoggerProvider(provider)
	return provider
}
