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

// Package services contains the business logic exposed to the HTTP layer.
// This file, `query.go`, defines the QueryService, which answers one user
// query by running the query dispatch workflow. It never fails: every outcome,
// including an unexpected panic inside the workflow, becomes a response.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/cor"
	"github.com/jaycherian/animastery-api/internal/core/model"
	"github.com/jaycherian/animastery-api/internal/core/workflow"
)

// QueryService turns query text into a response.
type QueryService struct {
	Workflow     cor.Command         // The dispatch workflow; reads CtxIn, writes CtxOut.
	DefaultModel string              // Substituted when a caller names no model.
	tracer       trace.Tracer        // Tracer for the dispatch span.
	queryCounter metric.Int64Counter // Number of dispatched queries.
}

// NewQueryService builds the service and its dispatch workflow from the shared clients.
func NewQueryService(serviceClients *cloud.ServiceClients) *QueryService {
	return NewQueryServiceWith(workflow.NewQueryDispatchWorkflow(serviceClients), serviceClients.Remote.DefaultModel)
}

// NewQueryServiceWith builds the service around an existing workflow.
func NewQueryServiceWith(wf cor.Command, defaultModel string) *QueryService {
	out := &QueryService{
		Workflow:     wf,
		DefaultModel: defaultModel,
		tracer:       otel.Tracer("query-service"),
	}
	var err error
	out.queryCounter, err = otel.Meter(cor.MeterName).Int64Counter("query-service.counter.dispatched")
	if err != nil {
		slog.Warn("error creating query counter", "service", "query-service", "error", err)
	}
	return out
}

// Dispatch answers text using the named model, or DefaultModel when modelName
// is empty. The returned response is never nil.
//
// Inputs:
//   - ctx: The request context; cancelling it aborts the remote calls.
//   - text: The user's query, possibly empty.
//   - modelName: The model requested by the caller, or "".
//
// Outputs:
//   - *model.Response: The canned, apology or completion answer.
func (s *QueryService) Dispatch(ctx context.Context, text string, modelName string) (out *model.Response) {
	query := model.NewQuery(text, modelName, s.DefaultModel)
	ctx, span := s.tracer.Start(ctx, "query-service_dispatch",
		trace.WithAttributes(attribute.String("model", query.Model)))
	defer span.End()

	start := time.Now()
	slog.InfoContext(ctx, "query received", "query", query.Text, "model", query.Model)
	s.queryCounter.Add(ctx, 1)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic during dispatch: %v", r)
			span.RecordError(err)
			slog.ErrorContext(ctx, "query dispatch failed", "error", err)
			out = model.NewTextResponse(model.ProcessingApology)
		}
		slog.InfoContext(ctx, "query answered",
			"videos", len(out.Videos), "elapsed_ms", time.Since(start).Milliseconds())
	}()

	chCtx := cor.NewBaseContextWith(ctx)
	chCtx.Add(cor.CtxIn, query)
	if s.Workflow.IsExecutable(chCtx) {
		s.Workflow.Execute(chCtx)
	}
	for name, err := range chCtx.GetErrors() {
		slog.WarnContext(ctx, "dispatch step failed", "command", name, "error", err)
	}

	if answer, ok := chCtx.Get(cor.CtxOut).(*model.Response); ok && answer != nil {
		return answer
	}
	slog.ErrorContext(ctx, "query dispatch produced no response")
	return model.NewTextResponse(model.ProcessingApology)
}
