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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command that answers a query with a remote chat completion.
//
// Logic Flow:
//  1. It builds a single-turn request: the configured system instructions,
//     the query text as the user turn, the configured temperature and the
//     query's model.
//  2. It performs exactly one call through the ChatCompleter, bound to the
//     request context.
//  3. On success the whitespace-trimmed text becomes the response and token
//     usage is added to the prompt and completion counters.
//  4. On failure the error is classified; quota and key failures produce their
//     fixed apologies and anything else an apology quoting the raw error.
package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/cor"
	"github.com/jaycherian/animastery-api/internal/core/model"
)

// RemoteCompletion is a command that answers a query with the remote model.
type RemoteCompletion struct {
	cor.BaseCommand
	completer              cloud.ChatCompleter // The provider client.
	remote                 cloud.RemoteModel   // System instructions and temperature.
	promptTokenCounter     metric.Int64Counter // OTel counter for prompt tokens.
	completionTokenCounter metric.Int64Counter // OTel counter for completion tokens.
}

// NewRemoteCompletion is the constructor for the RemoteCompletion command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - completer: The provider client.
//   - remote: The remote model settings used for every request.
//
// Outputs:
//   - *RemoteCompletion: The command, including initialized token counters.
func NewRemoteCompletion(name string, completer cloud.ChatCompleter, remote cloud.RemoteModel) *RemoteCompletion {
	out := &RemoteCompletion{
		BaseCommand: *cor.NewBaseCommand(name),
		completer:   completer,
		remote:      remote,
	}
	var err error
	out.promptTokenCounter, err = out.GetMeter().Int64Counter(fmt.Sprintf("%s.token.prompt", out.GetName()))
	if err != nil {
		slog.Warn("error creating prompt token counter", "command", name, "error", err)
	}
	out.completionTokenCounter, err = out.GetMeter().Int64Counter(fmt.Sprintf("%s.token.completion", out.GetName()))
	if err != nil {
		slog.Warn("error creating completion token counter", "command", name, "error", err)
	}
	return out
}

func (c *RemoteCompletion) IsExecutable(context cor.Context) bool {
	if !c.BaseCommand.IsExecutable(context) || context.Get(c.GetOutputParam()) != nil {
		return false
	}
	_, ok := queryFrom(context, c.GetInputParam())
	return ok
}

func (c *RemoteCompletion) Execute(context cor.Context) {
	ctx := context.GetContext()
	query, _ := queryFrom(context, c.GetInputParam())

	modelName := query.Model
	if modelName == "" {
		modelName = c.remote.DefaultModel
	}
	temperature := c.remote.Temperature
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("provider", c.completer.Provider()),
		attribute.String("model", modelName),
	)

	result, err := c.completer.Complete(ctx, &cloud.CompletionRequest{
		Model:              modelName,
		SystemInstructions: c.remote.SystemInstructions,
		Prompt:             query.Text,
		Temperature:        &temperature,
	})
	if err != nil {
		kind := cloud.ClassifyFailure(err)
		c.GetErrorCounter().Add(ctx, 1)
		slog.ErrorContext(ctx, "remote completion failed", "model", modelName, "kind", kind, "error", err)
		context.AddError(c.GetName(), fmt.Errorf("remote completion failed (%s): %w", kind, err))
		context.Add(c.GetOutputParam(), model.NewTextResponse(model.CompletionApologyFor(kind, err)))
		return
	}

	c.promptTokenCounter.Add(ctx, result.PromptTokens)
	c.completionTokenCounter.Add(ctx, result.CompletionTokens)
	c.GetSuccessCounter().Add(ctx, 1)
	context.Add(c.GetOutputParam(), model.NewTextResponse(strings.TrimSpace(result.Text)))
}
