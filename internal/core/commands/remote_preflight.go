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
// preflight command that checks the remote model API before a completion.
//
// Logic Flow:
//  1. It sends the configured minimal request through the ChatCompleter.
//  2. The resulting *model.APIStatus is stored under ApiStatusParam.
//  3. When the API is usable it produces no output, so the chain continues to
//     the completion command.
//  4. When it is not, the failure is recorded as an error and the fixed apology
//     for the failure kind becomes the response, so no completion is attempted.
package commands

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/cor"
	"github.com/jaycherian/animastery-api/internal/core/model"
)

// ApiStatusParam is the context key holding the preflight's *model.APIStatus.
const ApiStatusParam = "__API_STATUS__"

// RemotePreflight checks that the remote model API is reachable, that the key
// is accepted and that quota remains.
type RemotePreflight struct {
	cor.BaseCommand
	completer cloud.ChatCompleter    // The provider client.
	preflight cloud.PreflightRequest // The minimal preflight request.
}

// NewRemotePreflight creates the preflight command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - completer: The provider client the preflight request is sent through.
//   - preflight: The model, prompt and token limit of the preflight request.
//
// Outputs:
//   - *RemotePreflight: The configured command.
func NewRemotePreflight(name string, completer cloud.ChatCompleter, preflight cloud.PreflightRequest) *RemotePreflight {
	return &RemotePreflight{
		BaseCommand: *cor.NewBaseCommand(name),
		completer:   completer,
		preflight:   preflight,
	}
}

func (c *RemotePreflight) IsExecutable(context cor.Context) bool {
	if !c.BaseCommand.IsExecutable(context) || context.Get(c.GetOutputParam()) != nil {
		return false
	}
	_, ok := queryFrom(context, c.GetInputParam())
	return ok
}

// Execute sends the preflight request and stores the *model.APIStatus under
// ApiStatusParam. A failed check also writes the matching apology to the
// output key, which ends the dispatch chain.
func (c *RemotePreflight) Execute(context cor.Context) {
	ctx := context.GetContext()
	status := cloud.CheckAPIStatus(ctx, c.completer, c.preflight)
	context.Add(ApiStatusParam, status)

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("provider", c.completer.Provider()),
		attribute.String("failure_kind", string(status.Kind)),
	)

	if status.Reachable {
		c.GetSuccessCounter().Add(ctx, 1)
		return
	}

	c.GetErrorCounter().Add(ctx, 1)
	slog.ErrorContext(ctx, "remote API check failed", "kind", status.Kind, "error", status.Err)
	context.AddError(c.GetName(), fmt.Errorf("remote API unavailable (%s): %w", status.Kind, status.Err))
	context.Add(c.GetOutputParam(), model.NewTextResponse(model.ApologyFor(status.Kind)))
}
