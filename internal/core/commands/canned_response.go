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
// command that answers a query from the static catalog when its text contains
// one of a set of trigger phrases.
//
// Logic Flow:
//  1. It reads the *model.Query stored under the command's input key.
//  2. It applies only when no earlier command has produced a response and the
//     query text contains one of its phrases, ignoring case.
//  3. It stores a fresh copy of its canned response under the output key,
//     which ends a stop-on-output chain.
package commands

import (
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jaycherian/animastery-api/internal/core/cor"
	"github.com/jaycherian/animastery-api/internal/core/model"
)

// CannedResponse answers matching queries with a fixed response.
type CannedResponse struct {
	cor.BaseCommand
	phrases []string               // Trigger phrases, matched as case-insensitive substrings.
	respond func() *model.Response // Builds the response; called once per match.
}

// NewCannedResponse creates a canned-response command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - phrases: The trigger phrases.
//   - respond: A factory returning a new response value on every call.
//
// Outputs:
//   - *CannedResponse: The command, reading a *model.Query from CtxIn.
func NewCannedResponse(name string, phrases []string, respond func() *model.Response) *CannedResponse {
	return &CannedResponse{
		BaseCommand: *cor.NewBaseCommand(name),
		phrases:     phrases,
		respond:     respond,
	}
}

// IsExecutable is true when the query matches and nothing has answered yet.
func (c *CannedResponse) IsExecutable(context cor.Context) bool {
	if !c.BaseCommand.IsExecutable(context) || context.Get(c.GetOutputParam()) != nil {
		return false
	}
	query, ok := queryFrom(context, c.GetInputParam())
	return ok && query.Contains(c.phrases...)
}

func (c *CannedResponse) Execute(context cor.Context) {
	trace.SpanFromContext(context.GetContext()).SetAttributes(attribute.Bool("canned", true))
	slog.DebugContext(context.GetContext(), "answering from catalog", "command", c.GetName())
	context.Add(c.GetOutputParam(), c.respond())
	c.GetSuccessCounter().Add(context.GetContext(), 1)
}

// queryFrom returns the query stored under key, if any.
func queryFrom(context cor.Context, key string) (*model.Query, bool) {
	query, ok := context.Get(key).(*model.Query)
	return query, ok && query != nil
}
