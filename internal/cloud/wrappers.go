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

// Package cloud provides the components that talk to external services.
// This file defines the provider-neutral chat-completion contract used by the
// query workflow, plus the preflight check that confirms a provider is usable.
//
// Structs:
//   - CompletionRequest: A single-turn request (optional system turn plus one user turn).
//   - CompletionResult: The generated text and the token usage reported by the provider.
//
// Interfaces:
//   - ChatCompleter: Implemented by the OpenAI-compatible and Gemini clients.
//
// Functions:
//   - CheckAPIStatus: Sends the minimal preflight request and classifies any failure.
package cloud

import (
	"context"
	"log/slog"

	"github.com/jaycherian/animastery-api/internal/core/model"
)

// CompletionRequest is a single-turn chat completion. Zero values mean
// "not sent": an empty SystemInstructions adds no system turn, a nil
// Temperature keeps the provider default and MaxTokens <= 0 sets no cap.
type CompletionRequest struct {
	Model              string
	SystemInstructions string
	Prompt             string
	Temperature        *float32
	MaxTokens          int
}

// CompletionResult holds the generated text, untrimmed, and the usage counts.
type CompletionResult struct {
	Text             string
	PromptTokens     int64
	CompletionTokens int64
}

// ChatCompleter is the contract for a remote chat-completion provider.
// Implementations must be safe for concurrent use and must not retry.
type ChatCompleter interface {
	// Provider returns the provider name, used in logs and span attributes.
	Provider() string
	// Complete performs exactly one remote call, bound to ctx.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)
}

// CheckAPIStatus performs the preflight check against the provider and reports
// whether it is usable. It never returns a nil status. When the check fails the
// failure is classified with ClassifyFailure and the provider error kept in Err.
func CheckAPIStatus(ctx context.Context, completer ChatCompleter, preflight PreflightRequest) *model.APIStatus {
	_, err := completer.Complete(ctx, &CompletionRequest{
		Model:     preflight.Model,
		Prompt:    preflight.Prompt,
		MaxTokens: preflight.MaxTokens,
	})
	if err != nil {
		kind := ClassifyFailure(err)
		slog.WarnContext(ctx, "remote API preflight failed",
			"provider", completer.Provider(), "kind", kind, "error", err)
		return model.StatusUnreachable(kind, err)
	}
	return model.StatusReachable()
}
