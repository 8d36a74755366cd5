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

// Package test provides utility functions and fakes to support the application's
// test suite. It helps in setting up a consistent test configuration and in
// replacing the remote model provider with scripted or local stand-ins.
package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jaycherian/animastery-api/internal/cloud"
)

// TestAPIKey is the API key placed in every test configuration.
const TestAPIKey = "sk-test-key"

// HandleErr is a simple test helper function that checks if an error is not nil.
// If an error exists, it fails the test immediately.
func HandleErr(err error, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// GetConfig returns a fresh configuration holding the defaults plus a test
// API key. Telemetry is disabled. Each call returns a new struct so tests may
// modify it freely.
func GetConfig() *cloud.Config {
	config := cloud.NewConfig()
	config.Application.Name = "animastery-api-test"
	config.Remote.ApiKey = TestAPIKey
	config.Telemetry.Enabled = false
	return config
}

// GetClients wraps a completer in a ServiceClients built from GetConfig.
func GetClients(completer cloud.ChatCompleter) *cloud.ServiceClients {
	return &cloud.ServiceClients{Completer: completer, Remote: GetConfig().Remote}
}

// FakeCompleter is a scripted cloud.ChatCompleter. The n-th call returns
// Errors[n] when that entry exists and is non-nil, and Reply otherwise.
// A non-nil PanicWith makes every call panic with that value.
type FakeCompleter struct {
	Reply     string
	Errors    []error
	PanicWith any

	mu       sync.Mutex
	requests []cloud.CompletionRequest
}

// NewFakeCompleter returns a completer that answers every call with reply.
func NewFakeCompleter(reply string, errs ...error) *FakeCompleter {
	return &FakeCompleter{Reply: reply, Errors: errs}
}

func (f *FakeCompleter) Provider() string {
	return "fake"
}

func (f *FakeCompleter) Complete(_ context.Context, req *cloud.CompletionRequest) (*cloud.CompletionResult, error) {
	f.mu.Lock()
	idx := len(f.requests)
	f.requests = append(f.requests, *req)
	f.mu.Unlock()

	if f.PanicWith != nil {
		panic(f.PanicWith)
	}
	if idx < len(f.Errors) && f.Errors[idx] != nil {
		return nil, f.Errors[idx]
	}
	return &cloud.CompletionResult{Text: f.Reply, PromptTokens: 7, CompletionTokens: 11}, nil
}

// Requests returns a copy of every request received, in order.
func (f *FakeCompleter) Requests() []cloud.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]cloud.CompletionRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// CallCount returns the number of calls received.
func (f *FakeCompleter) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// NewOpenAIStub starts an httptest server answering POST /chat/completions
// with the given handler. The server is closed when the test ends.
func NewOpenAIStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// OpenAIReply answers with a single-choice chat completion holding content.
func OpenAIReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-3.5-turbo",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 34, "total_tokens": 46},
		})
	}
}

// OpenAIError answers with an OpenAI error envelope.
func OpenAIError(status int, code string, errType string, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, map[string]any{
			"error": map[string]any{
				"message": message,
				"type":    errType,
				"code":    code,
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
