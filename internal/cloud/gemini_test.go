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

package cloud_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/model"
	test "github.com/jaycherian/animastery-api/internal/testutil"
)

const geminiModel = "gemini-2.0-flash"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction"`
	GenerationConfig  struct {
		Temperature     *float64 `json:"temperature"`
		MaxOutputTokens *int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiCall struct {
	Method string
	Path   string
	APIKey string
	Body   geminiRequest
}

// newGeminiStub serves status and body for every request and records what
// the client sent.
func newGeminiStub(t *testing.T, status int, body string, into *geminiCall) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		into.Method = r.Method
		into.Path = r.URL.Path
		into.APIKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&into.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiCompleterSendsRequest(t *testing.T) {
	var got geminiCall
	srv := newGeminiStub(t, http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "Anticipation sets up the action."}]}, "finishReason": "STOP"}],
		"usageMetadata": {"promptTokenCount": 21, "candidatesTokenCount": 8, "totalTokenCount": 29}
	}`, &got)

	ctx := context.Background()
	completer, err := cloud.NewGeminiCompleter(ctx, test.TestAPIKey, srv.URL)
	test.HandleErr(err, t)
	assert.Equal(t, cloud.ProviderGemini, completer.Provider())

	temperature := float32(0.7)
	out, err := completer.Complete(ctx, &cloud.CompletionRequest{
		Model:              geminiModel,
		SystemInstructions: "You are an animation expert.",
		Prompt:             "What is anticipation?",
		Temperature:        &temperature,
	})
	test.HandleErr(err, t)

	assert.Equal(t, "Anticipation sets up the action.", out.Text)
	assert.Equal(t, int64(21), out.PromptTokens)
	assert.Equal(t, int64(8), out.CompletionTokens)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/v1beta/models/"+geminiModel+":generateContent", got.Path)
	assert.Equal(t, test.TestAPIKey, got.APIKey)

	require.NotNil(t, got.Body.GenerationConfig.Temperature)
	assert.InDelta(t, 0.7, *got.Body.GenerationConfig.Temperature, 0.0001)
	assert.Nil(t, got.Body.GenerationConfig.MaxOutputTokens)

	require.NotNil(t, got.Body.SystemInstruction)
	require.Len(t, got.Body.SystemInstruction.Parts, 1)
	assert.Equal(t, "You are an animation expert.", got.Body.SystemInstruction.Parts[0].Text)

	require.Len(t, got.Body.Contents, 1)
	assert.Equal(t, "user", got.Body.Contents[0].Role)
	require.Len(t, got.Body.Contents[0].Parts, 1)
	assert.Equal(t, "What is anticipation?", got.Body.Contents[0].Parts[0].Text)
}

func TestGeminiPreflightSendsMinimalRequest(t *testing.T) {
	var got geminiCall
	srv := newGeminiStub(t, http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "ok"}]}}]
	}`, &got)

	completer, err := cloud.NewGeminiCompleter(context.Background(), test.TestAPIKey, srv.URL)
	test.HandleErr(err, t)

	preflight := cloud.PreflightRequest{Model: geminiModel, Prompt: "test", MaxTokens: 1}
	status := cloud.CheckAPIStatus(context.Background(), completer, preflight)

	assert.True(t, status.Reachable)
	assert.Equal(t, model.FailureNone, status.Kind)
	assert.Equal(t, "/v1beta/models/"+geminiModel+":generateContent", got.Path)
	assert.Nil(t, got.Body.SystemInstruction)
	assert.Nil(t, got.Body.GenerationConfig.Temperature)
	require.NotNil(t, got.Body.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 1, *got.Body.GenerationConfig.MaxOutputTokens)
}

func TestGeminiPreflightClassifiesProviderErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   model.FailureKind
	}{
		{"quota", http.StatusTooManyRequests, `{"error": {"code": 429, "message": "Resource has been exhausted (e.g. check quota).", "status": "RESOURCE_EXHAUSTED"}}`, model.FailureQuotaExceeded},
		{"invalid key", http.StatusBadRequest, `{"error": {"code": 400, "message": "API key not valid. Please pass a valid API key.", "status": "INVALID_ARGUMENT", "details": [{"@type": "type.googleapis.com/google.rpc.ErrorInfo", "reason": "API_KEY_INVALID"}]}}`, model.FailureInvalidKey},
		{"server error", http.StatusInternalServerError, `{"error": {"code": 500, "message": "An internal error has occurred.", "status": "INTERNAL"}}`, model.FailureOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got geminiCall
			srv := newGeminiStub(t, tc.status, tc.body, &got)
			completer, err := cloud.NewGeminiCompleter(context.Background(), test.TestAPIKey, srv.URL)
			test.HandleErr(err, t)

			status := cloud.CheckAPIStatus(context.Background(), completer, cloud.PreflightRequest{Model: geminiModel, Prompt: "test", MaxTokens: 1})
			assert.False(t, status.Reachable)
			assert.Equal(t, tc.want, status.Kind)
			assert.Error(t, status.Err)
		})
	}
}
