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
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/model"
)

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want model.FailureKind
	}{
		{"nil", nil, model.FailureNone},
		{"openai insufficient quota code", &openai.APIError{Code: "insufficient_quota", Message: "You exceeded your current quota", HTTPStatusCode: http.StatusTooManyRequests}, model.FailureQuotaExceeded},
		{"openai rate limit code", &openai.APIError{Code: "rate_limit_exceeded", Message: "slow down"}, model.FailureQuotaExceeded},
		{"openai invalid key code", &openai.APIError{Code: "invalid_api_key", Message: "Incorrect API key provided", HTTPStatusCode: http.StatusUnauthorized}, model.FailureInvalidKey},
		{"openai bare 401", &openai.APIError{Message: "Incorrect API key provided", HTTPStatusCode: http.StatusUnauthorized}, model.FailureInvalidKey},
		{"openai bare 429", &openai.APIError{Message: "Too many requests", HTTPStatusCode: http.StatusTooManyRequests}, model.FailureQuotaExceeded},
		{"openai server error", &openai.APIError{Message: "The server had an error", HTTPStatusCode: http.StatusInternalServerError}, model.FailureOther},
		{"openai wrapped", fmt.Errorf("preflight: %w", &openai.APIError{Code: "invalid_api_key"}), model.FailureInvalidKey},
		{"openai request error 401", &openai.RequestError{HTTPStatusCode: http.StatusUnauthorized, Err: errors.New("bad gateway body")}, model.FailureInvalidKey},
		{"gemini resource exhausted", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "Resource has been exhausted"}, model.FailureQuotaExceeded},
		{"gemini invalid key detail", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "API key not valid. Please pass a valid API key.", Details: []map[string]any{{"reason": "API_KEY_INVALID"}}}, model.FailureInvalidKey},
		{"gemini unauthenticated", genai.APIError{Code: 401, Status: "UNAUTHENTICATED"}, model.FailureInvalidKey},
		{"gemini pointer", &genai.APIError{Code: 429}, model.FailureQuotaExceeded},
		{"text quota", errors.New("You exceeded your current QUOTA"), model.FailureQuotaExceeded},
		{"text limit", errors.New("rate limit reached"), model.FailureQuotaExceeded},
		{"text invalid key", errors.New("error code: invalid_api_key"), model.FailureInvalidKey},
		{"text quota wins over key", errors.New("invalid_api_key and quota exceeded"), model.FailureQuotaExceeded},
		{"text other", errors.New("connection refused"), model.FailureOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cloud.ClassifyFailure(tc.err))
		})
	}
}
