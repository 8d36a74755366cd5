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

package cloud

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/jaycherian/animastery-api/internal/core/model"
)

// Keywords searched, lower-cased, in the error text when the provider error
// carries no recognisable structured code. Quota keywords win over key keywords.
var (
	quotaKeywords      = []string{"quota", "limit", "exceeded", "insufficient_quota"}
	invalidKeyKeywords = []string{"invalid_api_key"}
)

// ClassifyFailure maps a remote API error to a FailureKind. Structured
// provider errors are inspected first; otherwise the error text is searched
// for known keywords. A nil error classifies as model.FailureNone.
func ClassifyFailure(err error) model.FailureKind {
	if err == nil {
		return model.FailureNone
	}
	if kind := classifyOpenAI(err); kind != model.FailureNone {
		return kind
	}
	if kind := classifyGemini(err); kind != model.FailureNone {
		return kind
	}
	return classifyText(err.Error())
}

func classifyOpenAI(err error) model.FailureKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := ""
		if apiErr.Code != nil {
			code = fmt.Sprint(apiErr.Code)
		}
		switch {
		case code == "insufficient_quota" || code == "rate_limit_exceeded" || apiErr.Type == "insufficient_quota":
			return model.FailureQuotaExceeded
		case code == "invalid_api_key":
			return model.FailureInvalidKey
		}
		return classifyStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode)
	}
	return model.FailureNone
}

func classifyGemini(err error) model.FailureKind {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var ptr *genai.APIError
		if !errors.As(err, &ptr) || ptr == nil {
			return model.FailureNone
		}
		apiErr = *ptr
	}
	switch apiErr.Status {
	case "RESOURCE_EXHAUSTED":
		return model.FailureQuotaExceeded
	case "UNAUTHENTICATED":
		return model.FailureInvalidKey
	}
	for _, detail := range apiErr.Details {
		if reason, ok := detail["reason"].(string); ok && reason == "API_KEY_INVALID" {
			return model.FailureInvalidKey
		}
	}
	return classifyStatus(apiErr.Code)
}

func classifyStatus(code int) model.FailureKind {
	switch code {
	case http.StatusTooManyRequests:
		return model.FailureQuotaExceeded
	case http.StatusUnauthorized:
		return model.FailureInvalidKey
	}
	return model.FailureNone
}

func classifyText(text string) model.FailureKind {
	lower := strings.ToLower(text)
	for _, keyword := range quotaKeywords {
		if strings.Contains(lower, keyword) {
			return model.FailureQuotaExceeded
		}
	}
	for _, keyword := range invalidKeyKeywords {
		if strings.Contains(lower, keyword) {
			return model.FailureInvalidKey
		}
	}
	return model.FailureOther
}
