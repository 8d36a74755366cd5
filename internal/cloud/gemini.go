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
	"context"

	"google.golang.org/genai"
)

// GeminiCompleter sends completions to the Gemini API.
type GeminiCompleter struct {
	models *genai.Models
}

// NewGeminiCompleter creates a Gemini API client. An empty baseURL keeps the
// library default endpoint.
func NewGeminiCompleter(ctx context.Context, apiKey string, baseURL string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiCompleter{models: client.Models}, nil
}

func (g *GeminiCompleter) Provider() string {
	return ProviderGemini
}

func (g *GeminiCompleter) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	conf := &genai.GenerateContentConfig{
		Temperature: req.Temperature,
	}
	if req.SystemInstructions != "" {
		conf.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstructions}}}
	}
	if req.MaxTokens > 0 {
		conf.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := g.models.GenerateContent(ctx, req.Model,
		[]*genai.Content{genai.NewContentFromText(req.Prompt, genai.RoleUser)}, conf)
	if err != nil {
		return nil, err
	}

	out := &CompletionResult{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		out.PromptTokens = int64(resp.UsageMetadata.PromptTokenCount)
		out.CompletionTokens = int64(resp.UsageMetadata.CandidatesTokenCount)
	}
	return out, nil
}
