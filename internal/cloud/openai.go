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
	"errors"

	"github.com/sashabaranov/go-openai"
)

// OpenAICompleter sends completions to an OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	client *openai.Client
}

// NewOpenAICompleter creates a completer for the given key. An empty baseURL
// selects DefaultOpenAIBaseURL.
func NewOpenAICompleter(apiKey string, baseURL string) *OpenAICompleter {
	conf := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	conf.BaseURL = baseURL
	return &OpenAICompleter{client: openai.NewClientWithConfig(conf)}
}

func (o *OpenAICompleter) Provider() string {
	return ProviderOpenAI
}

func (o *OpenAICompleter) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemInstructions != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstructions,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	}
	if req.Temperature != nil {
		chatReq.Temperature = *req.Temperature
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("remote API returned no choices")
	}
	return &CompletionResult{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     int64(resp.Usage.PromptTokens),
		CompletionTokens: int64(resp.Usage.CompletionTokens),
	}, nil
}
