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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files and the process environment. It provides a structured
// way to manage settings for the HTTP server, logging, telemetry, the remote
// model API and the YouTube Data API.
//
// Structs:
//   - Logging: Log level and optional log file.
//   - Telemetry: OpenTelemetry export settings.
//   - RemoteModel: The remote chat-completion provider, its credentials, the
//     completion defaults and the preflight check.
//   - YouTube: Credentials for the catalog checker.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that returns a Config holding every default.
package cloud

import "github.com/jaycherian/animastery-api/internal/core/model"

// Supported remote model providers.
const (
	ProviderOpenAI = "openai" // Any OpenAI-compatible chat completions endpoint.
	ProviderGemini = "gemini" // The Gemini API through google.golang.org/genai.
)

const (
	DefaultOpenAIBaseURL      = "https://api.openai.com/v1"
	DefaultSystemInstructions = "You are an expert in animation styles and techniques. Please provide detailed and informative answers about animation, including specific examples and characteristics where relevant."
)

// Logging configures the structured logger.
type Logging struct {
	Level string `toml:"level"` // One of debug, info, warn, error.
	File  string `toml:"file"`  // Optional file receiving a copy of every log line.
	// OtelBridge also hands every record to the OpenTelemetry logs API.
	OtelBridge bool `toml:"otel_bridge"`
}

// Telemetry configures OpenTelemetry export to Google Cloud.
type Telemetry struct {
	Enabled         bool   `toml:"enabled"`           // When false the global no-op providers are kept.
	GoogleProjectId string `toml:"google_project_id"` // The project receiving traces and metrics.
	// LogsEndpoint is the OTLP/gRPC collector receiving bridged log records.
	LogsEndpoint string `toml:"logs_endpoint"`
	LogsInsecure bool   `toml:"logs_insecure"` // Plaintext gRPC to the collector, for a local sidecar.
}

// PreflightRequest describes the minimal request used to check that the remote
// API is reachable, the key is valid and the quota is not exhausted.
type PreflightRequest struct {
	Model     string `toml:"model"`      // The model used for the preflight.
	Prompt    string `toml:"prompt"`     // The single user message of the preflight.
	MaxTokens int    `toml:"max_tokens"` // Tokens requested by the preflight; kept minimal.
}

// RemoteModel represents the configuration of the remote chat-completion API.
type RemoteModel struct {
	Provider           string           `toml:"provider"`            // ProviderOpenAI or ProviderGemini.
	ApiKey             string           `toml:"api_key"`             // Usually supplied through the environment.
	BaseURL            string           `toml:"base_url"`            // Endpoint override; empty means the provider default.
	DefaultModel       string           `toml:"default_model"`       // Used when a query names no model.
	SystemInstructions string           `toml:"system_instructions"` // The system turn of every completion.
	Temperature        float32          `toml:"temperature"`         // Sampling temperature of completions.
	Preflight          PreflightRequest `toml:"preflight"`           // The reachability check.
}

// YouTube represents the configuration of the YouTube Data API client.
type YouTube struct {
	ApiKey  string `toml:"api_key"`  // Usually supplied through YOUTUBE_API_KEY.
	BaseURL string `toml:"base_url"` // Endpoint override, empty for the public API.
}

// Config represents the overall configuration for the application.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name               string   `toml:"name"`                 // The service name, also the telemetry service name.
		Port               int      `toml:"port"`                 // The port the HTTP server listens on.
		CorsAllowedOrigins []string `toml:"cors_allowed_origins"` // Origins allowed by CORS, "*" for any.
		LivenessMessage    string   `toml:"liveness_message"`     // The payload of GET /.
	} `toml:"application"`
	Logging   Logging     `toml:"logging"`
	Telemetry Telemetry   `toml:"telemetry"`
	Remote    RemoteModel `toml:"remote"`
	YouTube   YouTube     `toml:"youtube"`
}

// NewConfig returns a Config populated with the defaults of every setting.
// The TOML files and the environment only need to name what differs.
func NewConfig() *Config {
	out := &Config{
		Logging:   Logging{Level: "info"},
		Telemetry: Telemetry{LogsEndpoint: "localhost:4317", LogsInsecure: true},
		Remote: RemoteModel{
			Provider:           ProviderOpenAI,
			DefaultModel:       model.DefaultModel,
			SystemInstructions: DefaultSystemInstructions,
			Temperature:        0.7,
			Preflight: PreflightRequest{
				Model:     model.DefaultModel,
				Prompt:    "test",
				MaxTokens: 1,
			},
		},
	}
	out.Application.Name = "animastery-api"
	out.Application.Port = 8000
	out.Application.CorsAllowedOrigins = []string{"*"}
	out.Application.LivenessMessage = "Animastery AI API is running"
	return out
}
