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
// This file is responsible for initializing and holding the client objects
// needed to communicate with the remote model provider. It acts as a dependency
// injection container, creating a single, shared `ServiceClients` struct that
// is built once at startup and passed throughout the application.
//
// Logic Flow:
//  1. The `NewCloudServiceClients` function is called at application startup.
//  2. It takes the application's configuration (`Config`) and a `context.Context`.
//  3. It checks that an API key is present for the configured provider.
//  4. It creates the `ChatCompleter` for that provider.
//  5. The resulting struct is never mutated afterwards, so it can be shared by
//     concurrent requests without locking.
//
// Structs:
//   - ServiceClients: A container struct holding the initialized remote clients.
//
// Functions:
//   - NewCloudServiceClients: A factory function that creates and configures the
//     clients based on the application's configuration.
package cloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrMissingAPIKey is returned when the configured provider has no API key.
var ErrMissingAPIKey = errors.New("remote API key is not set")

// ServiceClients is a struct that acts as a central container for the clients
// that interact with external services.
type ServiceClients struct {
	Completer ChatCompleter // The chat-completion client of the configured provider.
	Remote    RemoteModel   // The remote settings the completer was built from.
}

// NewCloudServiceClients is a factory function that initializes the remote
// clients based on the provided configuration.
//
// Inputs:
//   - ctx: The root context.Context for the application.
//   - config: A pointer to the loaded application configuration (`Config`).
//
// Outputs:
//   - *ServiceClients: A pointer to the fully initialized ServiceClients struct.
//   - error: ErrMissingAPIKey when no key is configured, or a client construction error.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	remote := config.Remote
	if remote.ApiKey == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingAPIKey, remote.Provider)
	}

	var completer ChatCompleter
	switch remote.Provider {
	case ProviderOpenAI, "":
		completer = NewOpenAICompleter(remote.ApiKey, remote.BaseURL)
	case ProviderGemini:
		gc, err := NewGeminiCompleter(ctx, remote.ApiKey, remote.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("error creating gemini client: %w", err)
		}
		completer = gc
	default:
		return nil, fmt.Errorf("unsupported remote provider %q", remote.Provider)
	}
	slog.Info("remote model client created", "provider", completer.Provider(), "default_model", remote.DefaultModel)

	return &ServiceClients{Completer: completer, Remote: remote}, nil
}
