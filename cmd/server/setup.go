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

package main

import (
	"context"
	"fmt"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/services"
)

// StateManager holds the components shared by every request. It is filled
// once by InitState and only read afterwards.
type StateManager struct {
	config       *cloud.Config
	cloud        *cloud.ServiceClients
	queryService *services.QueryService
}

var state = &StateManager{}

// GetConfig loads the defaults, the TOML files and the environment overrides.
func GetConfig() (*cloud.Config, error) {
	if state.config == nil {
		config := cloud.NewConfig()
		if err := cloud.LoadConfig(config); err != nil {
			return nil, err
		}
		if err := cloud.ApplyEnvironment(config); err != nil {
			return nil, err
		}
		state.config = config
	}
	return state.config, nil
}

// InitState builds the remote clients and the query service. It fails when
// the API key is missing or the remote API does not pass the preflight check,
// so the server never listens with an unusable provider.
func InitState(ctx context.Context, config *cloud.Config) error {
	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		return err
	}
	if err := services.CheckStartup(ctx, cloudClients); err != nil {
		return fmt.Errorf("remote API preflight: %w", err)
	}

	state.cloud = cloudClients
	state.queryService = services.NewQueryService(cloudClients)
	return nil
}
