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

package services

import (
	"context"
	"fmt"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/model"
)

// StartupError reports that the remote API could not be used at process start.
type StartupError struct {
	Kind model.FailureKind
	Err  error
}

func (e *StartupError) Error() string {
	var msg string
	switch e.Kind {
	case model.FailureQuotaExceeded:
		msg = "remote API quota exceeded. Please check your account or try again later."
	case model.FailureInvalidKey:
		msg = "invalid remote API key. Please check your configuration."
	default:
		msg = "error connecting to the remote API. Please try again later."
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return msg
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// CheckStartup runs the preflight check once. It returns nil when the remote
// API is usable and a *StartupError otherwise.
//
// Inputs:
//   - ctx: Bounds the preflight call.
//   - serviceClients: Supplies the completer and the preflight request.
//
// Outputs:
//   - error: nil, or a *StartupError carrying the failure kind.
func CheckStartup(ctx context.Context, serviceClients *cloud.ServiceClients) error {
	status := cloud.CheckAPIStatus(ctx, serviceClients.Completer, serviceClients.Remote.Preflight)
	if status.Reachable {
		return nil
	}
	return &StartupError{Kind: status.Kind, Err: status.Err}
}
