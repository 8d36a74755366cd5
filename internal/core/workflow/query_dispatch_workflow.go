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

// Package workflow defines the high-level business logic orchestrations,
// combining various commands into coherent pipelines. This file implements the
// workflow that answers a single user query.
//
// The chain runs in stop-on-output mode, so the first command that produces a
// response ends it. Commands are ordered by priority:
//  1. "test-video": the demonstration response for "test video button".
//  2. "animation-styles": the seven-category overview of animation styles.
//  3. "remote-preflight": checks the remote API; answers with an apology when
//     it is unusable.
//  4. "remote-completion": asks the remote model.
package workflow

import (
	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/commands"
	"github.com/jaycherian/animastery-api/internal/core/cor"
	"github.com/jaycherian/animastery-api/internal/core/model"
)

// QueryDispatchWorkflow answers a *model.Query stored under cor.CtxIn with a
// *model.Response stored under cor.CtxOut.
type QueryDispatchWorkflow struct {
	cor.BaseCommand
	completer cloud.ChatCompleter
	remote    cloud.RemoteModel
	chain     cor.Chain // The underlying chain of commands to be executed.
}

// IsExecutable requires a query under the input key.
func (w *QueryDispatchWorkflow) IsExecutable(context cor.Context) bool {
	if !w.BaseCommand.IsExecutable(context) {
		return false
	}
	_, ok := context.Get(w.GetInputParam()).(*model.Query)
	return ok
}

// Execute runs the dispatch chain.
func (w *QueryDispatchWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

func (w *QueryDispatchWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())
	out.StopOnOutput(true)

	out.AddCommand(commands.NewCannedResponse("test-video", model.TestVideoPhrases, model.TestVideoResponse))
	out.AddCommand(commands.NewCannedResponse("animation-styles", model.AnimationStylesPhrases, model.AnimationStylesResponse))
	out.AddCommand(commands.NewRemotePreflight("remote-preflight", w.completer, w.remote.Preflight))
	out.AddCommand(commands.NewRemoteCompletion("remote-completion", w.completer, w.remote))

	w.chain = out
}

// NewQueryDispatchWorkflow is the constructor for the QueryDispatchWorkflow.
//
// Inputs:
//   - serviceClients: The shared clients; only the completer and the remote
//     settings it was built with are used.
//
// Returns:
//   - A pointer to a fully initialized QueryDispatchWorkflow.
func NewQueryDispatchWorkflow(serviceClients *cloud.ServiceClients) *QueryDispatchWorkflow {
	out := &QueryDispatchWorkflow{
		BaseCommand: *cor.NewBaseCommand("query-dispatch-workflow"),
		completer:   serviceClients.Completer,
		remote:      serviceClients.Remote,
	}
	out.initializeChain()
	return out
}
