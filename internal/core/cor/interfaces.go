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

// Package cor (Chain of Responsibility) provides the building blocks the query
// dispatcher is made of. This file defines the interfaces shared by commands,
// chains and the per-request context.
package cor

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CtxIn and CtxOut are the keys used to move the primary data through a chain.
const (
	// CtxIn is the default key for the primary input of a command.
	CtxIn = "__IN__"
	// CtxOut is the default key where a command places its primary output.
	// A chain that stops on output ends as soon as this key is populated.
	CtxOut = "__OUT__"
)

// Context is the property bag carried through one chain execution. It holds
// the Go context of the request, the data commands share and the errors they
// recorded.
type Context interface {
	// SetContext replaces the Go context, used to nest command spans.
	SetContext(context context.Context)

	// GetContext returns the Go context of the current command.
	GetContext() context.Context

	// Add stores a value and returns the Context for chaining.
	Add(key string, value interface{}) Context

	// AddError records an error under the name of the command that raised it.
	AddError(key string, err error)

	// GetErrors returns every recorded error keyed by command name.
	GetErrors() map[string]error

	// Get returns the value stored under key, or nil.
	Get(key string) interface{}

	// Remove deletes the value stored under key.
	Remove(key string)

	// HasErrors reports whether any command recorded an error.
	HasErrors() bool
}

// Executable is anything that can run against a Context.
type Executable interface {
	Execute(context Context)
}

// Command is a single step of a chain. Besides running, a command names
// itself, declares the keys it reads and writes, decides whether it applies to
// the current context and carries its own telemetry instruments.
type Command interface {
	Executable
	GetName() string
	GetInputParam() string
	GetOutputParam() string
	IsExecutable(context Context) bool
	GetTracer() trace.Tracer
	GetMeter() metric.Meter
	GetSuccessCounter() metric.Int64Counter
	GetErrorCounter() metric.Int64Counter
}

// Chain is an ordered list of commands. A Chain is itself a Command so chains
// can be nested.
type Chain interface {
	Command
	// ContinueOnFailure keeps executing after a command recorded an error.
	ContinueOnFailure(bool) Chain
	// StopOnOutput ends the chain at the first command that produced CtxOut.
	StopOnOutput(bool) Chain
	// AddCommand appends a command to the chain.
	AddCommand(command Command) Chain
}
