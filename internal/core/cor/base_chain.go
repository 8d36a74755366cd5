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
// dispatcher is made of. This file defines `BaseChain`, the default `Chain`.
//
// A chain runs its commands in order, each inside its own OpenTelemetry span
// nested under a span for the whole chain. It supports two modes:
//
//   - Piping (default): the CtxOut of one command becomes the CtxIn of the next.
//     A command that writes no CtxOut passes its CtxIn through unchanged.
//   - Stop on output: CtxIn is left untouched and the chain ends at the first
//     command that populated CtxOut. This is how "first match wins" dispatch is
//     expressed: every candidate checks the same input and the first one that
//     answers ends the chain.
//
// Unless ContinueOnFailure is set, a recorded error stops the chain before the
// next command runs.
package cor

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// BaseChain is the default implementation of the Chain interface.
type BaseChain struct {
	BaseCommand
	continueOnFailure bool      // Keep executing after a command records an error.
	stopOnOutput      bool      // End the chain at the first command that sets CtxOut.
	commands          []Command // The ordered list of commands.
}

// NewBaseChain creates an empty chain in piping mode.
func NewBaseChain(name string) *BaseChain {
	return &BaseChain{BaseCommand: *NewBaseCommand(name)}
}

func (c *BaseChain) ContinueOnFailure(continueOnFailure bool) Chain {
	c.continueOnFailure = continueOnFailure
	return c
}

func (c *BaseChain) StopOnOutput(stopOnOutput bool) Chain {
	c.stopOnOutput = stopOnOutput
	return c
}

func (c *BaseChain) AddCommand(command Command) Chain {
	c.commands = append(c.commands, command)
	return c
}

// IsExecutable only requires a Go context; the individual commands decide
// whether they apply.
func (c *BaseChain) IsExecutable(context Context) bool {
	return context != nil && context.GetContext() != nil
}

// Execute runs the commands in order. The Go context of chCtx is swapped for
// each command's span context and restored afterwards.
//
// Inputs:
//   - chCtx: The chain context. CtxIn holds the value handed to the first
//     command and, in piping mode, the previous command's output after that.
//
// Outputs:
//   - None. Results are written to chCtx: CtxOut in stop-on-output mode, CtxIn
//     in piping mode, and per-command errors through AddError.
func (c *BaseChain) Execute(chCtx Context) {
	parentCtx := chCtx.GetContext()
	outerCtx, chainSpan := c.Tracer.Start(parentCtx, fmt.Sprintf("%s_execute", c.GetName()))
	defer func() {
		chCtx.SetContext(parentCtx)
		chainSpan.End()
	}()

	answeredBy := ""
	for _, command := range c.commands {
		if chCtx.HasErrors() && !c.continueOnFailure {
			break
		}

		commandContext, commandSpan := c.Tracer.Start(outerCtx, command.GetName())

		if !command.IsExecutable(chCtx) {
			commandSpan.SetAttributes(attribute.Bool("skipped", true))
			commandSpan.End()
			continue
		}

		chCtx.SetContext(commandContext)
		command.Execute(chCtx)
		chCtx.SetContext(outerCtx)

		if err, failed := chCtx.GetErrors()[command.GetName()]; failed {
			commandSpan.RecordError(err)
			commandSpan.SetStatus(codes.Error, "error during command execution")
		} else {
			commandSpan.SetStatus(codes.Ok, "command completed successfully")
		}
		commandSpan.End()

		outputValue := chCtx.Get(CtxOut)
		if c.stopOnOutput {
			if outputValue != nil {
				answeredBy = command.GetName()
				break
			}
			continue
		}

		// A command without output leaves CtxIn as it found it.
		if outputValue != nil {
			chCtx.Add(CtxIn, outputValue)
			chCtx.Remove(CtxOut)
		}
	}

	if answeredBy != "" {
		chainSpan.SetAttributes(attribute.String("answered_by", answeredBy))
	}
	if !chCtx.HasErrors() {
		chainSpan.SetStatus(codes.Ok, "chain completed successfully")
	} else {
		chainSpan.SetStatus(codes.Error, "chain recorded errors")
	}
}
