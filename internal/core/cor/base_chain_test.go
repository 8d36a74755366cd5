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

package cor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/animastery-api/internal/core/cor"
)

// recordingCommand appends its name to a shared trace and optionally writes an
// output or records an error.
type recordingCommand struct {
	cor.BaseCommand
	trace  *[]string
	output interface{}
	err    error
	skip   bool
}

func newRecordingCommand(name string, trace *[]string) *recordingCommand {
	return &recordingCommand{BaseCommand: *cor.NewBaseCommand(name), trace: trace}
}

func (r *recordingCommand) IsExecutable(context cor.Context) bool {
	return !r.skip && r.BaseCommand.IsExecutable(context)
}

func (r *recordingCommand) Execute(context cor.Context) {
	*r.trace = append(*r.trace, r.GetName())
	if r.err != nil {
		context.AddError(r.GetName(), r.err)
	}
	if r.output != nil {
		context.Add(r.GetOutputParam(), r.output)
	}
}

func TestChainStopsOnFirstOutput(t *testing.T) {
	var trace []string
	skipped := newRecordingCommand("skipped", &trace)
	skipped.skip = true
	silent := newRecordingCommand("silent", &trace)
	answer := newRecordingCommand("answer", &trace)
	answer.output = "first"
	never := newRecordingCommand("never", &trace)
	never.output = "second"

	chain := cor.NewBaseChain("dispatch").StopOnOutput(true).
		AddCommand(skipped).
		AddCommand(silent).
		AddCommand(answer).
		AddCommand(never)

	chCtx := cor.NewBaseContextWith(context.Background())
	chCtx.Add(cor.CtxIn, "query")
	chain.Execute(chCtx)

	assert.Equal(t, []string{"silent", "answer"}, trace)
	assert.Equal(t, "first", chCtx.Get(cor.CtxOut))
	assert.Equal(t, "query", chCtx.Get(cor.CtxIn))
	assert.False(t, chCtx.HasErrors())
}

func TestChainPipesOutputToNextInput(t *testing.T) {
	var trace []string
	first := newRecordingCommand("first", &trace)
	first.output = "piped"
	second := newRecordingCommand("second", &trace)

	chain := cor.NewBaseChain("pipe").AddCommand(first).AddCommand(second)

	chCtx := cor.NewBaseContextWith(context.Background())
	chCtx.Add(cor.CtxIn, "seed")
	chain.Execute(chCtx)

	assert.Equal(t, []string{"first", "second"}, trace)
	assert.Equal(t, "piped", chCtx.Get(cor.CtxIn))
	assert.Nil(t, chCtx.Get(cor.CtxOut))
}

func TestChainPassesInputThroughSilentCommands(t *testing.T) {
	var trace []string
	silent := newRecordingCommand("silent", &trace)
	upper := newRecordingCommand("upper", &trace)
	upper.output = "SEED"
	last := newRecordingCommand("last", &trace)

	chCtx := cor.NewBaseContextWith(context.Background())
	chCtx.Add(cor.CtxIn, "seed")
	cor.NewBaseChain("pipe").AddCommand(silent).AddCommand(upper).AddCommand(last).Execute(chCtx)

	// every command saw an input, so none was skipped
	assert.Equal(t, []string{"silent", "upper", "last"}, trace)
	assert.Equal(t, "SEED", chCtx.Get(cor.CtxIn))
}

func TestChainHaltsAfterErrorUnlessToldOtherwise(t *testing.T) {
	var trace []string
	failing := newRecordingCommand("failing", &trace)
	failing.err = errors.New("boom")
	after := newRecordingCommand("after", &trace)

	chCtx := cor.NewBaseContextWith(context.Background())
	chCtx.Add(cor.CtxIn, "seed")
	cor.NewBaseChain("halting").StopOnOutput(true).AddCommand(failing).AddCommand(after).Execute(chCtx)

	assert.Equal(t, []string{"failing"}, trace)
	require.True(t, chCtx.HasErrors())
	assert.EqualError(t, chCtx.GetErrors()["failing"], "boom")

	trace = nil
	chCtx = cor.NewBaseContextWith(context.Background())
	chCtx.Add(cor.CtxIn, "seed")
	cor.NewBaseChain("tolerant").StopOnOutput(true).ContinueOnFailure(true).AddCommand(failing).AddCommand(after).Execute(chCtx)

	assert.Equal(t, []string{"failing", "after"}, trace)
}

func TestChainRestoresGoContext(t *testing.T) {
	type key struct{}
	parent := context.WithValue(context.Background(), key{}, "parent")

	chCtx := cor.NewBaseContextWith(parent)
	chCtx.Add(cor.CtxIn, "seed")
	var trace []string
	cor.NewBaseChain("restore").AddCommand(newRecordingCommand("only", &trace)).Execute(chCtx)

	assert.Equal(t, parent, chCtx.GetContext())
}

func TestBaseCommandNeedsInputAndContext(t *testing.T) {
	cmd := cor.NewBaseCommand("plain")

	chCtx := cor.NewBaseContext()
	chCtx.Add(cor.CtxIn, "value")
	assert.False(t, cmd.IsExecutable(chCtx))

	chCtx.SetContext(context.Background())
	assert.True(t, cmd.IsExecutable(chCtx))

	chCtx.Remove(cor.CtxIn)
	assert.False(t, cmd.IsExecutable(chCtx))
	assert.Equal(t, cor.CtxOut, cmd.GetOutputParam())
}
