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

// Package services_test contains the test suite for the services package.
package services_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/model"
	"github.com/jaycherian/animastery-api/internal/core/services"
	test "github.com/jaycherian/animastery-api/internal/testutil"
)

func TestDispatchTestVideo(t *testing.T) {
	fake := test.NewFakeCompleter("unused")
	svc := services.NewQueryService(test.GetClients(fake))

	out := svc.Dispatch(context.Background(), "Show me the Test Video Button", "")
	require.Len(t, out.Videos, 2)
	for _, video := range out.Videos {
		assert.Equal(t, "Test Channel", video.Channel)
	}
	assert.Zero(t, fake.CallCount())
}

func TestDispatchAnimationStyles(t *testing.T) {
	svc := services.NewQueryService(test.GetClients(test.NewFakeCompleter("unused")))

	for _, text := range []string{"types of animation", "list ANIMATION STYLES", "what kinds of animation are there"} {
		out := svc.Dispatch(context.Background(), text, "gpt-4")
		assert.Contains(t, out.Text, "Traditional Animation", text)
		assert.Len(t, out.Videos, 3, text)
	}
}

func TestDispatchCannedIsIdempotent(t *testing.T) {
	svc := services.NewQueryService(test.GetClients(test.NewFakeCompleter("unused")))

	first := svc.Dispatch(context.Background(), "animation styles", "")
	second := svc.Dispatch(context.Background(), "animation styles", "")
	assert.Equal(t, first, second)

	first.Videos[0].Title = "changed"
	third := svc.Dispatch(context.Background(), "animation styles", "")
	assert.NotEqual(t, "changed", third.Videos[0].Title)
}

func TestDispatchQuotaPreflightSkipsCompletion(t *testing.T) {
	fake := test.NewFakeCompleter("unused", &openai.APIError{
		Code: "insufficient_quota", Message: "You exceeded your current quota", HTTPStatusCode: http.StatusTooManyRequests,
	})
	svc := services.NewQueryService(test.GetClients(fake))

	out := svc.Dispatch(context.Background(), "How do I animate a walk cycle?", "")
	assert.Equal(t, model.QuotaApology, out.Text)
	assert.Nil(t, out.Videos)
	assert.Equal(t, 1, fake.CallCount())
}

func TestDispatchInvalidKeyPreflight(t *testing.T) {
	fake := test.NewFakeCompleter("unused", errors.New("Error code: 401 - invalid_api_key"))
	svc := services.NewQueryService(test.GetClients(fake))

	out := svc.Dispatch(context.Background(), "How do I animate a walk cycle?", "")
	assert.Equal(t, model.InvalidKeyApology, out.Text)
}

func TestDispatchRemoteSuccess(t *testing.T) {
	fake := test.NewFakeCompleter("  Start with the contact pose.\n")
	svc := services.NewQueryService(test.GetClients(fake))

	out := svc.Dispatch(context.Background(), "How do I animate a walk cycle?", "")
	assert.Equal(t, "Start with the contact pose.", out.Text)
	assert.Nil(t, out.Videos)

	requests := fake.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, model.DefaultModel, requests[1].Model)
	assert.Equal(t, "How do I animate a walk cycle?", requests[1].Prompt)
}

func TestDispatchUsesRequestedModel(t *testing.T) {
	fake := test.NewFakeCompleter("ok")
	svc := services.NewQueryService(test.GetClients(fake))

	svc.Dispatch(context.Background(), "hello", "gpt-4o")
	requests := fake.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "gpt-4o", requests[1].Model)
}

func TestDispatchEmptyQueryGoesRemote(t *testing.T) {
	fake := test.NewFakeCompleter("Please ask something about animation.")
	svc := services.NewQueryService(test.GetClients(fake))

	out := svc.Dispatch(context.Background(), "", "")
	assert.Equal(t, "Please ask something about animation.", out.Text)
	assert.Equal(t, 2, fake.CallCount())
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	fake := test.NewFakeCompleter("unused")
	fake.PanicWith = "boom"
	svc := services.NewQueryService(test.GetClients(fake))

	var out *model.Response
	assert.NotPanics(t, func() {
		out = svc.Dispatch(context.Background(), "what is cel shading?", "")
	})
	require.NotNil(t, out)
	assert.Equal(t, model.ProcessingApology, out.Text)
}

func TestDispatchIsSafeForConcurrentUse(t *testing.T) {
	fake := test.NewFakeCompleter("answer")
	svc := services.NewQueryService(test.GetClients(fake))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := "what is cel shading?"
			if i%2 == 0 {
				text = "animation styles"
			}
			out := svc.Dispatch(context.Background(), text, "")
			assert.NotEmpty(t, out.Text)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 16, fake.CallCount())
}

func TestCheckStartup(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, services.CheckStartup(ctx, test.GetClients(test.NewFakeCompleter("ok"))))

	cases := []struct {
		name string
		err  error
		kind model.FailureKind
		msg  string
	}{
		{"quota", errors.New("insufficient_quota"), model.FailureQuotaExceeded, "quota exceeded"},
		{"key", &openai.APIError{Code: "invalid_api_key"}, model.FailureInvalidKey, "invalid remote API key"},
		{"other", errors.New("no route to host"), model.FailureOther, "error connecting to the remote API"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.CheckStartup(ctx, test.GetClients(test.NewFakeCompleter("", tc.err)))
			var startupErr *services.StartupError
			require.ErrorAs(t, err, &startupErr)
			assert.Equal(t, tc.kind, startupErr.Kind)
			assert.Contains(t, err.Error(), tc.msg)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestStartupRequiresAPIKey(t *testing.T) {
	config := test.GetConfig()
	config.Remote.ApiKey = ""
	_, err := cloud.NewCloudServiceClients(context.Background(), config)
	assert.ErrorIs(t, err, cloud.ErrMissingAPIKey)
}
