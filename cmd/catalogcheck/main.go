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

// Command catalogcheck verifies that every video referenced by the static
// catalog still resolves on YouTube. It exits non-zero when any id is missing.
//
// Usage:
//
//	YOUTUBE_API_KEY=... go run ./cmd/catalogcheck
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/model"
	"github.com/jaycherian/animastery-api/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	config := cloud.NewConfig()
	if err := cloud.LoadConfig(config); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 2
	}
	if err := cloud.ApplyEnvironment(config); err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment: %v\n", err)
		return 2
	}
	closeLog, err := telemetry.SetupLogging(config.Logging, "catalogcheck")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup logging: %v\n", err)
		return 2
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, err := cloud.NewYouTubeService(ctx, config.YouTube)
	if err != nil {
		slog.Error("failed to create youtube client", "error", err)
		return 2
	}

	ids := model.CatalogVideoIDs()
	missing, err := cloud.FindMissingVideos(ctx, svc, ids)
	if err != nil {
		slog.Error("catalog lookup failed", "error", err)
		return 2
	}
	for _, id := range missing {
		slog.Warn("catalog video not found", "video_id", id)
	}
	slog.Info("catalog check complete", "checked", len(ids), "missing", len(missing))
	if len(missing) > 0 {
		return 1
	}
	return 0
}
