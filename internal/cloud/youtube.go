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

package cloud

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/jaycherian/animastery-api/internal/core/model"
)

// maxIdsPerLookup is the YouTube Data API limit on ids per videos.list call.
const maxIdsPerLookup = 50

// ErrMissingYouTubeKey is returned when the catalog checker has no API key.
var ErrMissingYouTubeKey = errors.New("youtube API key is not set")

// NewYouTubeService creates a YouTube Data API client authenticated with an API key.
func NewYouTubeService(ctx context.Context, config YouTube) (*youtube.Service, error) {
	if config.ApiKey == "" {
		return nil, ErrMissingYouTubeKey
	}
	opts := []option.ClientOption{option.WithAPIKey(config.ApiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(config.BaseURL))
	}
	return youtube.NewService(ctx, opts...)
}

// FindMissingVideos looks every id up on YouTube and returns those that no
// longer resolve, in input order.
func FindMissingVideos(ctx context.Context, svc *youtube.Service, ids []model.YoutubeVideoID) ([]model.YoutubeVideoID, error) {
	found := make(map[string]bool, len(ids))
	for start := 0; start < len(ids); start += maxIdsPerLookup {
		end := min(start+maxIdsPerLookup, len(ids))
		batch := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			batch = append(batch, string(id))
		}
		resp, err := svc.Videos.List([]string{"id"}).Id(batch...).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list videos: %w", err)
		}
		for _, item := range resp.Items {
			found[item.Id] = true
		}
	}

	missing := make([]model.YoutubeVideoID, 0)
	for _, id := range ids {
		if !found[string(id)] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
