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

package cloud_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zeebo/assert"

	"github.com/jaycherian/animastery-api/internal/cloud"
	"github.com/jaycherian/animastery-api/internal/core/model"
)

func TestFindMissingVideos(t *testing.T) {
	known := map[string]bool{"uDqjIdI4bF4": true, "4OxphYV8W3E": true}
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		items := make([]map[string]any, 0)
		for _, param := range r.URL.Query()["id"] {
			for _, id := range strings.Split(param, ",") {
				if known[id] {
					items = append(items, map[string]any{"kind": "youtube#video", "id": id})
				}
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"kind": "youtube#videoListResponse", "items": items})
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := cloud.NewYouTubeService(ctx, cloud.YouTube{ApiKey: "yt-key", BaseURL: srv.URL + "/"})
	assert.NoError(t, err)

	missing, err := cloud.FindMissingVideos(ctx, svc, []model.YoutubeVideoID{"uDqjIdI4bF4", "gone0000000", "4OxphYV8W3E"})
	assert.NoError(t, err)
	assert.Equal(t, "yt-key", gotKey)
	assert.DeepEqual(t, []model.YoutubeVideoID{"gone0000000"}, missing)
}

func TestNewYouTubeServiceNeedsKey(t *testing.T) {
	_, err := cloud.NewYouTubeService(context.Background(), cloud.YouTube{})
	assert.Equal(t, cloud.ErrMissingYouTubeKey, err)
}
