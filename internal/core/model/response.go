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

package model

// YoutubeVideoID is the external id of a YouTube video (the `v=` parameter).
type YoutubeVideoID string

// Video is a suggested tutorial. Videos only ever come from the static
// catalog in catalog.go.
type Video struct {
	Title   string         `json:"title"`
	VideoID YoutubeVideoID `json:"video_id"`
	Channel string         `json:"channel"`
}

// Response is the answer returned to the caller of the dispatcher.
// Text is always set. Videos is either nil or non-empty.
type Response struct {
	Text   string   `json:"text"`
	Videos []*Video `json:"videos,omitempty"`
}

// NewTextResponse builds a Response that carries no video suggestions.
func NewTextResponse(text string) *Response {
	return &Response{Text: text}
}
