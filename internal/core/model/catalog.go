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

// Package model defines the data structures for the application. This file,
// `catalog.go`, holds the static lookup tables: the video catalog and the
// pre-written answers served for canned queries. The tables are never handed
// out directly; every accessor returns a fresh copy so request handlers can not
// alter what the next request sees.
package model

// Canned query phrases, matched case-insensitively against the query text.
var (
	TestVideoPhrases       = []string{"test video button"}
	AnimationStylesPhrases = []string{"types of animation", "animation styles", "kinds of animation"}
)

const testVideoText = "Here's a test response with video options. Click the buttons below to watch the tutorials!"

const animationStylesText = `Here are the main types of animation:

1. Traditional Animation (2D)
   - Hand-drawn frame-by-frame animation
   - Example: Classic Disney films like Snow White

2. 3D Animation
   - Computer-generated 3D models and environments
   - Example: Pixar films like Toy Story

3. Stop Motion
   - Physical objects moved incrementally and photographed
   - Example: Wallace & Gromit

4. Motion Graphics
   - Animated graphic design elements
   - Example: Animated logos and title sequences

5. Vector Animation
   - Scalable vector graphics animation
   - Example: Flash animations

6. Cutout Animation
   - Flat characters and props cut from materials
   - Example: South Park

7. Rotoscoping
   - Tracing over live-action footage
   - Example: A Scanner Darkly`

var testVideos = []Video{
	{Title: "Test Video 1 - Animation Basics", VideoID: "uDqjIdI4bF4", Channel: "Test Channel"},
	{Title: "Test Video 2 - Advanced Techniques", VideoID: "qoHEjzLlzDM", Channel: "Test Channel"},
}

var animationStyleVideos = []Video{
	{Title: "12 Principles of Animation", VideoID: "uDqjIdI4bF4", Channel: "Alan Becker"},
	{Title: "Animation Styles Explained", VideoID: "qoHEjzLlzDM", Channel: "Blender Guru"},
	{Title: "3D Animation Basics", VideoID: "MF1qEhBSfq4", Channel: "CG Geek"},
}

var verifiedTutorials = []Video{
	{Title: "12 Principles of Animation", VideoID: "uDqjIdI4bF4", Channel: "Alan Becker"},
	{Title: "Animation for Beginners", VideoID: "qoHEjzLlzDM", Channel: "Jazza"},
	{Title: "Beginner's Guide to Animation", VideoID: "MF1qEhBSfq4", Channel: "Blender Guru"},
	{Title: "Animation Fundamentals", VideoID: "4OxphYV8W3E", Channel: "Aaron Blaise"},
}

func copyVideos(in []Video) []*Video {
	out := make([]*Video, len(in))
	for i := range in {
		v := in[i]
		out[i] = &v
	}
	return out
}

// TestVideos returns the two demonstration videos.
func TestVideos() []*Video {
	return copyVideos(testVideos)
}

// AnimationStyleVideos returns the three videos suggested with the
// animation styles overview.
func AnimationStyleVideos() []*Video {
	return copyVideos(animationStyleVideos)
}

// VerifiedTutorials returns the curated tutorial list checked by the
// catalogcheck command.
func VerifiedTutorials() []*Video {
	return copyVideos(verifiedTutorials)
}

// CatalogVideoIDs returns every distinct video id referenced by any table,
// in first-seen order.
func CatalogVideoIDs() []YoutubeVideoID {
	seen := make(map[YoutubeVideoID]bool)
	out := make([]YoutubeVideoID, 0)
	for _, table := range [][]Video{testVideos, animationStyleVideos, verifiedTutorials} {
		for _, v := range table {
			if !seen[v.VideoID] {
				seen[v.VideoID] = true
				out = append(out, v.VideoID)
			}
		}
	}
	return out
}

// TestVideoResponse is the diagnostic answer for the "test video button" query.
func TestVideoResponse() *Response {
	return &Response{Text: testVideoText, Videos: TestVideos()}
}

// AnimationStylesResponse is the pre-written overview of the seven animation
// categories.
func AnimationStylesResponse() *Response {
	return &Response{Text: animationStylesText, Videos: AnimationStyleVideos()}
}
