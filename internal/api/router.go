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

// Package api contains the HTTP surface of the service: the gin engine, its
// middleware and the route handlers.
//
// Routes:
//   - GET /: Liveness. Answers with a fixed message and has no side effects.
//   - POST /query: Answers a user query through the dispatcher.
package api

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/animastery-api/internal/cloud"
)

// RequestIdHeader carries the request id. An incoming value is kept.
const RequestIdHeader = "X-Request-Id"

// NewRouter builds the gin engine with the middleware stack and every route.
func NewRouter(config *cloud.Config, dispatcher Dispatcher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestId())
	r.Use(otelgin.Middleware(config.Application.Name))
	r.Use(RequestLogger())
	r.Use(cors.New(CorsConfig(config.Application.CorsAllowedOrigins)))

	QueryRouter(&r.RouterGroup, dispatcher, config.Application.LivenessMessage)
	return r
}

// CorsConfig builds the CORS policy. An empty list or "*" allows any origin.
func CorsConfig(origins []string) cors.Config {
	out := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		out.AllowAllOrigins = true
	} else {
		out.AllowOrigins = origins
	}
	out.AddAllowHeaders(RequestIdHeader)
	out.AddExposeHeaders(RequestIdHeader)
	return out
}

// RequestId assigns each request an id, reusing the caller's when present,
// and echoes it in the response.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIdHeader, id)
		c.Header(RequestIdHeader, id)
		c.Next()
	}
}

// RequestLogger writes one structured log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetString(RequestIdHeader),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}
