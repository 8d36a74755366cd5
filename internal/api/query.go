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

package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaycherian/animastery-api/internal/core/model"
)

// Dispatcher answers a query. Implementations never return nil.
type Dispatcher interface {
	Dispatch(ctx context.Context, text string, modelName string) *model.Response
}

// QueryRequest is the body of POST /query. Both fields are optional.
type QueryRequest struct {
	Query string `json:"query"`
	Model string `json:"model"`
}

// QueryRouter registers the liveness and query routes.
func QueryRouter(r *gin.RouterGroup, dispatcher Dispatcher, livenessMessage string) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": livenessMessage})
	})

	r.POST("/query", func(c *gin.Context) {
		var req QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, dispatcher.Dispatch(c.Request.Context(), req.Query, req.Model))
	})
}
