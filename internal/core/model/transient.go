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

// Package model defines the core data structures for the application.
// This file, `transient.go`, contains the request-scoped values that flow
// through the dispatch chain. None of them outlive a single request.
package model

import "strings"

// DefaultModel is the model identifier used when a caller does not name one.
const DefaultModel = "gpt-3.5-turbo"

// Query is the input of a single dispatch: the raw user text plus the model
// identifier the caller asked for.
type Query struct {
	Text  string // The raw query text, passed through unvalidated.
	Model string // The remote model identifier, DefaultModel when empty.
}

// NewQuery builds a Query, substituting fallbackModel when model is blank.
func NewQuery(text string, model string, fallbackModel string) *Query {
	if strings.TrimSpace(model) == "" {
		model = fallbackModel
	}
	if model == "" {
		model = DefaultModel
	}
	return &Query{Text: text, Model: model}
}

// Contains reports whether the query text contains any of the phrases,
// ignoring case.
func (q *Query) Contains(phrases ...string) bool {
	lowered := strings.ToLower(q.Text)
	for _, phrase := range phrases {
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}

// FailureKind classifies why the remote model API could not be used.
type FailureKind string

const (
	FailureNone          FailureKind = "none"
	FailureQuotaExceeded FailureKind = "quota_exceeded"
	FailureInvalidKey    FailureKind = "invalid_key"
	FailureOther         FailureKind = "other"
)

// APIStatus is the outcome of a preflight check against the remote model API.
type APIStatus struct {
	Reachable bool        `json:"reachable"`
	Kind      FailureKind `json:"kind"`
	Err       error       `json:"-"` // The raw failure, nil when reachable.
}

// StatusReachable returns the status of a successful preflight.
func StatusReachable() *APIStatus {
	return &APIStatus{Reachable: true, Kind: FailureNone}
}

// StatusUnreachable returns the status of a failed preflight.
func StatusUnreachable(kind FailureKind, err error) *APIStatus {
	return &APIStatus{Reachable: false, Kind: kind, Err: err}
}
