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

import "fmt"

// User-facing apologies returned in place of an answer when the remote model
// API can not be used.
const (
	QuotaApology      = "I apologize, but it seems you've run out of tokens or exceeded your API quota. Please check your OpenAI account or try again later."
	InvalidKeyApology = "There seems to be an issue with the API key. Please check your configuration."
	GenericApology    = "I apologize, but I encountered an error with the AI service. Please try again."
	ProcessingApology = "I apologize, but I encountered an error processing your request. Please try again."
)

// ApologyFor returns the fixed apology for a preflight failure of the given kind.
func ApologyFor(kind FailureKind) string {
	switch kind {
	case FailureQuotaExceeded:
		return QuotaApology
	case FailureInvalidKey:
		return InvalidKeyApology
	default:
		return GenericApology
	}
}

// CompletionApologyFor returns the apology for a failed completion call.
// Unrecognised failures echo the raw description back to the user.
func CompletionApologyFor(kind FailureKind, err error) string {
	if kind == FailureQuotaExceeded || kind == FailureInvalidKey || err == nil {
		return ApologyFor(kind)
	}
	return fmt.Sprintf("I apologize, but I encountered an error with the AI service: %s. Please try again.", err.Error())
}
