// Copyright 2026 The AgentWire Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rest holds the REST binding contract shared by the server and the
// client: endpoint paths, the error envelope and the status code mapping.
package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agentwire/a2a-go/a2a"
)

// Endpoint paths relative to the configured prefix. Server routes and
// client requests are both built from these so the two cannot drift.
func AgentCardPath() string { return "/card" }

func SendMessagePath() string { return "/message/send" }

func SendMessageSubscribePath() string { return "/message/sendSubscribe" }

func CreateTaskPath() string { return "/tasks" }

func GetTaskPath(id a2a.TaskID) string { return "/tasks/" + string(id) }

func SendTaskPath(id a2a.TaskID) string { return "/tasks/" + string(id) + "/send" }

func SendTaskSubscribePath(id a2a.TaskID) string { return "/tasks/" + string(id) + "/sendSubscribe" }

func CancelTaskPath(id a2a.TaskID) string { return "/tasks/" + string(id) + "/cancel" }

func ResubscribeTaskPath(id a2a.TaskID) string { return "/tasks/" + string(id) + "/resubscribe" }

func PushConfigPath(id a2a.TaskID) string { return "/tasks/" + string(id) + "/pushNotification" }

// Error is the wire envelope of a failed request. Code carries the stable
// numeric protocol code; Message is informational only.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	TaskID  string `json:"task_id,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// NewError builds the envelope for an engine error.
func NewError(err error, taskID a2a.TaskID) *Error {
	return &Error{
		Code:    a2a.ErrorCode(err),
		Message: err.Error(),
		TaskID:  string(taskID),
	}
}

// StatusCode maps a protocol error code to the HTTP status of the response
// carrying it.
func StatusCode(code int) int {
	switch code {
	case a2a.CodeTaskNotFound, a2a.CodeMethodNotFound:
		return http.StatusNotFound
	case a2a.CodeTaskNotCancelable, a2a.CodeUnsupportedOperation,
		a2a.CodeInvalidRequest, a2a.CodeInvalidParams:
		return http.StatusBadRequest
	case a2a.CodePushNotificationNotSupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// WriteError serializes the envelope for err with the mapped HTTP status.
func WriteError(w http.ResponseWriter, err error, taskID a2a.TaskID) {
	envelope := NewError(err, taskID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(envelope.Code))
	// Encoding the envelope cannot fail; ignore late write errors as the
	// connection is beyond saving at this point.
	_ = json.NewEncoder(w).Encode(envelope)
}

// DecodeError reconstructs the protocol error from a non-2xx response body.
// The returned error matches the corresponding a2a sentinel under errors.Is.
func DecodeError(resp *http.Response) error {
	var envelope Error
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("HTTP %d: %w", resp.StatusCode, a2a.ErrInternalError)
	}
	return fmt.Errorf("%s: %w", envelope.Message, a2a.ErrorForCode(envelope.Code))
}
