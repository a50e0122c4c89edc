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

package a2a

import "errors"

// Protocol errors. Server and client code classify failures with
// errors.Is against these sentinels; call sites add context with
// fmt.Errorf("...: %w", err).
var (
	// ErrTaskNotFound indicates the referenced task ID is unknown to the store.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotCancelable indicates a cancel was attempted on a task already
	// in a terminal state.
	ErrTaskNotCancelable = errors.New("task cannot be canceled")

	// ErrPushNotificationNotSupported indicates push notification delivery is
	// not implemented.
	ErrPushNotificationNotSupported = errors.New("push notification is not supported")

	// ErrUnsupportedOperation indicates the requested operation is not supported.
	ErrUnsupportedOperation = errors.New("operation is not supported")

	// ErrInvalidRequest indicates a malformed request payload.
	ErrInvalidRequest = errors.New("request payload validation error")

	// ErrMethodNotFound indicates the requested protocol method does not exist.
	ErrMethodNotFound = errors.New("method not found")

	// ErrInvalidParams indicates malformed operation parameters.
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrInternalError indicates a missing or failing external collaborator,
	// or any other unclassified server-side failure.
	ErrInternalError = errors.New("internal error")
)

// JSON-RPC style numeric error codes, stable across the protocol so that
// heterogeneous clients can branch on code rather than message text.
const (
	CodeTaskNotFound                 = -32001
	CodeTaskNotCancelable            = -32002
	CodePushNotificationNotSupported = -32003
	CodeUnsupportedOperation         = -32004
	CodeInvalidRequest               = -32600
	CodeMethodNotFound               = -32601
	CodeInvalidParams                = -32602
	CodeInternalError                = -32603
)

// ErrorForCode is the inverse of ErrorCode: it maps a numeric protocol code
// received over the wire back to the sentinel it stands for. Unknown codes
// map to ErrInternalError.
func ErrorForCode(code int) error {
	switch code {
	case CodeTaskNotFound:
		return ErrTaskNotFound
	case CodeTaskNotCancelable:
		return ErrTaskNotCancelable
	case CodePushNotificationNotSupported:
		return ErrPushNotificationNotSupported
	case CodeUnsupportedOperation:
		return ErrUnsupportedOperation
	case CodeInvalidRequest:
		return ErrInvalidRequest
	case CodeMethodNotFound:
		return ErrMethodNotFound
	case CodeInvalidParams:
		return ErrInvalidParams
	default:
		return ErrInternalError
	}
}

// ErrorCode maps an error to its stable numeric protocol code.
// Unclassified errors map to CodeInternalError.
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return CodeTaskNotFound
	case errors.Is(err, ErrTaskNotCancelable):
		return CodeTaskNotCancelable
	case errors.Is(err, ErrPushNotificationNotSupported):
		return CodePushNotificationNotSupported
	case errors.Is(err, ErrUnsupportedOperation):
		return CodeUnsupportedOperation
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrMethodNotFound):
		return CodeMethodNotFound
	case errors.Is(err, ErrInvalidParams):
		return CodeInvalidParams
	default:
		return CodeInternalError
	}
}
