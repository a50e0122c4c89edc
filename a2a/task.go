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

import (
	"time"

	"github.com/google/uuid"
)

// TaskID is a unique identifier of a Task, assigned at creation and never reused.
type TaskID string

// NewTaskID generates a new unique TaskID.
func NewTaskID() TaskID {
	return TaskID(uuid.NewString())
}

// TaskState is the lifecycle state of a Task.
//
// Legal transitions form a bounded machine:
//
//	submitted -> working -> {completed, failed, canceled}
//
// with working <-> input-required as the only loop. completed, failed and
// canceled are terminal. unknown is an error-recovery sentinel and is never
// assigned by a normal transition.
type TaskState string

const (
	TaskStateSubmitted     TaskState = "submitted"
	TaskStateWorking       TaskState = "working"
	TaskStateInputRequired TaskState = "input-required"
	TaskStateCompleted     TaskState = "completed"
	TaskStateCanceled      TaskState = "canceled"
	TaskStateFailed        TaskState = "failed"
	TaskStateUnknown       TaskState = "unknown"
)

// Terminal reports whether no further transition is legal from the state.
func (s TaskState) Terminal() bool {
	return s == TaskStateCompleted || s == TaskStateFailed || s == TaskStateCanceled
}

// TaskStatus is the current status of a Task. Exactly one status is current
// at any time.
type TaskStatus struct {
	// State is the lifecycle state.
	State TaskState `json:"state"`
	// Message optionally carries the message associated with the status,
	// e.g. the agent response embedded on completion.
	Message *Message `json:"message,omitempty"`
	// Timestamp records when the status was assigned, in UTC.
	Timestamp time.Time `json:"timestamp"`
}

// NewTaskStatus creates a TaskStatus for the given state stamped with the
// current time.
func NewTaskStatus(state TaskState) TaskStatus {
	return TaskStatus{State: state, Timestamp: time.Now().UTC()}
}

// Artifact is a named, indexed, possibly chunked output produced by an agent,
// distinct from conversational history.
type Artifact struct {
	// Name is an optional artifact name.
	Name string `json:"name,omitempty"`
	// Description is an optional human-readable description.
	Description string `json:"description,omitempty"`
	// Parts is the artifact content.
	Parts ContentParts `json:"parts"`
	// Index orders chunks of the same artifact across updates.
	Index int `json:"index"`
	// Append indicates the parts extend the artifact at Index rather than
	// replacing it.
	Append bool `json:"append,omitempty"`
	// LastChunk marks the final chunk of an incrementally built artifact.
	LastChunk bool `json:"last_chunk,omitempty"`
	// Metadata is an optional mapping opaque to the protocol.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Task is a stateful, addressable unit of work correlating one or more
// message exchanges.
type Task struct {
	// ID is the unique task identifier. Immutable for the lifetime of the store.
	ID TaskID `json:"id"`
	// SessionID is an optional client-supplied correlation key, independent of ID.
	SessionID string `json:"session_id,omitempty"`
	// Status is the current task status.
	Status TaskStatus `json:"status"`
	// Artifacts holds outputs produced by the agent, in chunk order.
	Artifacts []Artifact `json:"artifacts,omitempty"`
	// History is the append-only ordered message exchange. Entries are never
	// removed or reordered; callers may request a truncated view.
	History []*Message `json:"history,omitempty"`
	// Metadata is a free-form mapping opaque to the engine.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskSendParams are the parameters of task creation and task message sends.
type TaskSendParams struct {
	// SessionID optionally correlates the task with a client session.
	SessionID string `json:"session_id,omitempty"`
	// Message is the inbound message to process.
	Message *Message `json:"message"`
	// Metadata is an optional mapping opaque to the engine.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// TaskQueryParams are the parameters of a task lookup.
type TaskQueryParams struct {
	// ID is the task identifier.
	ID TaskID `json:"id"`
	// HistoryLength, when set, truncates the returned history view to the
	// last HistoryLength entries. The stored history is untouched.
	HistoryLength *int `json:"history_length,omitempty"`
	// Metadata is an optional mapping opaque to the engine.
	Metadata map[string]any `json:"metadata,omitempty"`
}
