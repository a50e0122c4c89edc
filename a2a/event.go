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

// Event is a protocol event produced during a streaming operation.
// Events are ephemeral and never persisted. The set of implementations is
// closed: TaskStatusUpdateEvent and TaskArtifactUpdateEvent.
type Event interface {
	// EventTaskID returns the ID of the task the event relates to.
	EventTaskID() TaskID
	// Final reports whether this is the last event of the stream. A final
	// event always reflects a terminal or current status.
	Final() bool
}

// TaskStatusUpdateEvent notifies stream consumers of a task status change.
type TaskStatusUpdateEvent struct {
	// ID is the task identifier.
	ID TaskID `json:"id"`
	// Status is the status reached by the transition.
	Status TaskStatus `json:"status"`
	// IsFinal marks the last event of a streaming session. It coincides with
	// the task status becoming terminal.
	IsFinal bool `json:"final"`
	// Metadata is an optional mapping opaque to the protocol.
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (e *TaskStatusUpdateEvent) EventTaskID() TaskID { return e.ID }

func (e *TaskStatusUpdateEvent) Final() bool { return e.IsFinal }

// TaskArtifactUpdateEvent notifies stream consumers of a new or updated
// artifact chunk.
type TaskArtifactUpdateEvent struct {
	// ID is the task identifier.
	ID TaskID `json:"id"`
	// Artifact is the new or updated artifact chunk.
	Artifact Artifact `json:"artifact"`
	// Metadata is an optional mapping opaque to the protocol.
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (e *TaskArtifactUpdateEvent) EventTaskID() TaskID { return e.ID }

func (e *TaskArtifactUpdateEvent) Final() bool { return false }

// NewStatusUpdateEvent creates a TaskStatusUpdateEvent for the task's current
// status, marked final if the status is terminal.
func NewStatusUpdateEvent(task *Task) *TaskStatusUpdateEvent {
	return &TaskStatusUpdateEvent{
		ID:      task.ID,
		Status:  task.Status,
		IsFinal: task.Status.State.Terminal(),
	}
}
