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

package rest

import (
	"fmt"

	"github.com/agentwire/a2a-go/a2a"
)

// EventFrame is the payload of one SSE data frame on a task event stream.
// Exactly one field is set: a status update, an artifact update, or the
// terminal error ending a failed stream.
type EventFrame struct {
	Status   *a2a.TaskStatusUpdateEvent   `json:"status,omitempty"`
	Artifact *a2a.TaskArtifactUpdateEvent `json:"artifact,omitempty"`
	Error    *Error                       `json:"error,omitempty"`
}

// NewEventFrame wraps a protocol event for transport.
func NewEventFrame(event a2a.Event) (*EventFrame, error) {
	switch e := event.(type) {
	case *a2a.TaskStatusUpdateEvent:
		return &EventFrame{Status: e}, nil
	case *a2a.TaskArtifactUpdateEvent:
		return &EventFrame{Artifact: e}, nil
	default:
		return nil, fmt.Errorf("unsupported event type %T", event)
	}
}

// Event unwraps the frame back into a protocol event, or the stream error
// the frame carries.
func (f *EventFrame) Event() (a2a.Event, error) {
	switch {
	case f.Error != nil:
		return nil, fmt.Errorf("%s: %w", f.Error.Message, a2a.ErrorForCode(f.Error.Code))
	case f.Status != nil:
		return f.Status, nil
	case f.Artifact != nil:
		return f.Artifact, nil
	default:
		return nil, fmt.Errorf("empty event frame: %w", a2a.ErrInternalError)
	}
}
