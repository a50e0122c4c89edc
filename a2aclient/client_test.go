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

package a2aclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentwire/a2a-go/a2a"
	"github.com/agentwire/a2a-go/internal/rest"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, value any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestClientGetTask(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/t1" {
			t.Errorf("path = %q, want /tasks/t1", r.URL.Path)
		}
		if got := r.URL.Query().Get("historyLength"); got != "2" {
			t.Errorf("historyLength = %q, want %q", got, "2")
		}
		writeJSON(t, w, http.StatusOK, &a2a.Task{
			ID:     "t1",
			Status: a2a.NewTaskStatus(a2a.TaskStateWorking),
		})
	})

	two := 2
	task, err := client.GetTask(context.Background(), &a2a.TaskQueryParams{ID: "t1", HistoryLength: &two})
	if err != nil {
		t.Fatalf("GetTask() = %v, want nil error", err)
	}
	if task.ID != "t1" || task.Status.State != a2a.TaskStateWorking {
		t.Errorf("task = %+v, want t1 in working state", task)
	}
}

func TestClientGetTaskMissingID(t *testing.T) {
	t.Parallel()
	client := New("http://unused.invalid")

	_, err := client.GetTask(context.Background(), &a2a.TaskQueryParams{})
	if !errors.Is(err, a2a.ErrInvalidParams) {
		t.Fatalf("GetTask() = %v, want %v", err, a2a.ErrInvalidParams)
	}
}

func TestClientErrorEnvelopeMapsToSentinel(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		rest.WriteError(w, fmt.Errorf("task %q: %w", "t1", a2a.ErrTaskNotFound), "t1")
	})

	_, err := client.GetTask(context.Background(), &a2a.TaskQueryParams{ID: "t1"})
	if !errors.Is(err, a2a.ErrTaskNotFound) {
		t.Fatalf("GetTask() = %v, want %v", err, a2a.ErrTaskNotFound)
	}
}

func TestClientSendMessage(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var message a2a.Message
		if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
			t.Errorf("decode request: %v", err)
		}
		writeJSON(t, w, http.StatusOK, a2a.NewAgentTextMessage("echo: "+message.TextContent()))
	})

	response, err := client.SendMessage(context.Background(), a2a.NewUserTextMessage("ping"))
	if err != nil {
		t.Fatalf("SendMessage() = %v, want nil error", err)
	}
	if got, want := response.TextContent(), "echo: ping"; got != want {
		t.Errorf("response text = %q, want %q", got, want)
	}
}

func TestClientCreateTaskAcceptsCreated(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusCreated, &a2a.Task{
			ID:     "t1",
			Status: a2a.NewTaskStatus(a2a.TaskStateCompleted),
		})
	})

	task, err := client.CreateTask(context.Background(), &a2a.TaskSendParams{Message: a2a.NewUserTextMessage("go")})
	if err != nil {
		t.Fatalf("CreateTask() = %v, want nil error", err)
	}
	if task.ID != "t1" {
		t.Errorf("task ID = %q, want %q", task.ID, "t1")
	}
}

func TestClientSendTaskSubscribe(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		frames := []*rest.EventFrame{
			{Status: &a2a.TaskStatusUpdateEvent{ID: "t1", Status: a2a.NewTaskStatus(a2a.TaskStateWorking)}},
			{Status: &a2a.TaskStatusUpdateEvent{ID: "t1", Status: a2a.NewTaskStatus(a2a.TaskStateCompleted), IsFinal: true}},
		}
		for _, frame := range frames {
			data, err := json.Marshal(frame)
			if err != nil {
				t.Errorf("marshal frame: %v", err)
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
		}
	})

	var states []a2a.TaskState
	for event, err := range client.SendTaskSubscribe(context.Background(), "t1", &a2a.TaskSendParams{Message: a2a.NewUserTextMessage("go")}) {
		if err != nil {
			t.Fatalf("stream error = %v, want nil", err)
		}
		update, ok := event.(*a2a.TaskStatusUpdateEvent)
		if !ok {
			t.Fatalf("event type = %T, want status update", event)
		}
		states = append(states, update.Status.State)
	}

	want := []a2a.TaskState{a2a.TaskStateWorking, a2a.TaskStateCompleted}
	if len(states) != len(want) || states[0] != want[0] || states[1] != want[1] {
		t.Errorf("states = %v, want %v", states, want)
	}
}

func TestClientSendTaskSubscribeErrorFrame(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		frame := &rest.EventFrame{Error: rest.NewError(a2a.ErrInternalError, "t1")}
		data, err := json.Marshal(frame)
		if err != nil {
			t.Errorf("marshal frame: %v", err)
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
	})

	var streamErr error
	for _, err := range client.SendTaskSubscribe(context.Background(), "t1", &a2a.TaskSendParams{Message: a2a.NewUserTextMessage("go")}) {
		streamErr = err
	}
	if !errors.Is(streamErr, a2a.ErrInternalError) {
		t.Fatalf("stream error = %v, want %v", streamErr, a2a.ErrInternalError)
	}
}

func TestClientSendMessageSubscribe(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		data, err := json.Marshal(a2a.NewAgentTextMessage("pong"))
		if err != nil {
			t.Errorf("marshal message: %v", err)
		}
		fmt.Fprintf(w, "id: 1\ndata: %s\n\n", data)
	})

	response, err := client.SendMessageSubscribe(context.Background(), a2a.NewUserTextMessage("ping"))
	if err != nil {
		t.Fatalf("SendMessageSubscribe() = %v, want nil error", err)
	}
	if got, want := response.TextContent(), "pong"; got != want {
		t.Errorf("response text = %q, want %q", got, want)
	}
}

func TestClientAgentCard(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/card" {
			t.Errorf("path = %q, want /card", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, &a2a.AgentCard{Name: "echo", Version: "1.0.0"})
	})

	card, err := client.AgentCard(context.Background())
	if err != nil {
		t.Fatalf("AgentCard() = %v, want nil error", err)
	}
	if card.Name != "echo" {
		t.Errorf("card name = %q, want %q", card.Name, "echo")
	}
}

func TestClientCancelTask(t *testing.T) {
	t.Parallel()
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/t1/cancel" {
			t.Errorf("path = %q, want /tasks/t1/cancel", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, &a2a.Task{
			ID:     "t1",
			Status: a2a.NewTaskStatus(a2a.TaskStateCanceled),
		})
	})

	task, err := client.CancelTask(context.Background(), "t1")
	if err != nil {
		t.Fatalf("CancelTask() = %v, want nil error", err)
	}
	if task.Status.State != a2a.TaskStateCanceled {
		t.Errorf("state = %q, want %q", task.Status.State, a2a.TaskStateCanceled)
	}
}
