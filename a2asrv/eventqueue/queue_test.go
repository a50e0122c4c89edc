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

package eventqueue

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/agentwire/a2a-go/a2a"
)

func statusEvent(id a2a.TaskID, state a2a.TaskState) *a2a.TaskStatusUpdateEvent {
	return &a2a.TaskStatusUpdateEvent{ID: id, Status: a2a.NewTaskStatus(state)}
}

func mustWrite(t *testing.T, q Queue, events ...a2a.Event) {
	t.Helper()
	for i, event := range events {
		if err := q.Write(t.Context(), event); err != nil {
			t.Fatalf("q.Write() error = %v at %d", err, i)
		}
	}
}

func mustRead(t *testing.T, q Queue) a2a.Event {
	t.Helper()
	event, err := q.Read(t.Context())
	if err != nil {
		t.Fatalf("q.Read() error = %v", err)
	}
	return event
}

func TestQueue_WriteReadOrder(t *testing.T) {
	t.Parallel()
	q := New(DefaultSize)

	want := []a2a.Event{
		statusEvent("t1", a2a.TaskStateWorking),
		statusEvent("t1", a2a.TaskStateCompleted),
	}
	mustWrite(t, q, want...)

	for i, w := range want {
		if got := mustRead(t, q); !reflect.DeepEqual(got, w) {
			t.Errorf("Read() #%d got = %v, want %v", i, got, w)
		}
	}
}

func TestQueue_DrainAfterClose(t *testing.T) {
	t.Parallel()
	q := New(DefaultSize)

	want := []a2a.Event{
		statusEvent("t1", a2a.TaskStateWorking),
		statusEvent("t1", a2a.TaskStateFailed),
	}
	mustWrite(t, q, want...)

	if err := q.Close(); err != nil {
		t.Fatalf("q.Close() error = %v", err)
	}

	var got []a2a.Event
	for {
		event, err := q.Read(t.Context())
		if errors.Is(err, ErrClosed) {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got = append(got, event)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("drained events = %v, want %v", got, want)
	}
}

func TestQueue_WriteAfterClose(t *testing.T) {
	t.Parallel()
	q := New(DefaultSize)

	if err := q.Close(); err != nil {
		t.Fatalf("q.Close() error = %v", err)
	}
	if err := q.Write(t.Context(), statusEvent("t1", a2a.TaskStateWorking)); !errors.Is(err, ErrClosed) {
		t.Errorf("Write() after Close error = %v, want ErrClosed", err)
	}
}

func TestQueue_CloseIsIdempotent(t *testing.T) {
	t.Parallel()
	q := New(DefaultSize)

	for range 3 {
		if err := q.Close(); err != nil {
			t.Fatalf("q.Close() error = %v", err)
		}
	}
}

func TestQueue_ReadBlocksUntilWrite(t *testing.T) {
	t.Parallel()
	q := New(DefaultSize)
	want := statusEvent("t1", a2a.TaskStateWorking)

	done := make(chan a2a.Event, 1)
	go func() {
		event, err := q.Read(context.Background())
		if err != nil {
			return
		}
		done <- event
	}()

	time.Sleep(10 * time.Millisecond)
	mustWrite(t, q, want)

	select {
	case got := <-done:
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Read() got = %v, want %v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("Read() did not observe the written event")
	}
}

func TestQueue_ReadHonorsContextCancellation(t *testing.T) {
	t.Parallel()
	q := New(DefaultSize)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := q.Read(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Read() error = %v, want context.Canceled", err)
	}
}

func TestQueue_CloseUnblocksFullQueueWriter(t *testing.T) {
	t.Parallel()
	q := New(1)
	mustWrite(t, q, statusEvent("t1", a2a.TaskStateWorking))

	var wg sync.WaitGroup
	wg.Add(1)
	writeErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		writeErr <- q.Write(context.Background(), statusEvent("t1", a2a.TaskStateCompleted))
	}()

	time.Sleep(10 * time.Millisecond)
	if err := q.Close(); err != nil {
		t.Fatalf("q.Close() error = %v", err)
	}
	wg.Wait()

	if err := <-writeErr; !errors.Is(err, ErrClosed) {
		t.Errorf("blocked Write() error = %v, want ErrClosed", err)
	}
}
