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

// Package eventqueue provides the ordered, cancellable event channel between
// the task lifecycle engine (producer) and a transport adapter (consumer).
// A queue is scoped to one logical streaming operation and is closed by the
// producer after the final event; the consumer drains it until closed.
package eventqueue

import (
	"context"
	"errors"

	"github.com/agentwire/a2a-go/a2a"
)

// DefaultSize is the buffer size used when no explicit size is requested.
const DefaultSize = 64

// ErrClosed indicates that the event queue has been closed.
var ErrClosed = errors.New("queue is closed")

// Reader is the consumer side of a queue.
type Reader interface {
	// Read dequeues an event or blocks until one is available. After Close
	// it keeps returning buffered events until the queue is drained, then
	// fails with ErrClosed.
	Read(ctx context.Context) (a2a.Event, error)
}

// Writer is the producer side of a queue.
type Writer interface {
	// Write enqueues an event, blocking while the queue is full.
	// Fails with ErrClosed after Close.
	Write(ctx context.Context, event a2a.Event) error
}

// Queue is a finite, producer-driven, ordered sequence of protocol events.
// Events are delivered in the order they were written.
type Queue interface {
	Reader
	Writer

	// Close stops the queue from accepting writes. Safe to call multiple times.
	Close() error
}

// Implements Queue.
type queue struct {
	// A writer holds the semaphore while interacting with events, so that
	// Close never races a send on a closed channel.
	semaphore chan struct{}
	events    chan a2a.Event
	// Set under the semaphore once events is closed; Read keeps draining.
	closed bool
	// A signal lands here before Close acquires the semaphore, unblocking
	// any writer currently holding it.
	close chan struct{}
}

// New creates a queue with the given buffer size.
func New(size int) Queue {
	return &queue{
		semaphore: make(chan struct{}, 1),
		events:    make(chan a2a.Event, size),
		close:     make(chan struct{}, 1),
	}
}

func (q *queue) Write(ctx context.Context, event a2a.Event) error {
	select {
	case q.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-q.semaphore }()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.events <- event:
		return nil
	case <-q.close:
		close(q.events)
		q.closed = true
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *queue) Read(ctx context.Context) (a2a.Event, error) {
	// q.closed is not checked so that readers can drain the queue.
	select {
	case event, ok := <-q.events:
		if !ok {
			return nil, ErrClosed
		}
		return event, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *queue) Close() error {
	select {
	case q.close <- struct{}{}:
	default:
		// A close signal is already pending; proceed to acquire the
		// semaphore and finish the close.
	}

	// May block on a writer holding the semaphore, but the signal above
	// unblocks it.
	q.semaphore <- struct{}{}
	defer func() { <-q.semaphore }()

	if !q.closed {
		close(q.events)
		q.closed = true
	}

	return nil
}
