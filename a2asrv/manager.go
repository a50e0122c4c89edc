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

// Package a2asrv implements the server side of the A2A task protocol: the
// task lifecycle engine, its transport-agnostic API and the REST binding.
package a2asrv

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/agentwire/a2a-go/a2a"
	"github.com/agentwire/a2a-go/a2asrv/eventqueue"
	"github.com/agentwire/a2a-go/a2asrv/taskstore"
	"github.com/agentwire/a2a-go/log"
)

// TaskManager is the task lifecycle engine. It orchestrates task state
// transitions, invokes the configured MessageHandler and emits ordered
// events for streaming consumers.
//
// All mutations of a single task are serialized through a per-task exclusive
// section spanning load, mutate and persist; operations on distinct task IDs
// proceed concurrently.
type TaskManager struct {
	handler      MessageHandler
	cardProducer AgentCardProducer
	store        taskstore.Store
	locks        *taskLocker
	logger       log.Logger
	metrics      *Metrics
	queueSize    int
}

// TaskManagerOption customizes TaskManager construction.
type TaskManagerOption func(*TaskManager)

// WithTaskStore overrides the default in-memory task store.
func WithTaskStore(store taskstore.Store) TaskManagerOption {
	return func(m *TaskManager) {
		m.store = store
	}
}

// WithAgentCardProducer configures the agent card collaborator.
func WithAgentCardProducer(producer AgentCardProducer) TaskManagerOption {
	return func(m *TaskManager) {
		m.cardProducer = producer
	}
}

// WithLogger sets a custom logger. It is attached to the request context on
// every operation, so injected dependencies can use the log package-level
// functions. Defaults to a slog-backed logger.
func WithLogger(logger log.Logger) TaskManagerOption {
	return func(m *TaskManager) {
		m.logger = logger
	}
}

// WithMetrics enables lifecycle metrics collection.
func WithMetrics(metrics *Metrics) TaskManagerOption {
	return func(m *TaskManager) {
		m.metrics = metrics
	}
}

// WithStreamBufferSize overrides the event buffer size of streaming operations.
func WithStreamBufferSize(size int) TaskManagerOption {
	return func(m *TaskManager) {
		m.queueSize = size
	}
}

// NewTaskManager creates a lifecycle engine which delegates agent computation
// to the provided handler. The handler and any card producer are fixed at
// construction and never mutated afterwards.
func NewTaskManager(handler MessageHandler, opts ...TaskManagerOption) *TaskManager {
	m := &TaskManager{
		handler:   handler,
		store:     taskstore.NewMem(),
		locks:     newTaskLocker(),
		logger:    log.Default(),
		queueSize: eventqueue.DefaultSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ProcessMessage handles stateless communication: the message is passed to
// the handler directly and no task is created or stored.
func (m *TaskManager) ProcessMessage(ctx context.Context, message *a2a.Message) (*a2a.Message, error) {
	ctx = log.WithLogger(ctx, m.logger)
	if message == nil {
		return nil, fmt.Errorf("message is required: %w", a2a.ErrInvalidParams)
	}
	return m.invokeHandler(ctx, message)
}

// AgentCard delegates to the configured AgentCardProducer.
func (m *TaskManager) AgentCard(ctx context.Context, agentURL string) (*a2a.AgentCard, error) {
	ctx = log.WithLogger(ctx, m.logger)
	if m.cardProducer == nil {
		return nil, fmt.Errorf("no agent card producer registered: %w", a2a.ErrInternalError)
	}
	card, err := m.cardProducer.Card(ctx, agentURL)
	if err != nil {
		return nil, fmt.Errorf("agent card producer failed: %w: %w", a2a.ErrInternalError, err)
	}
	return card, nil
}

// CreateTask allocates a fresh task, persists it in submitted state and
// processes the inbound message through the handler. The returned task
// reflects the final state reached during the call.
func (m *TaskManager) CreateTask(ctx context.Context, params *a2a.TaskSendParams) (*a2a.Task, error) {
	ctx = log.WithLogger(ctx, m.logger)
	if params == nil || params.Message == nil {
		return nil, fmt.Errorf("message is required: %w", a2a.ErrInvalidParams)
	}

	id := a2a.NewTaskID()
	unlock := m.locks.lock(id)
	defer unlock()

	task := &a2a.Task{
		ID:        id,
		SessionID: params.SessionID,
		Status:    a2a.NewTaskStatus(a2a.TaskStateSubmitted),
		History:   []*a2a.Message{params.Message},
		Metadata:  params.Metadata,
	}

	task, err := m.store.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to persist new task: %w", err)
	}
	m.metrics.taskCreated()
	m.metrics.taskTransition(a2a.TaskStateSubmitted)
	log.Info(ctx, "task created", "task_id", id, "session_id", params.SessionID)

	return m.runHandler(ctx, task, params.Message, nil)
}

// GetTask loads a task. When query.HistoryLength is set, the returned task
// holds a view truncated to the last HistoryLength entries; the stored
// history is untouched.
func (m *TaskManager) GetTask(ctx context.Context, query *a2a.TaskQueryParams) (*a2a.Task, error) {
	if query == nil || query.ID == "" {
		return nil, fmt.Errorf("missing task ID: %w", a2a.ErrInvalidParams)
	}

	task, err := m.store.Get(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	truncateHistory(task, query.HistoryLength)
	return task, nil
}

// truncateHistory trims the task's history view to the last historyLength
// entries. A nil historyLength keeps the full history; zero or negative
// yields an empty view. Only the in-memory copy is touched.
func truncateHistory(task *a2a.Task, historyLength *int) {
	if historyLength == nil {
		return
	}
	keep := *historyLength
	switch {
	case keep <= 0:
		task.History = nil
	case keep < len(task.History):
		task.History = task.History[len(task.History)-keep:]
	}
}

// SendMessage appends the inbound message to an existing task's history and
// processes it through the handler, persisting after every transition. The
// returned task reflects the final state reached during the call.
func (m *TaskManager) SendMessage(ctx context.Context, id a2a.TaskID, params *a2a.TaskSendParams) (*a2a.Task, error) {
	ctx = log.WithLogger(ctx, m.logger)
	if params == nil || params.Message == nil {
		return nil, fmt.Errorf("message is required: %w", a2a.ErrInvalidParams)
	}

	unlock := m.locks.lock(id)
	defer unlock()

	return m.sendLocked(ctx, id, params, nil)
}

// SendMessageStream is SendMessage with observable progress: it emits a
// status event right after the working transition and a final event after
// the terminal transition. On handler failure the final failed event is
// delivered before the stream reports the error.
func (m *TaskManager) SendMessageStream(ctx context.Context, id a2a.TaskID, params *a2a.TaskSendParams) iter.Seq2[a2a.Event, error] {
	ctx = log.WithLogger(ctx, m.logger)
	if params == nil || params.Message == nil {
		return failedStream(fmt.Errorf("message is required: %w", a2a.ErrInvalidParams))
	}

	queue := eventqueue.New(m.queueSize)
	result := make(chan error, 1)

	// The producer runs detached so the task reaches a terminal state even
	// if the consumer disconnects mid-stream.
	procCtx := context.WithoutCancel(ctx)
	go func() {
		defer queue.Close()

		unlock := m.locks.lock(id)
		defer unlock()

		_, err := m.sendLocked(procCtx, id, params, queue)
		result <- err
	}()

	return drainQueue(ctx, queue, result)
}

// CancelTask transitions a non-terminal task to canceled. Cancellation is a
// one-shot edge: canceling an already terminal task (including an already
// canceled one) fails with [a2a.ErrTaskNotCancelable].
func (m *TaskManager) CancelTask(ctx context.Context, id a2a.TaskID) (*a2a.Task, error) {
	ctx = log.WithLogger(ctx, m.logger)

	unlock := m.locks.lock(id)
	defer unlock()

	task, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if task.Status.State.Terminal() {
		return nil, fmt.Errorf("task %q is in state %s: %w", id, task.Status.State, a2a.ErrTaskNotCancelable)
	}

	if err := m.transition(ctx, task, a2a.NewTaskStatus(a2a.TaskStateCanceled), nil); err != nil {
		return nil, err
	}
	log.Info(ctx, "task canceled", "task_id", id)
	return task, nil
}

// Resubscribe emits exactly one event reflecting the task's present status,
// marked final if the state is already terminal. It does not replay missed
// events and does not change task state.
func (m *TaskManager) Resubscribe(ctx context.Context, id a2a.TaskID) iter.Seq2[a2a.Event, error] {
	ctx = log.WithLogger(ctx, m.logger)
	return func(yield func(a2a.Event, error) bool) {
		task, err := m.store.Get(ctx, id)
		if err != nil {
			yield(nil, fmt.Errorf("failed to load task: %w", err))
			return
		}
		yield(a2a.NewStatusUpdateEvent(task), nil)
	}
}

// sendLocked runs the load-mutate-persist cycle of a message send.
// The caller must hold the task's exclusive section.
func (m *TaskManager) sendLocked(ctx context.Context, id a2a.TaskID, params *a2a.TaskSendParams, queue eventqueue.Writer) (*a2a.Task, error) {
	task, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	if task.Status.State.Terminal() {
		return nil, fmt.Errorf("task %q already reached terminal state %s: %w", id, task.Status.State, a2a.ErrUnsupportedOperation)
	}

	task.History = append(task.History, params.Message)
	return m.runHandler(ctx, task, params.Message, queue)
}

// runHandler drives a task through working and exactly one terminal
// transition, persisting after each one. The inbound message must already be
// part of task.History.
func (m *TaskManager) runHandler(ctx context.Context, task *a2a.Task, message *a2a.Message, queue eventqueue.Writer) (*a2a.Task, error) {
	if err := m.transition(ctx, task, a2a.NewTaskStatus(a2a.TaskStateWorking), queue); err != nil {
		return nil, err
	}

	response, err := m.invokeHandler(ctx, message)
	if err != nil {
		var inputReq *InputRequiredError
		if errors.As(err, &inputReq) {
			status := a2a.NewTaskStatus(a2a.TaskStateInputRequired)
			status.Message = inputReq.Message
			if inputReq.Message != nil {
				task.History = append(task.History, inputReq.Message)
			}
			if err := m.transition(ctx, task, status, queue); err != nil {
				return nil, err
			}
			return task, nil
		}
		if terr := m.transition(ctx, task, a2a.NewTaskStatus(a2a.TaskStateFailed), queue); terr != nil {
			log.Error(ctx, "failed to record task failure", terr, "task_id", task.ID)
		}
		return nil, err
	}

	task.History = append(task.History, response)
	completed := a2a.NewTaskStatus(a2a.TaskStateCompleted)
	completed.Message = response
	if err := m.transition(ctx, task, completed, queue); err != nil {
		return nil, err
	}

	return task, nil
}

// transition assigns the status, persists the task and, for streaming
// operations, emits the corresponding status event.
func (m *TaskManager) transition(ctx context.Context, task *a2a.Task, status a2a.TaskStatus, queue eventqueue.Writer) error {
	task.Status = status
	if _, err := m.store.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to persist %s transition: %w", status.State, err)
	}
	m.metrics.taskTransition(status.State)
	log.Debug(ctx, "task state changed", "task_id", task.ID, "state", status.State)

	if queue != nil {
		// Input-required ends the streaming turn even though the task can
		// still resume, so its event is marked final alongside the
		// terminal states.
		event := &a2a.TaskStatusUpdateEvent{
			ID:      task.ID,
			Status:  status,
			IsFinal: status.State.Terminal() || status.State == a2a.TaskStateInputRequired,
		}
		if err := queue.Write(ctx, event); err != nil {
			log.Warn(ctx, "failed to emit status event", "task_id", task.ID, "error", err)
		}
	}
	return nil
}

func (m *TaskManager) invokeHandler(ctx context.Context, message *a2a.Message) (*a2a.Message, error) {
	if m.handler == nil {
		return nil, fmt.Errorf("no message handler registered: %w", a2a.ErrInternalError)
	}

	start := time.Now()
	response, err := m.handler.HandleMessage(ctx, message)
	if err != nil {
		var inputReq *InputRequiredError
		if errors.As(err, &inputReq) {
			// Not a failure: the agent is pausing the turn for more input.
			m.metrics.handlerDone(start, nil)
			return nil, err
		}
		m.metrics.handlerDone(start, err)
		return nil, fmt.Errorf("message handler failed: %w: %w", a2a.ErrInternalError, err)
	}
	m.metrics.handlerDone(start, nil)
	if response == nil {
		return nil, fmt.Errorf("message handler returned no response: %w", a2a.ErrInternalError)
	}
	return response, nil
}

// drainQueue adapts the queue into an event sequence: events are yielded in
// write order until the producer closes the queue, then the producer's
// terminal error, if any, is surfaced.
func drainQueue(ctx context.Context, queue eventqueue.Reader, result <-chan error) iter.Seq2[a2a.Event, error] {
	return func(yield func(a2a.Event, error) bool) {
		for {
			event, err := queue.Read(ctx)
			if err != nil {
				if errors.Is(err, eventqueue.ErrClosed) {
					if procErr := <-result; procErr != nil {
						yield(nil, procErr)
					}
					return
				}
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

func failedStream(err error) iter.Seq2[a2a.Event, error] {
	return func(yield func(a2a.Event, error) bool) {
		yield(nil, err)
	}
}
