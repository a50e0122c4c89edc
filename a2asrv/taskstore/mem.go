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

package taskstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/agentwire/a2a-go/a2a"
	"github.com/agentwire/a2a-go/internal/utils"
)

type storedTask struct {
	task *a2a.Task
	// seq orders List results by insertion so the order stays stable
	// between mutations.
	seq uint64
}

// Mem stores deep-copied [a2a.Task]-s in memory for the process lifetime.
// It is safe for concurrent use.
type Mem struct {
	mu      sync.RWMutex
	tasks   map[a2a.TaskID]*storedTask
	nextSeq uint64
}

// NewMem creates an empty [Mem] store.
func NewMem() *Mem {
	return &Mem{tasks: make(map[a2a.TaskID]*storedTask)}
}

var _ Store = (*Mem)(nil)

func (s *Mem) Create(ctx context.Context, task *a2a.Task) (*a2a.Task, error) {
	if task.ID == "" {
		return nil, fmt.Errorf("task ID is empty: %w", a2a.ErrInvalidParams)
	}

	copy, err := utils.DeepCopy(task)
	if err != nil {
		return nil, fmt.Errorf("failed to copy task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; ok {
		return nil, fmt.Errorf("task %q: %w", task.ID, ErrTaskAlreadyExists)
	}

	s.tasks[task.ID] = &storedTask{task: copy, seq: s.nextSeq}
	s.nextSeq++

	return utils.DeepCopy(copy)
}

func (s *Mem) Get(ctx context.Context, id a2a.TaskID) (*a2a.Task, error) {
	s.mu.RLock()
	stored, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("task %q: %w", id, a2a.ErrTaskNotFound)
	}

	return utils.DeepCopy(stored.task)
}

func (s *Mem) Update(ctx context.Context, task *a2a.Task) (*a2a.Task, error) {
	copy, err := utils.DeepCopy(task)
	if err != nil {
		return nil, fmt.Errorf("failed to copy task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[task.ID]
	if !ok {
		return nil, fmt.Errorf("task %q: %w", task.ID, a2a.ErrTaskNotFound)
	}

	stored.task = copy
	return utils.DeepCopy(copy)
}

func (s *Mem) Delete(ctx context.Context, id a2a.TaskID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

func (s *Mem) List(ctx context.Context, sessionID string) ([]*a2a.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*storedTask
	for _, stored := range s.tasks {
		if sessionID != "" && stored.task.SessionID != sessionID {
			continue
		}
		matched = append(matched, stored)
	}

	slices.SortFunc(matched, func(a, b *storedTask) int {
		return cmp.Compare(a.seq, b.seq)
	})

	result := make([]*a2a.Task, 0, len(matched))
	for _, stored := range matched {
		copy, err := utils.DeepCopy(stored.task)
		if err != nil {
			return nil, fmt.Errorf("failed to copy task: %w", err)
		}
		result = append(result, copy)
	}
	return result, nil
}

func (s *Mem) Exists(ctx context.Context, id a2a.TaskID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tasks[id]
	return ok, nil
}

// Clear removes all stored tasks. Useful for tests.
func (s *Mem) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.tasks)
}

// Size returns the number of stored tasks.
func (s *Mem) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
