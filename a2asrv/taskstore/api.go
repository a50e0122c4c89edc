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

// Package taskstore defines keyed storage for Task entities and provides a
// volatile in-memory reference implementation plus a database-backed one.
package taskstore

import (
	"context"
	"errors"

	"github.com/agentwire/a2a-go/a2a"
)

// ErrTaskAlreadyExists indicates that a task with the provided ID already exists.
var ErrTaskAlreadyExists = errors.New("task already exists")

// Store is the task persistence contract. Individual calls are atomic; the
// lifecycle engine supplies per-task serialization of read-modify-write
// cycles, so implementations don't need general transactions.
type Store interface {
	// Create inserts a new task and returns the stored value. It fails with
	// [ErrTaskAlreadyExists] if a task with the same ID is already present.
	Create(ctx context.Context, task *a2a.Task) (*a2a.Task, error)

	// Get retrieves a task by ID, failing with [a2a.ErrTaskNotFound] if absent.
	Get(ctx context.Context, id a2a.TaskID) (*a2a.Task, error)

	// Update replaces the stored task wholesale and returns the stored value.
	// It fails with [a2a.ErrTaskNotFound] if the task ID is absent.
	Update(ctx context.Context, task *a2a.Task) (*a2a.Task, error)

	// Delete removes a task and reports whether a stored task was removed.
	// Deleting an absent ID is not an error.
	Delete(ctx context.Context, id a2a.TaskID) (bool, error)

	// List returns stored tasks, filtered by exact session ID match when
	// sessionID is non-empty. Order is unspecified but stable within one
	// store instance between mutations.
	List(ctx context.Context, sessionID string) ([]*a2a.Task, error)

	// Exists reports whether a task with the given ID is stored.
	Exists(ctx context.Context, id a2a.TaskID) (bool, error)
}
