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

package a2asrv

import (
	"sync"

	"github.com/agentwire/a2a-go/a2a"
)

// taskLocker serializes all mutations of a single task: every engine
// operation takes the task's exclusive section spanning load, mutate and
// persist. Operations on distinct task IDs never block each other.
//
// Entries are refcounted and removed once the last holder releases, so the
// map doesn't grow with the number of tasks ever touched.
type taskLocker struct {
	mu    sync.Mutex
	locks map[a2a.TaskID]*taskLock
}

type taskLock struct {
	mu   sync.Mutex
	refs int
}

func newTaskLocker() *taskLocker {
	return &taskLocker{locks: make(map[a2a.TaskID]*taskLock)}
}

// lock acquires the exclusive section for the task and returns the release
// function.
func (l *taskLocker) lock(id a2a.TaskID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &taskLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
