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

package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return FromSlog(slog.New(handler)), &buf
}

func TestContextCarriesLogger(t *testing.T) {
	logger, buf := newBufferLogger(t)
	ctx := WithLogger(context.Background(), logger)

	Info(ctx, "task state changed", "task_id", "t1", "state", "working")

	out := buf.String()
	for _, want := range []string{"task state changed", "task_id=t1", "state=working"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestNoLoggerAttachedIsNoop(t *testing.T) {
	ctx := context.Background()
	if _, ok := LoggerFrom(ctx); ok {
		t.Fatal("LoggerFrom() on empty context should report no logger")
	}
	// Must not panic.
	Debug(ctx, "dropped")
	Info(ctx, "dropped")
	Warn(ctx, "dropped")
	Error(ctx, "dropped", errors.New("boom"))
}

func TestErrorAttachesCause(t *testing.T) {
	logger, buf := newBufferLogger(t)

	logger.Error(context.Background(), "handler failed", errors.New("boom"), "task_id", "t1")

	out := buf.String()
	if !strings.Contains(out, "error=boom") {
		t.Errorf("log output %q missing error attribute", out)
	}
}

func TestWithAddsAttributes(t *testing.T) {
	logger, buf := newBufferLogger(t)
	scoped := logger.With("task_id", "t1")

	scoped.Info(context.Background(), "created")

	if !strings.Contains(buf.String(), "task_id=t1") {
		t.Errorf("log output %q missing scoped attribute", buf.String())
	}
}
