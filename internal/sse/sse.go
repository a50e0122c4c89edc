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

// Package sse implements the minimal slice of server-sent events used by the
// streaming endpoints: data frames with generated event IDs on the server
// side and data-line extraction on the client side.
package sse

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/google/uuid"
)

// ContentType is the media type of an event stream response.
const ContentType = "text/event-stream"

const (
	idPrefix   = "id: "
	dataPrefix = "data: "

	// maxLineSize bounds a single SSE line; events carry full task
	// snapshots, so the bufio.Scanner default of 64K is too small.
	maxLineSize = 1 << 20
)

// ParseDataStream extracts the payload of every data line in an SSE body,
// in arrival order. Comments, id lines and blank separators are skipped.
func ParseDataStream(body io.Reader) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
		prefix := []byte(dataPrefix)

		for scanner.Scan() {
			line := scanner.Bytes()
			if bytes.HasPrefix(line, prefix) {
				if !yield(line[len(prefix):], nil) {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("SSE stream error: %w", err))
		}
	}
}

// Writer frames data events onto an http.ResponseWriter, flushing after
// every frame so events reach the client as they happen.
type Writer struct {
	writer  http.ResponseWriter
	flusher http.Flusher
}

// NewWriter fails when the response writer cannot flush, since buffered
// events would defeat streaming.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.New("streaming not supported by response writer")
	}
	return &Writer{writer: w, flusher: flusher}, nil
}

// WriteHeaders emits the event-stream response headers. Must be called
// before the first data frame.
func (w *Writer) WriteHeaders() {
	w.writer.Header().Set("Content-Type", ContentType)
	w.writer.Header().Set("Cache-Control", "no-cache")
	w.writer.Header().Set("Connection", "keep-alive")
	w.writer.Header().Set("X-Accel-Buffering", "no")
	w.writer.WriteHeader(http.StatusOK)
}

// WriteData frames the payload as a single event with a generated ID.
func (w *Writer) WriteData(data []byte) error {
	if _, err := fmt.Fprintf(w.writer, "%s%s\n", idPrefix, uuid.NewString()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w.writer, "%s%s\n\n", dataPrefix, data); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}

// WriteKeepAlive emits a comment frame that keeps idle connections open
// through proxies.
func (w *Writer) WriteKeepAlive() error {
	if _, err := io.WriteString(w.writer, ": keep-alive\n\n"); err != nil {
		return err
	}
	w.flusher.Flush()
	return nil
}
