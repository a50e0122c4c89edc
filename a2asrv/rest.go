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
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agentwire/a2a-go/a2a"
	"github.com/agentwire/a2a-go/internal/rest"
	"github.com/agentwire/a2a-go/internal/sse"
	"github.com/agentwire/a2a-go/log"
)

// WellKnownAgentCardPath is the discovery location agent card resolvers
// fetch by default. It is served unprefixed regardless of WithPathPrefix.
const WellKnownAgentCardPath = "/.well-known/agent-card.json"

// RESTHandler binds a TaskManager to HTTP. Request and response bodies use
// the protocol's JSON shapes; streaming endpoints emit server-sent events
// with one data frame per protocol event.
type RESTHandler struct {
	manager *TaskManager
	prefix  string
	logger  log.Logger
}

// RESTHandlerOption customizes the HTTP binding.
type RESTHandlerOption func(*RESTHandler)

// WithPathPrefix mounts all endpoints under the given prefix,
// e.g. "/a2a/v1". The default is the server root.
func WithPathPrefix(prefix string) RESTHandlerOption {
	return func(h *RESTHandler) {
		h.prefix = prefix
	}
}

// WithHandlerLogger sets the logger for transport-level events. Engine
// operations log through the manager's own logger.
func WithHandlerLogger(logger log.Logger) RESTHandlerOption {
	return func(h *RESTHandler) {
		h.logger = logger
	}
}

// NewRESTHandler builds the protocol's HTTP routing table around the
// manager and returns it as a standard http.Handler.
func NewRESTHandler(manager *TaskManager, opts ...RESTHandlerOption) http.Handler {
	h := &RESTHandler{manager: manager, logger: log.Default()}
	for _, opt := range opts {
		opt(h)
	}

	router := mux.NewRouter()
	routes := router
	if h.prefix != "" {
		routes = router.PathPrefix(h.prefix).Subrouter()
	}

	routes.HandleFunc(rest.AgentCardPath(), h.agentCard).Methods(http.MethodGet)
	routes.HandleFunc(rest.SendMessagePath(), h.sendMessage).Methods(http.MethodPost)
	routes.HandleFunc(rest.SendMessageSubscribePath(), h.sendMessageSubscribe).Methods(http.MethodPost)
	routes.HandleFunc(rest.CreateTaskPath(), h.createTask).Methods(http.MethodPost)
	routes.HandleFunc("/tasks/{id}", h.getTask).Methods(http.MethodGet)
	routes.HandleFunc("/tasks/{id}/send", h.sendTask).Methods(http.MethodPost)
	routes.HandleFunc("/tasks/{id}/sendSubscribe", h.sendTaskSubscribe).Methods(http.MethodPost)
	routes.HandleFunc("/tasks/{id}/cancel", h.cancelTask).Methods(http.MethodPost)
	routes.HandleFunc("/tasks/{id}/resubscribe", h.resubscribeTask).Methods(http.MethodPost)
	// Reserved push notification endpoints. Not implemented.
	routes.HandleFunc("/tasks/{id}/pushNotification", h.pushNotification)

	router.HandleFunc(WellKnownAgentCardPath, h.agentCard).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest.WriteError(w, fmt.Errorf("no endpoint at %s: %w", r.URL.Path, a2a.ErrMethodNotFound), "")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest.WriteError(w, fmt.Errorf("method %s not allowed at %s: %w", r.Method, r.URL.Path, a2a.ErrInvalidRequest), "")
	})
	return router
}

func (h *RESTHandler) agentCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.manager.AgentCard(r.Context(), h.requestBaseURL(r))
	if err != nil {
		rest.WriteError(w, err, "")
		return
	}
	h.writeJSON(r, w, http.StatusOK, card)
}

func (h *RESTHandler) sendMessage(w http.ResponseWriter, r *http.Request) {
	message, err := decodeBody[a2a.Message](r)
	if err != nil {
		rest.WriteError(w, err, "")
		return
	}
	response, err := h.manager.ProcessMessage(r.Context(), message)
	if err != nil {
		rest.WriteError(w, err, "")
		return
	}
	h.writeJSON(r, w, http.StatusOK, response)
}

// sendMessageSubscribe is the single-shot stream variant of sendMessage:
// the handler response arrives as exactly one SSE data frame.
func (h *RESTHandler) sendMessageSubscribe(w http.ResponseWriter, r *http.Request) {
	message, err := decodeBody[a2a.Message](r)
	if err != nil {
		rest.WriteError(w, err, "")
		return
	}

	writer, err := sse.NewWriter(w)
	if err != nil {
		rest.WriteError(w, fmt.Errorf("%s: %w", err, a2a.ErrInternalError), "")
		return
	}
	writer.WriteHeaders()

	response, err := h.manager.ProcessMessage(r.Context(), message)
	if err != nil {
		h.writeErrorFrame(r, writer, err, "")
		return
	}
	h.writeDataFrame(r, writer, response)
}

func (h *RESTHandler) createTask(w http.ResponseWriter, r *http.Request) {
	params, err := decodeBody[a2a.TaskSendParams](r)
	if err != nil {
		rest.WriteError(w, err, "")
		return
	}
	task, err := h.manager.CreateTask(r.Context(), params)
	if err != nil {
		rest.WriteError(w, err, "")
		return
	}
	h.writeJSON(r, w, http.StatusCreated, task)
}

func (h *RESTHandler) getTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	query := &a2a.TaskQueryParams{ID: id}

	var err error
	if query.HistoryLength, err = historyLength(r); err != nil {
		rest.WriteError(w, err, id)
		return
	}
	if metadata := r.URL.Query().Get("metadata"); metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &query.Metadata); err != nil {
			rest.WriteError(w, fmt.Errorf("malformed metadata parameter: %w", a2a.ErrInvalidParams), id)
			return
		}
	}

	task, err := h.manager.GetTask(r.Context(), query)
	if err != nil {
		rest.WriteError(w, err, id)
		return
	}
	h.writeJSON(r, w, http.StatusOK, task)
}

func (h *RESTHandler) sendTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	params, err := decodeBody[a2a.TaskSendParams](r)
	if err != nil {
		rest.WriteError(w, err, id)
		return
	}
	view, err := historyLength(r)
	if err != nil {
		rest.WriteError(w, err, id)
		return
	}

	task, err := h.manager.SendMessage(r.Context(), id, params)
	if err != nil {
		rest.WriteError(w, err, id)
		return
	}
	truncateHistory(task, view)
	h.writeJSON(r, w, http.StatusOK, task)
}

func (h *RESTHandler) sendTaskSubscribe(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	params, err := decodeBody[a2a.TaskSendParams](r)
	if err != nil {
		rest.WriteError(w, err, id)
		return
	}
	h.streamEvents(w, r, id, h.manager.SendMessageStream(r.Context(), id, params))
}

func (h *RESTHandler) cancelTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	task, err := h.manager.CancelTask(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, id)
		return
	}
	h.writeJSON(r, w, http.StatusOK, task)
}

func (h *RESTHandler) resubscribeTask(w http.ResponseWriter, r *http.Request) {
	id := taskID(r)
	h.streamEvents(w, r, id, h.manager.Resubscribe(r.Context(), id))
}

func (h *RESTHandler) pushNotification(w http.ResponseWriter, r *http.Request) {
	rest.WriteError(w, a2a.ErrPushNotificationNotSupported, taskID(r))
}

// streamEvents relays an engine event sequence as SSE frames. A sequence
// error arrives as a final error frame, after any events emitted before it.
func (h *RESTHandler) streamEvents(w http.ResponseWriter, r *http.Request, id a2a.TaskID, events iter.Seq2[a2a.Event, error]) {
	writer, err := sse.NewWriter(w)
	if err != nil {
		rest.WriteError(w, fmt.Errorf("%s: %w", err, a2a.ErrInternalError), id)
		return
	}
	writer.WriteHeaders()

	for event, err := range events {
		if err != nil {
			h.writeErrorFrame(r, writer, err, id)
			return
		}
		frame, err := rest.NewEventFrame(event)
		if err != nil {
			h.writeErrorFrame(r, writer, fmt.Errorf("%s: %w", err, a2a.ErrInternalError), id)
			return
		}
		if !h.writeDataFrame(r, writer, frame) {
			return
		}
	}
}

func (h *RESTHandler) writeDataFrame(r *http.Request, writer *sse.Writer, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn(h.ctx(r), "failed to encode stream frame", "error", err)
		return false
	}
	if err := writer.WriteData(data); err != nil {
		log.Warn(h.ctx(r), "client left mid-stream", "error", err)
		return false
	}
	return true
}

func (h *RESTHandler) writeErrorFrame(r *http.Request, writer *sse.Writer, err error, id a2a.TaskID) {
	h.writeDataFrame(r, writer, &rest.EventFrame{Error: rest.NewError(err, id)})
}

func (h *RESTHandler) writeJSON(r *http.Request, w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Warn(h.ctx(r), "failed to write response", "error", err)
	}
}

func (h *RESTHandler) requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + h.prefix
}

func (h *RESTHandler) ctx(r *http.Request) context.Context {
	return log.WithLogger(r.Context(), h.logger)
}

func taskID(r *http.Request) a2a.TaskID {
	return a2a.TaskID(mux.Vars(r)["id"])
}

func historyLength(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("historyLength")
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed historyLength parameter %q: %w", raw, a2a.ErrInvalidParams)
	}
	return &value, nil
}

func decodeBody[T any](r *http.Request) (*T, error) {
	var value T
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		return nil, fmt.Errorf("malformed request body: %w", a2a.ErrInvalidRequest)
	}
	return &value, nil
}
