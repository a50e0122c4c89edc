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

// Package a2aclient is the HTTP client of the task protocol. It talks to a
// server built with the a2asrv package, or any other implementation of the
// same REST binding.
package a2aclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentwire/a2a-go/a2a"
	"github.com/agentwire/a2a-go/internal/rest"
	"github.com/agentwire/a2a-go/internal/sse"
	"github.com/agentwire/a2a-go/log"
)

// Client calls one agent endpoint. The zero timeout of the default HTTP
// client is intentional: streaming calls stay open as long as the task runs,
// so deadlines belong on the ctx of individual calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     log.Logger
}

// Option customizes Client construction.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client, e.g. to configure
// connection pooling, proxies or TLS.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the agent endpoint rooted at baseURL, including
// any path prefix the server was mounted under.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AgentCard fetches the agent's capability manifest.
func (c *Client) AgentCard(ctx context.Context) (*a2a.AgentCard, error) {
	var card a2a.AgentCard
	if err := c.doJSON(ctx, http.MethodGet, rest.AgentCardPath(), nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// SendMessage runs the stateless path: the message goes straight to the
// agent's handler and no task is created.
func (c *Client) SendMessage(ctx context.Context, message *a2a.Message) (*a2a.Message, error) {
	var response a2a.Message
	if err := c.doJSON(ctx, http.MethodPost, rest.SendMessagePath(), message, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SendMessageSubscribe is the single-shot stream variant of SendMessage: the
// response arrives as one SSE frame. The result is identical to SendMessage;
// the variant exists for clients that route everything through one
// streaming-capable code path.
func (c *Client) SendMessageSubscribe(ctx context.Context, message *a2a.Message) (*a2a.Message, error) {
	resp, err := c.send(ctx, http.MethodPost, rest.SendMessageSubscribePath(), message, sse.ContentType)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(ctx, resp)

	for data, err := range sse.ParseDataStream(resp.Body) {
		if err != nil {
			return nil, err
		}
		// An error frame has a top-level "error" key, which a message
		// payload never carries.
		var check struct {
			Error *rest.Error `json:"error"`
		}
		if err := json.Unmarshal(data, &check); err == nil && check.Error != nil {
			return nil, fmt.Errorf("%s: %w", check.Error.Message, a2a.ErrorForCode(check.Error.Code))
		}
		var response a2a.Message
		if err := json.Unmarshal(data, &response); err != nil {
			return nil, fmt.Errorf("malformed response frame: %w", err)
		}
		return &response, nil
	}
	return nil, fmt.Errorf("stream closed without a response frame: %w", a2a.ErrInternalError)
}

// CreateTask starts a new task from the given params and returns it in its
// final state.
func (c *Client) CreateTask(ctx context.Context, params *a2a.TaskSendParams) (*a2a.Task, error) {
	var task a2a.Task
	if err := c.doJSON(ctx, http.MethodPost, rest.CreateTaskPath(), params, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask fetches a task snapshot, honoring the query's history view.
func (c *Client) GetTask(ctx context.Context, query *a2a.TaskQueryParams) (*a2a.Task, error) {
	if query == nil || query.ID == "" {
		return nil, fmt.Errorf("missing task ID: %w", a2a.ErrInvalidParams)
	}

	path := rest.GetTaskPath(query.ID)
	values := url.Values{}
	if query.HistoryLength != nil {
		values.Set("historyLength", strconv.Itoa(*query.HistoryLength))
	}
	if query.Metadata != nil {
		metadata, err := json.Marshal(query.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", a2a.ErrInvalidParams)
		}
		values.Set("metadata", string(metadata))
	}
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var task a2a.Task
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SendTask delivers a follow-up message to an existing task and returns the
// task in its final state.
func (c *Client) SendTask(ctx context.Context, id a2a.TaskID, params *a2a.TaskSendParams) (*a2a.Task, error) {
	var task a2a.Task
	if err := c.doJSON(ctx, http.MethodPost, rest.SendTaskPath(id), params, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SendTaskSubscribe is SendTask with event-level progress: the sequence
// yields each status update as the server emits it. A server-side failure
// surfaces as the sequence's terminal error, after the events that preceded
// it.
func (c *Client) SendTaskSubscribe(ctx context.Context, id a2a.TaskID, params *a2a.TaskSendParams) iter.Seq2[a2a.Event, error] {
	return c.streamEvents(ctx, rest.SendTaskSubscribePath(id), params)
}

// CancelTask requests cancellation of a non-terminal task.
func (c *Client) CancelTask(ctx context.Context, id a2a.TaskID) (*a2a.Task, error) {
	var task a2a.Task
	if err := c.doJSON(ctx, http.MethodPost, rest.CancelTaskPath(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Resubscribe fetches the task's present status as a single-event stream.
func (c *Client) Resubscribe(ctx context.Context, id a2a.TaskID) iter.Seq2[a2a.Event, error] {
	return c.streamEvents(ctx, rest.ResubscribeTaskPath(id), nil)
}

// send issues the request and returns the response with its body open; the
// caller owns closing it. Non-2xx responses are consumed and converted to
// protocol errors.
func (c *Client) send(ctx context.Context, method, path string, payload any, accept string) (*http.Response, error) {
	ctx = log.WithLogger(ctx, c.logger)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w: %w", err, a2a.ErrInvalidRequest)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		defer c.closeBody(ctx, resp)
		return nil, rest.DecodeError(resp)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, result any) error {
	resp, err := c.send(ctx, method, path, payload, "application/json")
	if err != nil {
		return err
	}
	defer c.closeBody(ctx, resp)

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) streamEvents(ctx context.Context, path string, payload any) iter.Seq2[a2a.Event, error] {
	return func(yield func(a2a.Event, error) bool) {
		resp, err := c.send(ctx, http.MethodPost, path, payload, sse.ContentType)
		if err != nil {
			yield(nil, err)
			return
		}
		defer c.closeBody(ctx, resp)

		for data, err := range sse.ParseDataStream(resp.Body) {
			if err != nil {
				yield(nil, err)
				return
			}
			var frame rest.EventFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				yield(nil, fmt.Errorf("malformed event frame: %w", err))
				return
			}
			event, err := frame.Event()
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		log.Warn(log.WithLogger(ctx, c.logger), "failed to close response body", "error", err)
	}
}
