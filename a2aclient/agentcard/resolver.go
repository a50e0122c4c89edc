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

// Package agentcard fetches agent capability manifests from their well-known
// discovery location.
package agentcard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/agentwire/a2a-go/a2a"
)

const defaultAgentCardPath = "/.well-known/agent-card.json"

// Resolver fetches an AgentCard from an agent's base URL.
type Resolver struct {
	// BaseURL is the agent origin, without the card path.
	BaseURL string
	// HTTPClient, when nil, falls back to http.DefaultClient.
	HTTPClient *http.Client
}

// ResolveOption customizes a single Resolve call.
type ResolveOption func(r *resolveRequest)

type resolveRequest struct {
	path    string
	headers map[string]string
}

// WithPath makes Resolve fetch from the provided path relative to BaseURL
// instead of the well-known default.
func WithPath(path string) ResolveOption {
	return func(r *resolveRequest) {
		r.path = path
	}
}

// WithRequestHeader attaches an HTTP header to the fetch, e.g. for
// authenticated card endpoints.
func WithRequestHeader(key, value string) ResolveOption {
	return func(r *resolveRequest) {
		r.headers[key] = value
	}
}

// Resolve fetches and decodes the agent's card. By default it reads
// /.well-known/agent-card.json under BaseURL.
func (r *Resolver) Resolve(ctx context.Context, opts ...ResolveOption) (*a2a.AgentCard, error) {
	request := &resolveRequest{
		path:    defaultAgentCardPath,
		headers: map[string]string{},
	}
	for _, opt := range opts {
		opt(request)
	}

	cardURL := strings.TrimSuffix(r.BaseURL, "/") + request.path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cardURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create card request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range request.headers {
		req.Header.Set(key, value)
	}

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch agent card from %s: %w", cardURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agent card fetch from %s returned HTTP %d", cardURL, resp.StatusCode)
	}

	var card a2a.AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("malformed agent card at %s: %w", cardURL, err)
	}
	return &card, nil
}
