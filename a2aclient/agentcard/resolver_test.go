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

package agentcard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentwire/a2a-go/a2a"
)

func cardServer(t *testing.T, path string, card *a2a.AgentCard) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(card); err != nil {
			t.Errorf("encode card: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolveWellKnownPath(t *testing.T) {
	t.Parallel()
	want := &a2a.AgentCard{Name: "echo", Version: "1.0.0"}
	server := cardServer(t, "/.well-known/agent-card.json", want)

	resolver := &Resolver{BaseURL: server.URL}
	card, err := resolver.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() = %v, want nil error", err)
	}
	if card.Name != want.Name || card.Version != want.Version {
		t.Errorf("card = %+v, want %+v", card, want)
	}
}

func TestResolveCustomPath(t *testing.T) {
	t.Parallel()
	want := &a2a.AgentCard{Name: "echo", Version: "1.0.0"}
	server := cardServer(t, "/custom/card.json", want)

	resolver := &Resolver{BaseURL: server.URL + "/"}
	card, err := resolver.Resolve(context.Background(), WithPath("/custom/card.json"))
	if err != nil {
		t.Fatalf("Resolve() = %v, want nil error", err)
	}
	if card.Name != want.Name {
		t.Errorf("card name = %q, want %q", card.Name, want.Name)
	}
}

func TestResolveRequestHeader(t *testing.T) {
	t.Parallel()
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(&a2a.AgentCard{Name: "echo"}); err != nil {
			t.Errorf("encode card: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	resolver := &Resolver{BaseURL: server.URL}
	if _, err := resolver.Resolve(context.Background(), WithRequestHeader("Authorization", "Bearer token")); err != nil {
		t.Fatalf("Resolve() = %v, want nil error", err)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer token")
	}
}

func TestResolveNotFound(t *testing.T) {
	t.Parallel()
	server := cardServer(t, "/.well-known/agent-card.json", &a2a.AgentCard{})

	resolver := &Resolver{BaseURL: server.URL}
	if _, err := resolver.Resolve(context.Background(), WithPath("/missing.json")); err == nil {
		t.Fatal("Resolve() = nil error, want HTTP status failure")
	}
}

func TestResolveMalformedCard(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	t.Cleanup(server.Close)

	resolver := &Resolver{BaseURL: server.URL}
	if _, err := resolver.Resolve(context.Background()); err == nil {
		t.Fatal("Resolve() = nil error, want decode failure")
	}
}
