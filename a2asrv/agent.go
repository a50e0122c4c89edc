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

	"github.com/agentwire/a2a-go/a2a"
)

// MessageHandler is the external agent computation: it turns an inbound
// message into an outbound agent message. Implementations may perform
// arbitrary external work, including network calls to a model backend, and
// should honor ctx cancellation.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message *a2a.Message) (*a2a.Message, error)
}

// MessageHandlerFn adapts a function to the MessageHandler interface.
type MessageHandlerFn func(ctx context.Context, message *a2a.Message) (*a2a.Message, error)

func (f MessageHandlerFn) HandleMessage(ctx context.Context, message *a2a.Message) (*a2a.Message, error) {
	return f(ctx, message)
}

// InputRequiredError is returned by a MessageHandler to pause the task in
// the input-required state instead of completing it. The task resumes
// through the next message send. Message, if set, is relayed to the client
// as the task status message and recorded in the history.
type InputRequiredError struct {
	Message *a2a.Message
}

func (e *InputRequiredError) Error() string {
	return "agent requires more input"
}

// RequireInput is a convenience constructor for an InputRequiredError
// carrying a plain-text prompt.
func RequireInput(prompt string) *InputRequiredError {
	return &InputRequiredError{Message: a2a.NewAgentTextMessage(prompt)}
}

// AgentCardProducer produces the capability manifest for an agent endpoint.
type AgentCardProducer interface {
	Card(ctx context.Context, agentURL string) (*a2a.AgentCard, error)
}

// AgentCardProducerFn adapts a function to the AgentCardProducer interface.
type AgentCardProducerFn func(ctx context.Context, agentURL string) (*a2a.AgentCard, error)

func (f AgentCardProducerFn) Card(ctx context.Context, agentURL string) (*a2a.AgentCard, error) {
	return f(ctx, agentURL)
}

// StaticAgentCard returns an AgentCardProducer serving a fixed card with the
// URL field set per request.
func StaticAgentCard(card a2a.AgentCard) AgentCardProducer {
	return AgentCardProducerFn(func(ctx context.Context, agentURL string) (*a2a.AgentCard, error) {
		result := card
		if result.URL == "" {
			result.URL = agentURL
		}
		return &result, nil
	})
}
