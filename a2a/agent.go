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

package a2a

// AgentCapabilities declares optional protocol capabilities supported by an agent.
type AgentCapabilities struct {
	// Streaming indicates support for Server-Sent Events streaming responses.
	Streaming bool `json:"streaming"`
	// PushNotifications indicates support for push notification delivery.
	PushNotifications bool `json:"push_notifications"`
	// StateTransitionHistory indicates the agent records a history of state
	// transitions for a task.
	StateTransitionHistory bool `json:"state_transition_history"`
}

// AgentProvider identifies the organization operating an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url,omitempty"`
}

// AgentAuthentication describes authentication requirements of an agent endpoint.
type AgentAuthentication struct {
	// Schemes lists supported authentication schemes.
	Schemes []string `json:"schemes"`
	// Credentials optionally carries scheme-specific credential material.
	Credentials string `json:"credentials,omitempty"`
}

// AgentSkill describes one distinct capability an agent can perform.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	InputModes  []string `json:"input_modes,omitempty"`
	OutputModes []string `json:"output_modes,omitempty"`
}

// AgentCard is a self-describing manifest for an agent: its identity,
// capabilities, skills and the endpoint it is reachable at.
type AgentCard struct {
	// Name is a human-readable agent name.
	Name string `json:"name"`
	// Description assists users and other agents in understanding the
	// agent's purpose.
	Description string `json:"description,omitempty"`
	// URL is the endpoint the agent serves the protocol at.
	URL string `json:"url"`
	// Provider optionally identifies the operating organization.
	Provider *AgentProvider `json:"provider,omitempty"`
	// Version is the agent version.
	Version string `json:"version"`
	// DocumentationURL optionally points at agent documentation.
	DocumentationURL string `json:"documentation_url,omitempty"`
	// Capabilities declares the agent's optional protocol capabilities.
	Capabilities AgentCapabilities `json:"capabilities"`
	// Authentication optionally declares endpoint authentication requirements.
	Authentication *AgentAuthentication `json:"authentication,omitempty"`
	// DefaultInputModes is the default set of supported input modes.
	DefaultInputModes []string `json:"default_input_modes"`
	// DefaultOutputModes is the default set of supported output modes.
	DefaultOutputModes []string `json:"default_output_modes"`
	// Skills lists the agent's distinct capabilities.
	Skills []AgentSkill `json:"skills"`
}
