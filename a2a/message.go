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

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// MessageRole identifies the sender of a Message.
type MessageRole string

const (
	MessageRoleUser  MessageRole = "user"
	MessageRoleAgent MessageRole = "agent"
)

// PartType is the discriminant of the closed Part variant set.
type PartType string

const (
	PartTypeText PartType = "text"
	PartTypeFile PartType = "file"
	PartTypeData PartType = "data"
)

// Part is one unit of content within a Message or Artifact.
// The set of implementations is closed: TextPart, FilePart and DataPart.
// Code interpreting parts must switch exhaustively over these three types.
type Part interface {
	partType() PartType
}

// TextPart carries plain text content.
type TextPart struct {
	// Text is the text content.
	Text string `json:"text"`
	// Metadata is an optional mapping opaque to the protocol.
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (TextPart) partType() PartType { return PartTypeText }

// FileContent describes file content carried inline or by reference.
// Either Bytes (base64) or URI is expected to be set.
type FileContent struct {
	// Name is an optional file name.
	Name string `json:"name,omitempty"`
	// MimeType is the optional MIME type of the content.
	MimeType string `json:"mime_type,omitempty"`
	// Bytes is base64-encoded inline content.
	Bytes string `json:"bytes,omitempty"`
	// URI points at externally hosted content.
	URI string `json:"uri,omitempty"`
}

// FilePart carries file content.
type FilePart struct {
	File     FileContent    `json:"file"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (FilePart) partType() PartType { return PartTypeFile }

// DataPart carries structured data.
type DataPart struct {
	Data     map[string]any `json:"data"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (DataPart) partType() PartType { return PartTypeData }

// ContentParts is an ordered sequence of Part variants. It implements a JSON
// codec which tags every element with a "type" discriminant on the wire.
type ContentParts []Part

func (p TextPart) MarshalJSON() ([]byte, error) {
	type alias TextPart
	return json.Marshal(struct {
		Type PartType `json:"type"`
		alias
	}{Type: PartTypeText, alias: alias(p)})
}

func (p FilePart) MarshalJSON() ([]byte, error) {
	type alias FilePart
	return json.Marshal(struct {
		Type PartType `json:"type"`
		alias
	}{Type: PartTypeFile, alias: alias(p)})
}

func (p DataPart) MarshalJSON() ([]byte, error) {
	type alias DataPart
	return json.Marshal(struct {
		Type PartType `json:"type"`
		alias
	}{Type: PartTypeData, alias: alias(p)})
}

func (parts *ContentParts) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}

	result := make(ContentParts, 0, len(raws))
	for _, raw := range raws {
		part, err := unmarshalPart(raw)
		if err != nil {
			return err
		}
		result = append(result, part)
	}

	*parts = result
	return nil
}

func unmarshalPart(raw json.RawMessage) (Part, error) {
	var tag struct {
		Type PartType `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case PartTypeText:
		var part TextPart
		if err := json.Unmarshal(raw, &part); err != nil {
			return nil, err
		}
		return part, nil
	case PartTypeFile:
		var part FilePart
		if err := json.Unmarshal(raw, &part); err != nil {
			return nil, err
		}
		return part, nil
	case PartTypeData:
		var part DataPart
		if err := json.Unmarshal(raw, &part); err != nil {
			return nil, err
		}
		return part, nil
	default:
		return nil, fmt.Errorf("unknown part type %q", tag.Type)
	}
}

// Message is one exchange unit between a user and an agent.
// A Message is immutable once constructed.
type Message struct {
	// Role identifies the sender.
	Role MessageRole `json:"role"`
	// Parts is the ordered content of the message.
	Parts ContentParts `json:"parts"`
	// MessageID is an optional unique identifier of the message.
	MessageID string `json:"message_id,omitempty"`
	// ContextID is an optional conversation correlation key.
	ContextID string `json:"context_id,omitempty"`
	// Metadata is an optional mapping opaque to the protocol.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewMessage creates a Message with a generated MessageID.
func NewMessage(role MessageRole, parts ...Part) *Message {
	return &Message{
		Role:      role,
		Parts:     ContentParts(parts),
		MessageID: uuid.NewString(),
	}
}

// NewUserTextMessage creates a user Message holding a single TextPart.
func NewUserTextMessage(text string) *Message {
	return NewMessage(MessageRoleUser, TextPart{Text: text})
}

// NewAgentTextMessage creates an agent Message holding a single TextPart.
func NewAgentTextMessage(text string) *Message {
	return NewMessage(MessageRoleAgent, TextPart{Text: text})
}

// TextContent concatenates the text of all TextPart elements of the message.
// File and data parts do not contribute to the result.
func (m *Message) TextContent() string {
	var text string
	for _, part := range m.Parts {
		switch p := part.(type) {
		case TextPart:
			text += p.Text
		case FilePart, DataPart:
			// not textual
		}
	}
	return text
}
