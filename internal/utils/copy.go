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

package utils

import "encoding/json"

// DeepCopy clones a value through its JSON codec. Protocol types define
// codecs for their closed variant sets, which makes the round trip lossless
// for them, unlike gob or reflection-based copying of interface fields.
func DeepCopy[T any](value *T) (*T, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	copy := new(T)
	if err := json.Unmarshal(data, copy); err != nil {
		return nil, err
	}
	return copy, nil
}
