// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schema

// Enum is an enum declaration.
type Enum struct {
	Name     string       `yaml:"name"`
	Options  []Option     `yaml:"options,omitempty"`
	Fields   []*EnumField `yaml:"fields,omitempty"`
	Reserved Reserved     `yaml:"reserved,omitempty"`
}

// EnumField is a single enumerator. Duplicate names and values are not
// detected here.
type EnumField struct {
	Name    string   `yaml:"name"`
	Value   int32    `yaml:"value"`
	Options []Option `yaml:"options,omitempty"`
}
