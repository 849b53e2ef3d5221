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

// Message is a message declaration. Messages nest to arbitrary depth: the
// messages and enums declared in its body are stored in Messages and Enums.
type Message struct {
	Name     string         `yaml:"name"`
	Messages []*Message     `yaml:"messages,omitempty"`
	Enums    []*Enum        `yaml:"enums,omitempty"`
	Options  []Option       `yaml:"options,omitempty"`
	Fields   []MessageField `yaml:"fields,omitempty"`
	Reserved Reserved       `yaml:"reserved,omitempty"`
}

// MessageField is an entry in a message's field list. The concrete type is
// always one of *NormalField, *OneofDefine or *MapField. Code that consumes
// a MessageField should switch over all three.
type MessageField interface {
	// FieldName returns the name of the field, or of the oneof.
	FieldName() string
	messageField()
}

var (
	_ MessageField = (*NormalField)(nil)
	_ MessageField = (*OneofDefine)(nil)
	_ MessageField = (*MapField)(nil)
)

// NormalField is a field with a scalar, message or enum type.
type NormalField struct {
	Repeated bool      `yaml:"repeated,omitempty"`
	Type     FieldType `yaml:"type"`
	Name     string    `yaml:"name"`
	Number   uint32    `yaml:"number"`
	Options  []Option  `yaml:"options,omitempty"`
}

func (f *NormalField) FieldName() string { return f.Name }
func (*NormalField) messageField()       {}

// OneofDefine is a oneof group and its members.
type OneofDefine struct {
	Name    string        `yaml:"name"`
	Options []Option      `yaml:"options,omitempty"`
	Fields  []*OneofField `yaml:"fields,omitempty"`
}

func (o *OneofDefine) FieldName() string { return o.Name }
func (*OneofDefine) messageField()       {}

// OneofField is a member of a oneof. Members cannot be repeated.
type OneofField struct {
	Type    FieldType `yaml:"type"`
	Name    string    `yaml:"name"`
	Number  uint32    `yaml:"number"`
	Options []Option  `yaml:"options,omitempty"`
}

// MapField is a field declared with map<K, V> syntax.
type MapField struct {
	KeyType   MapKeyType `yaml:"key_type"`
	ValueType FieldType  `yaml:"value_type"`
	Name      string     `yaml:"name"`
	Number    uint32     `yaml:"number"`
	Options   []Option   `yaml:"options,omitempty"`
}

func (f *MapField) FieldName() string { return f.Name }
func (*MapField) messageField()       {}
