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

import (
	"gopkg.in/yaml.v3"
)

var (
	_ yaml.Marshaler = FieldType{}
	_ yaml.Marshaler = MapKeyType(0)
	_ yaml.Marshaler = ImportType(0)
	_ yaml.Marshaler = (*NormalField)(nil)
	_ yaml.Marshaler = (*OneofDefine)(nil)
	_ yaml.Marshaler = (*MapField)(nil)
)

// MarshalYAML renders the type the way it is written in source.
func (t FieldType) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (k MapKeyType) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (t ImportType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// The aliases below drop the MarshalYAML methods so that the variants can be
// inlined next to their "kind" discriminator without recursing.
type (
	normalFieldYAML NormalField
	oneofYAML       OneofDefine
	mapFieldYAML    MapField
)

func (f *NormalField) MarshalYAML() (any, error) {
	return struct {
		Kind            string `yaml:"kind"`
		normalFieldYAML `yaml:",inline"`
	}{"normal", normalFieldYAML(*f)}, nil
}

func (o *OneofDefine) MarshalYAML() (any, error) {
	return struct {
		Kind      string `yaml:"kind"`
		oneofYAML `yaml:",inline"`
	}{"oneof", oneofYAML(*o)}, nil
}

func (f *MapField) MarshalYAML() (any, error) {
	return struct {
		Kind         string `yaml:"kind"`
		mapFieldYAML `yaml:",inline"`
	}{"map", mapFieldYAML(*f)}, nil
}
