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

// ProtoFile is a single parsed .proto source file.
type ProtoFile struct {
	Filename string `yaml:"filename,omitempty"`
	// Package is the dotted package name, or empty if the file has no
	// package declaration.
	Package  string     `yaml:"package,omitempty"`
	Imports  []Import   `yaml:"imports,omitempty"`
	Options  []Option   `yaml:"options,omitempty"`
	Enums    []*Enum    `yaml:"enums,omitempty"`
	Messages []*Message `yaml:"messages,omitempty"`
	Services []*Service `yaml:"services,omitempty"`
}

// ImportType distinguishes the kinds of import statement. The zero value is
// ImportWeak, which is also what an import without a modifier produces.
type ImportType int

const (
	ImportWeak ImportType = iota
	ImportPublic
)

func (t ImportType) String() string {
	switch t {
	case ImportWeak:
		return "weak"
	case ImportPublic:
		return "public"
	default:
		return "<invalid>"
	}
}

// Import is a dependency on another file.
type Import struct {
	Type ImportType `yaml:"type"`
	// Path is the imported file name with the quotes removed.
	Path string `yaml:"path"`
}

// Option is a "name = value" annotation. Both parts are kept exactly as they
// appear in source, e.g. Name `(my_option).a` and Value `"hello world"`.
type Option struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// ReservedRange is a range of reserved numbers. End is inclusive. When Max is
// set, the range was written with the "max" keyword and End is zero.
type ReservedRange struct {
	Start int64 `yaml:"start"`
	End   int64 `yaml:"end,omitempty"`
	Max   bool  `yaml:"max,omitempty"`
}

// Reserved collects the reserved statements of a message or enum.
type Reserved struct {
	Ranges []ReservedRange `yaml:"ranges,omitempty"`
	Names  []string        `yaml:"names,omitempty"`
}

// IsZero reports whether no reserved statement was recorded.
func (r Reserved) IsZero() bool {
	return len(r.Ranges) == 0 && len(r.Names) == 0
}
