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

// Service is a service declaration.
type Service struct {
	Name    string   `yaml:"name"`
	Options []Option `yaml:"options,omitempty"`
	RPCs    []*RPC   `yaml:"rpcs,omitempty"`
}

// RPC is a method of a service. Request and Response are type names as
// written in source; they are not resolved.
type RPC struct {
	Name            string   `yaml:"name"`
	Request         string   `yaml:"request"`
	Response        string   `yaml:"response"`
	ClientStreaming bool     `yaml:"client_streaming,omitempty"`
	ServerStreaming bool     `yaml:"server_streaming,omitempty"`
	Options         []Option `yaml:"options,omitempty"`
}
