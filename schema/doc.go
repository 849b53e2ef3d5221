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

// Package schema defines the types that model a parsed proto3 source file.
//
// The root of the model is a *ProtoFile. It exclusively owns its messages,
// enums and services, which in turn own their nested children: the model is
// always a tree, never a graph. Values are populated once by the parser and
// are not modified afterwards.
//
// Type references (field types, RPC request and response types) are kept as
// the names that appear in source. Nothing in this package resolves them to
// the message or enum they refer to, since that requires knowledge of every
// file in the schema.
//
// Option values are recorded as the raw source text of the constant, for
// example `"com.example.foo"` (with quotes) or `true`. Interpreting them is
// left to consumers; see package fdp for one such interpretation.
package schema
