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

// Package parser converts proto3 source into the model defined in package
// schema.
//
// Tokenizing and the grammar itself are handled by the protocompile parser,
// which yields a syntax tree. This package walks that tree top-down and
// builds schema values from it. The walk is strict: every declaration must be
// one that the schema can represent at that position, otherwise parsing
// fails with an *UnexpectedTokenError that points at the offending source.
// Constructs that are valid protobuf but outside proto3 as modeled here,
// such as groups, extensions and proto2 field labels, are rejected the same
// way rather than dropped.
//
// All errors other than *IOError implement reporter.ErrorWithPos. The kinds
// can be told apart with errors.As, and the token errors also wrap the
// ErrUnexpectedToken and ErrTokenNotFound sentinels.
//
// Parsing uses no shared state, so files may be parsed concurrently.
package parser
