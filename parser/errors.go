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

package parser

import (
	"errors"
	"fmt"

	"github.com/bufbuild/protocompile/ast"
	"github.com/bufbuild/protocompile/reporter"
)

var (
	// ErrUnexpectedToken is wrapped by every *UnexpectedTokenError.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrTokenNotFound is wrapped by every *TokenNotFoundError.
	ErrTokenNotFound = errors.New("token not found")
)

var (
	_ reporter.ErrorWithPos = (*GrammarError)(nil)
	_ reporter.ErrorWithPos = (*NumericError)(nil)
	_ reporter.ErrorWithPos = (*UnexpectedTokenError)(nil)
	_ reporter.ErrorWithPos = (*TokenNotFoundError)(nil)
)

// IOError is returned by ParseFile when the source file cannot be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// GrammarError is returned when the source is not syntactically valid proto.
// Err is the diagnostic produced by the grammar engine; it is usually a
// reporter.ErrorWithPos.
type GrammarError struct {
	Filename string
	Err      error
}

func (e *GrammarError) Error() string {
	return e.Err.Error()
}

func (e *GrammarError) GetPosition() ast.SourcePos {
	return e.Start()
}

func (e *GrammarError) Start() ast.SourcePos {
	if ewp := e.positioned(); ewp != nil {
		return ewp.Start()
	}
	return ast.UnknownPos(e.Filename)
}

func (e *GrammarError) End() ast.SourcePos {
	if ewp := e.positioned(); ewp != nil {
		return ewp.End()
	}
	return ast.UnknownPos(e.Filename)
}

func (e *GrammarError) positioned() reporter.ErrorWithPos {
	var ewp reporter.ErrorWithPos
	if errors.As(e.Err, &ewp) {
		return ewp
	}
	return nil
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

// NumericError is returned when a field number or enum value cannot be
// represented in the integer type it requires. Err is the *strconv.NumError.
type NumericError struct {
	Pos    ast.SourcePos
	EndPos ast.SourcePos
	Text   string
	Err    error
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("%s: parse int error: %v", e.Pos, e.Err)
}

func (e *NumericError) GetPosition() ast.SourcePos {
	return e.Pos
}

func (e *NumericError) Start() ast.SourcePos {
	return e.Pos
}

func (e *NumericError) End() ast.SourcePos {
	return endPos(e.Pos, e.EndPos)
}

func (e *NumericError) Unwrap() error {
	return e.Err
}

// UnexpectedTokenError is returned when a syntax node is not allowed where
// it appears, or uses a construct that this package does not model (for
// example proto2 groups or extensions). Token is the node's source text;
// Pos and EndPos delimit it.
type UnexpectedTokenError struct {
	Token  string
	Pos    ast.SourcePos
	EndPos ast.SourcePos
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%s: unexpected token: %q", e.Pos, e.Token)
}

func (e *UnexpectedTokenError) GetPosition() ast.SourcePos {
	return e.Pos
}

func (e *UnexpectedTokenError) Start() ast.SourcePos {
	return e.Pos
}

func (e *UnexpectedTokenError) End() ast.SourcePos {
	return endPos(e.Pos, e.EndPos)
}

func (e *UnexpectedTokenError) Unwrap() error {
	return ErrUnexpectedToken
}

// TokenNotFoundError is returned when a required part of a construct is
// missing. Token names the missing part, for example "requestType". Pos is
// the start of the construct that should have contained it and EndPos its
// end.
type TokenNotFoundError struct {
	Token  string
	Pos    ast.SourcePos
	EndPos ast.SourcePos
}

func (e *TokenNotFoundError) Error() string {
	return fmt.Sprintf("%s: token not found: %q", e.Pos, e.Token)
}

func (e *TokenNotFoundError) GetPosition() ast.SourcePos {
	return e.Pos
}

func (e *TokenNotFoundError) Start() ast.SourcePos {
	return e.Pos
}

func (e *TokenNotFoundError) End() ast.SourcePos {
	return endPos(e.Pos, e.EndPos)
}

func (e *TokenNotFoundError) Unwrap() error {
	return ErrTokenNotFound
}

// endPos returns end, or start when no end was recorded.
func endPos(start, end ast.SourcePos) ast.SourcePos {
	if end.Line <= 0 {
		return start
	}
	return end
}
