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
	"io"
	"os"
	"strings"

	"github.com/bufbuild/protocompile/ast"
	protoparser "github.com/bufbuild/protocompile/parser"
	"github.com/bufbuild/protocompile/reporter"

	"github.com/bufbuild/protoast/schema"
)

// ParseFile reads the proto source file at path and parses it. The returned
// file's Filename is path.
func ParseFile(path string) (*schema.ProtoFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	text, err := io.ReadAll(f)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	return ParseText(path, string(text))
}

// ParseText parses proto source held in memory. The filename is used only
// to label positions in errors and is stored in the result's Filename.
//
// Parsing stops at the first problem, whether it is a syntax error, a
// construct that is not allowed where it appears, or a number that does
// not fit its type. No partial result is returned.
func ParseText(filename, text string) (*schema.ProtoFile, error) {
	// A nil reporter fails on the first syntax error.
	handler := reporter.NewHandler(nil)
	root, err := protoparser.Parse(filename, strings.NewReader(text), handler)
	if err != nil {
		return nil, &GrammarError{Filename: filename, Err: err}
	}
	b := &builder{root: root}
	return b.buildFile()
}

// builder turns a syntax tree into a schema.ProtoFile. The root is kept to
// look up source text and positions of the nodes being converted.
type builder struct {
	root *ast.FileNode
}

func (b *builder) text(n ast.Node) string {
	return b.root.NodeInfo(n).RawText()
}

func (b *builder) pos(n ast.Node) ast.SourcePos {
	return b.root.NodeInfo(n).Start()
}

func (b *builder) end(n ast.Node) ast.SourcePos {
	return b.root.NodeInfo(n).End()
}

func (b *builder) unexpected(n ast.Node) error {
	return &UnexpectedTokenError{Token: b.text(n), Pos: b.pos(n), EndPos: b.end(n)}
}

func (b *builder) notFound(token string, parent ast.Node) error {
	return &TokenNotFoundError{Token: token, Pos: b.pos(parent), EndPos: b.end(parent)}
}
