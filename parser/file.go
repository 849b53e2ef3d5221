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
	"github.com/bufbuild/protocompile/ast"

	"github.com/bufbuild/protoast/schema"
)

const proto3 = "proto3"

func (b *builder) buildFile() (*schema.ProtoFile, error) {
	if err := b.checkSyntax(); err != nil {
		return nil, err
	}

	file := &schema.ProtoFile{Filename: b.root.Name()}
	for _, decl := range b.root.Decls {
		switch decl := decl.(type) {
		case *ast.ImportNode:
			imp, err := b.buildImport(decl)
			if err != nil {
				return nil, err
			}
			file.Imports = append(file.Imports, imp)
		case *ast.PackageNode:
			if decl.Name == nil {
				return nil, b.notFound("packageName", decl)
			}
			// A second package statement is a grammar error, but if the
			// grammar ever lets one through the last one wins.
			file.Package = string(decl.Name.AsIdentifier())
		case *ast.OptionNode:
			opt, err := b.buildOption(decl)
			if err != nil {
				return nil, err
			}
			file.Options = append(file.Options, opt)
		case *ast.MessageNode:
			msg, err := b.buildMessage(decl)
			if err != nil {
				return nil, err
			}
			file.Messages = append(file.Messages, msg)
		case *ast.EnumNode:
			en, err := b.buildEnum(decl)
			if err != nil {
				return nil, err
			}
			file.Enums = append(file.Enums, en)
		case *ast.ServiceNode:
			svc, err := b.buildService(decl)
			if err != nil {
				return nil, err
			}
			file.Services = append(file.Services, svc)
		case *ast.EmptyDeclNode:
		default:
			return nil, b.unexpected(decl)
		}
	}
	return file, nil
}

// checkSyntax requires a `syntax = "proto3";` declaration. Editions and
// proto2 files are rejected.
func (b *builder) checkSyntax() error {
	if b.root.Edition != nil {
		return b.unexpected(b.root.Edition)
	}
	if b.root.Syntax == nil {
		return b.notFound("syntax", b.root)
	}
	if b.root.Syntax.Syntax == nil {
		return b.notFound("syntax", b.root.Syntax)
	}
	if b.root.Syntax.Syntax.AsString() != proto3 {
		return b.unexpected(b.root.Syntax.Syntax)
	}
	return nil
}

func (b *builder) buildImport(n *ast.ImportNode) (schema.Import, error) {
	var imp schema.Import
	switch {
	case n.Public != nil:
		imp.Type = schema.ImportPublic
	case n.Weak != nil:
		imp.Type = schema.ImportWeak
	}
	if n.Name == nil {
		return schema.Import{}, b.notFound("inner_str", n)
	}
	imp.Path = n.Name.AsString()
	return imp, nil
}

func (b *builder) buildOption(n *ast.OptionNode) (schema.Option, error) {
	if n.Name == nil {
		return schema.Option{}, b.notFound("optionName", n)
	}
	if n.Val == nil {
		return schema.Option{}, b.notFound("constant", n)
	}
	return schema.Option{
		Name:  b.text(n.Name),
		Value: b.text(n.Val),
	}, nil
}

// buildCompactOptions converts the bracketed options that follow fields and
// enum values. opts may be nil.
func (b *builder) buildCompactOptions(opts *ast.CompactOptionsNode) ([]schema.Option, error) {
	var res []schema.Option
	for _, opt := range opts.GetElements() {
		o, err := b.buildOption(opt)
		if err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, nil
}
