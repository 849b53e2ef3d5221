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

package fdp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bufbuild/protocompile/ast"
	protoparser "github.com/bufbuild/protocompile/parser"
	"github.com/bufbuild/protocompile/reporter"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoast/schema"
)

func uninterpretedOptions(opts []schema.Option) ([]*descriptorpb.UninterpretedOption, error) {
	res := make([]*descriptorpb.UninterpretedOption, 0, len(opts))
	for _, opt := range opts {
		uo, err := uninterpretedOption(opt)
		if err != nil {
			return nil, err
		}
		res = append(res, uo)
	}
	return res, nil
}

func uninterpretedOption(opt schema.Option) (*descriptorpb.UninterpretedOption, error) {
	root, node, err := parseOption(opt.Name, opt.Value)
	if err != nil {
		return nil, fmt.Errorf("option %q: %w", opt.Name, err)
	}
	uo := &descriptorpb.UninterpretedOption{}
	for _, part := range node.Name.Parts {
		uo.Name = append(uo.Name, &descriptorpb.UninterpretedOption_NamePart{
			NamePart:    addr(string(part.Name.AsIdentifier())),
			IsExtension: addr(part.IsExtension()),
		})
	}
	if err := setOptionValue(uo, root, node.Val); err != nil {
		return nil, fmt.Errorf("option %q: %w", opt.Name, err)
	}
	return uo, nil
}

// parseOption runs name and value back through the grammar as a file-level
// option statement and returns the resulting node.
func parseOption(name, value string) (*ast.FileNode, *ast.OptionNode, error) {
	source := "syntax = \"proto3\";\noption " + name + " = " + value + ";\n"
	root, err := protoparser.Parse("option.proto", strings.NewReader(source), reporter.NewHandler(nil))
	if err != nil {
		return nil, nil, err
	}
	var opt *ast.OptionNode
	for _, decl := range root.Decls {
		node, ok := decl.(*ast.OptionNode)
		if !ok {
			continue
		}
		if opt != nil {
			return nil, nil, errors.New("more than one option statement")
		}
		opt = node
	}
	if opt == nil {
		return nil, nil, errors.New("missing option statement")
	}
	return root, opt, nil
}

func setOptionValue(uo *descriptorpb.UninterpretedOption, root *ast.FileNode, val ast.ValueNode) error {
	if lit, ok := val.(*ast.MessageLiteralNode); ok {
		text := root.NodeInfo(lit).RawText()
		text = strings.TrimSuffix(strings.TrimPrefix(text, "{"), "}")
		uo.AggregateValue = addr(strings.TrimSpace(text))
		return nil
	}
	switch v := val.Value().(type) {
	case ast.Identifier:
		uo.IdentifierValue = addr(string(v))
	case uint64:
		uo.PositiveIntValue = addr(v)
	case int64:
		uo.NegativeIntValue = addr(v)
	case float64:
		uo.DoubleValue = addr(v)
	case string:
		uo.StringValue = []byte(v)
	default:
		return fmt.Errorf("unsupported value %T", v)
	}
	return nil
}

// unquote decodes one or more adjacent string literals, as they may appear
// in an option value, into a single string.
func unquote(val string) (string, error) {
	_, node, err := parseOption("json_name", val)
	if err != nil {
		return "", err
	}
	str, ok := node.Val.(ast.StringValueNode)
	if !ok {
		return "", fmt.Errorf("expected string literal, got %q", strings.TrimSpace(val))
	}
	return str.AsString(), nil
}
