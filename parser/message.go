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
	"math"

	"github.com/bufbuild/protocompile/ast"

	"github.com/bufbuild/protoast/schema"
)

func (b *builder) buildMessage(n *ast.MessageNode) (*schema.Message, error) {
	if n.Name == nil {
		return nil, b.notFound("messageName", n)
	}
	msg := &schema.Message{Name: n.Name.Val}
	for _, decl := range n.Decls {
		switch decl := decl.(type) {
		case *ast.FieldNode:
			fld, err := b.buildNormalField(decl)
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, fld)
		case *ast.MapFieldNode:
			fld, err := b.buildMapField(decl)
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, fld)
		case *ast.OneofNode:
			oo, err := b.buildOneof(decl)
			if err != nil {
				return nil, err
			}
			msg.Fields = append(msg.Fields, oo)
		case *ast.EnumNode:
			en, err := b.buildEnum(decl)
			if err != nil {
				return nil, err
			}
			msg.Enums = append(msg.Enums, en)
		case *ast.MessageNode:
			nested, err := b.buildMessage(decl)
			if err != nil {
				return nil, err
			}
			msg.Messages = append(msg.Messages, nested)
		case *ast.OptionNode:
			opt, err := b.buildOption(decl)
			if err != nil {
				return nil, err
			}
			msg.Options = append(msg.Options, opt)
		case *ast.ReservedNode:
			if err := b.addReserved(&msg.Reserved, decl, 0, math.MaxUint32); err != nil {
				return nil, err
			}
		case *ast.EmptyDeclNode:
		default:
			// groups, extensions, extension ranges
			return nil, b.unexpected(decl)
		}
	}
	return msg, nil
}

func (b *builder) buildNormalField(n *ast.FieldNode) (*schema.NormalField, error) {
	fld := &schema.NormalField{}
	if n.Label.IsPresent() {
		if !n.Label.Repeated {
			// optional and required are proto2 labels
			return nil, b.unexpected(n.Label.KeywordNode)
		}
		fld.Repeated = true
	}
	var err error
	if fld.Type, err = b.buildFieldType(n, n.FldType); err != nil {
		return nil, err
	}
	if fld.Name, fld.Number, err = b.fieldNameAndNumber(n, n.Name, n.Tag); err != nil {
		return nil, err
	}
	if fld.Options, err = b.buildCompactOptions(n.Options); err != nil {
		return nil, err
	}
	return fld, nil
}

func (b *builder) fieldNameAndNumber(parent ast.Node, name *ast.IdentNode, tag *ast.UintLiteralNode) (string, uint32, error) {
	if name == nil {
		return "", 0, b.notFound("fieldName", parent)
	}
	if tag == nil {
		return "", 0, b.notFound("fieldNumber", parent)
	}
	num, err := b.parseUint(tag, 32)
	if err != nil {
		return "", 0, err
	}
	return name.Val, uint32(num), nil
}

// buildFieldType resolves a field's type name. The fifteen scalar keywords
// map to their kinds; every other name is kept as a reference to a message
// or enum, to be resolved by whoever has the whole schema.
func (b *builder) buildFieldType(parent ast.Node, n ast.IdentValueNode) (schema.FieldType, error) {
	if n == nil {
		return schema.FieldType{}, b.notFound("normalType", parent)
	}
	name := string(n.AsIdentifier())
	if kind, ok := schema.ScalarKind(name); ok {
		return schema.Scalar(kind), nil
	}
	return schema.MessageOrEnum(name), nil
}

// buildMapKeyType resolves a map key type. Only integral kinds, bool and
// string are accepted; double, float, bytes and message or enum names are
// rejected at the key's position. The grammar already refuses those keys in
// parsed source, so this only fires for trees built by hand.
func (b *builder) buildMapKeyType(parent ast.Node, n *ast.IdentNode) (schema.MapKeyType, error) {
	if n == nil {
		return schema.KeyInvalid, b.notFound("keyType", parent)
	}
	key, ok := schema.KeyType(n.Val)
	if !ok {
		return schema.KeyInvalid, b.unexpected(n)
	}
	return key, nil
}

func (b *builder) buildMapField(n *ast.MapFieldNode) (*schema.MapField, error) {
	if n.MapType == nil {
		return nil, b.notFound("mapType", n)
	}
	fld := &schema.MapField{}
	var err error
	if fld.KeyType, err = b.buildMapKeyType(n.MapType, n.MapType.KeyType); err != nil {
		return nil, err
	}
	if fld.ValueType, err = b.buildFieldType(n.MapType, n.MapType.ValueType); err != nil {
		return nil, err
	}
	if fld.Name, fld.Number, err = b.fieldNameAndNumber(n, n.Name, n.Tag); err != nil {
		return nil, err
	}
	if fld.Options, err = b.buildCompactOptions(n.Options); err != nil {
		return nil, err
	}
	return fld, nil
}

func (b *builder) buildOneof(n *ast.OneofNode) (*schema.OneofDefine, error) {
	if n.Name == nil {
		return nil, b.notFound("oneofName", n)
	}
	oo := &schema.OneofDefine{Name: n.Name.Val}
	for _, decl := range n.Decls {
		switch decl := decl.(type) {
		case *ast.FieldNode:
			fld, err := b.buildOneofField(decl)
			if err != nil {
				return nil, err
			}
			oo.Fields = append(oo.Fields, fld)
		case *ast.OptionNode:
			opt, err := b.buildOption(decl)
			if err != nil {
				return nil, err
			}
			oo.Options = append(oo.Options, opt)
		default:
			return nil, b.unexpected(decl)
		}
	}
	return oo, nil
}

func (b *builder) buildOneofField(n *ast.FieldNode) (*schema.OneofField, error) {
	if n.Label.IsPresent() {
		return nil, b.unexpected(n.Label.KeywordNode)
	}
	fld := &schema.OneofField{}
	var err error
	if fld.Type, err = b.buildFieldType(n, n.FldType); err != nil {
		return nil, err
	}
	if fld.Name, fld.Number, err = b.fieldNameAndNumber(n, n.Name, n.Tag); err != nil {
		return nil, err
	}
	if fld.Options, err = b.buildCompactOptions(n.Options); err != nil {
		return nil, err
	}
	return fld, nil
}
