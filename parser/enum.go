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
	"strconv"

	"github.com/bufbuild/protocompile/ast"

	"github.com/bufbuild/protoast/schema"
)

func (b *builder) buildEnum(n *ast.EnumNode) (*schema.Enum, error) {
	if n.Name == nil {
		return nil, b.notFound("enumName", n)
	}
	en := &schema.Enum{Name: n.Name.Val}
	for _, decl := range n.Decls {
		switch decl := decl.(type) {
		case *ast.OptionNode:
			opt, err := b.buildOption(decl)
			if err != nil {
				return nil, err
			}
			en.Options = append(en.Options, opt)
		case *ast.EnumValueNode:
			val, err := b.buildEnumValue(decl)
			if err != nil {
				return nil, err
			}
			en.Fields = append(en.Fields, val)
		case *ast.ReservedNode:
			if err := b.addReserved(&en.Reserved, decl, math.MinInt32, math.MaxInt32); err != nil {
				return nil, err
			}
		case *ast.EmptyDeclNode:
		default:
			return nil, b.unexpected(decl)
		}
	}
	return en, nil
}

func (b *builder) buildEnumValue(n *ast.EnumValueNode) (*schema.EnumField, error) {
	if n.Name == nil {
		return nil, b.notFound("ident", n)
	}
	if n.Number == nil {
		return nil, b.notFound("intLit", n)
	}
	val, err := b.parseInt(n.Number, 32)
	if err != nil {
		return nil, err
	}
	opts, err := b.buildCompactOptions(n.Options)
	if err != nil {
		return nil, err
	}
	return &schema.EnumField{
		Name:    n.Name.Val,
		Value:   int32(val),
		Options: opts,
	}, nil
}

// addReserved records a reserved statement. Range bounds must fit between
// lo and hi, the limits of the numbers they reserve.
func (b *builder) addReserved(res *schema.Reserved, n *ast.ReservedNode, lo, hi int64) error {
	for _, r := range n.Ranges {
		start, err := b.parseBound(r.StartVal, lo, hi)
		if err != nil {
			return err
		}
		rng := schema.ReservedRange{Start: start, End: start}
		switch {
		case r.Max != nil:
			rng.End, rng.Max = 0, true
		case r.EndVal != nil:
			if rng.End, err = b.parseBound(r.EndVal, lo, hi); err != nil {
				return err
			}
		}
		res.Ranges = append(res.Ranges, rng)
	}
	for _, name := range n.Names {
		res.Names = append(res.Names, name.AsString())
	}
	return nil
}

func (b *builder) parseBound(n ast.IntValueNode, lo, hi int64) (int64, error) {
	v, err := b.parseInt(n, 64)
	if err != nil {
		return 0, err
	}
	if v < lo || v > hi {
		return 0, &NumericError{
			Pos:    b.pos(n),
			EndPos: b.end(n),
			Text:   b.literal(n),
			Err:    &strconv.NumError{Func: "ParseInt", Num: b.literal(n), Err: strconv.ErrRange},
		}
	}
	return v, nil
}

// parseInt parses a signed integer literal of the given bit size. Proto
// literals are decimal, octal (leading 0) or hex (leading 0x).
func (b *builder) parseInt(n ast.IntValueNode, bitSize int) (int64, error) {
	text := b.literal(n)
	v, err := strconv.ParseInt(text, 0, bitSize)
	if err != nil {
		return 0, &NumericError{Pos: b.pos(n), EndPos: b.end(n), Text: text, Err: err}
	}
	return v, nil
}

func (b *builder) parseUint(n ast.Node, bitSize int) (uint64, error) {
	text := b.literal(n)
	v, err := strconv.ParseUint(text, 0, bitSize)
	if err != nil {
		return 0, &NumericError{Pos: b.pos(n), EndPos: b.end(n), Text: text, Err: err}
	}
	return v, nil
}

// literal returns the text of a numeric literal. A negative literal is two
// tokens, which may be separated by whitespace or comments in source, so
// its text is rebuilt from the sign and the magnitude.
func (b *builder) literal(n ast.Node) string {
	if neg, ok := n.(*ast.NegativeIntLiteralNode); ok && neg.Uint != nil {
		return "-" + b.text(neg.Uint)
	}
	return b.text(n)
}
