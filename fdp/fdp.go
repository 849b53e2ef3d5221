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

// Package fdp converts a parsed file into a FileDescriptorProto.
//
// The conversion works on a single file. Type references that name a
// message or enum declared in the same file are resolved using protobuf's
// scoping rules; all others are left as written, with no type set, for a
// linker to resolve later. Options are not interpreted: they are stored as
// uninterpreted options, except for the json_name pseudo-option.
//
// A message's nested_type list holds its nested messages in declaration
// order, followed by one entry message per map field in field order. protoc
// instead places each entry where its map field appears among the nested
// messages; a parsed file does not record that interleaving, so the two
// orders differ when a map field is declared before a nested message.
package fdp

import (
	"fmt"
	"math"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoast/internal/cases"
	"github.com/bufbuild/protoast/schema"
	"github.com/bufbuild/protoast/walk"
)

// maxFieldNumber is the largest field number protobuf allows.
const maxFieldNumber = 536870911

var scalarTypes = map[schema.TypeKind]descriptorpb.FieldDescriptorProto_Type{
	schema.TypeDouble:   descriptorpb.FieldDescriptorProto_TYPE_DOUBLE,
	schema.TypeFloat:    descriptorpb.FieldDescriptorProto_TYPE_FLOAT,
	schema.TypeInt32:    descriptorpb.FieldDescriptorProto_TYPE_INT32,
	schema.TypeInt64:    descriptorpb.FieldDescriptorProto_TYPE_INT64,
	schema.TypeUint32:   descriptorpb.FieldDescriptorProto_TYPE_UINT32,
	schema.TypeUint64:   descriptorpb.FieldDescriptorProto_TYPE_UINT64,
	schema.TypeSint32:   descriptorpb.FieldDescriptorProto_TYPE_SINT32,
	schema.TypeSint64:   descriptorpb.FieldDescriptorProto_TYPE_SINT64,
	schema.TypeFixed32:  descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
	schema.TypeFixed64:  descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
	schema.TypeSfixed32: descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
	schema.TypeSfixed64: descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
	schema.TypeBool:     descriptorpb.FieldDescriptorProto_TYPE_BOOL,
	schema.TypeString:   descriptorpb.FieldDescriptorProto_TYPE_STRING,
	schema.TypeBytes:    descriptorpb.FieldDescriptorProto_TYPE_BYTES,
}

// FromFile converts file into a descriptor proto. It fails if the file
// holds values the parser would never produce, such as an unassigned field
// type, or option text that is not a valid option name or value.
func FromFile(file *schema.ProtoFile) (*descriptorpb.FileDescriptorProto, error) {
	g := &generator{symbols: map[string]bool{}, packages: map[string]struct{}{}}
	for pkg := file.Package; pkg != ""; {
		g.packages[pkg] = struct{}{}
		i := strings.LastIndexByte(pkg, '.')
		if i < 0 {
			break
		}
		pkg = pkg[:i]
	}
	// Record every message and enum so that references can be resolved.
	err := walk.File(file, func(name string, elem walk.Element) error {
		switch elem.(type) {
		case *schema.Message:
			g.symbols[name] = true
		case *schema.Enum:
			g.symbols[name] = false
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g.file(file)
}

type generator struct {
	pkg string
	// symbols maps the full name of each message (true) and enum (false)
	// declared in the file.
	symbols map[string]bool
	// packages holds the file's package and each of its prefixes.
	packages map[string]struct{}
}

func (g *generator) file(file *schema.ProtoFile) (*descriptorpb.FileDescriptorProto, error) {
	g.pkg = file.Package
	fdp := &descriptorpb.FileDescriptorProto{
		Name:   addr(file.Filename),
		Syntax: addr("proto3"),
	}
	if file.Package != "" {
		fdp.Package = addr(file.Package)
	}
	for i, imp := range file.Imports {
		fdp.Dependency = append(fdp.Dependency, imp.Path)
		if imp.Type == schema.ImportPublic {
			fdp.PublicDependency = append(fdp.PublicDependency, int32(i))
		}
	}
	if len(file.Options) > 0 {
		opts, err := uninterpretedOptions(file.Options)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", file.Filename, err)
		}
		fdp.Options = &descriptorpb.FileOptions{UninterpretedOption: opts}
	}

	scope := g.pkg
	for _, msg := range file.Messages {
		mdp, err := g.message(scope, msg)
		if err != nil {
			return nil, err
		}
		fdp.MessageType = append(fdp.MessageType, mdp)
	}
	for _, en := range file.Enums {
		edp, err := g.enum(qualify(scope, en.Name), en)
		if err != nil {
			return nil, err
		}
		fdp.EnumType = append(fdp.EnumType, edp)
	}
	for _, svc := range file.Services {
		sdp, err := g.service(scope, svc)
		if err != nil {
			return nil, err
		}
		fdp.Service = append(fdp.Service, sdp)
	}
	return fdp, nil
}

func (g *generator) message(scope string, msg *schema.Message) (*descriptorpb.DescriptorProto, error) {
	name := qualify(scope, msg.Name)
	mdp := &descriptorpb.DescriptorProto{Name: addr(msg.Name)}
	if len(msg.Options) > 0 {
		opts, err := uninterpretedOptions(msg.Options)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", name, err)
		}
		mdp.Options = &descriptorpb.MessageOptions{UninterpretedOption: opts}
	}
	// Map entry messages are appended after these, as fields are converted.
	for _, nested := range msg.Messages {
		nmdp, err := g.message(name, nested)
		if err != nil {
			return nil, err
		}
		mdp.NestedType = append(mdp.NestedType, nmdp)
	}
	for _, en := range msg.Enums {
		edp, err := g.enum(qualify(name, en.Name), en)
		if err != nil {
			return nil, err
		}
		mdp.EnumType = append(mdp.EnumType, edp)
	}

	for _, fld := range msg.Fields {
		switch fld := fld.(type) {
		case *schema.NormalField:
			label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
			if fld.Repeated {
				label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
			}
			fdp, err := g.field(name, fld.Name, fld.Number, label, fld.Type, fld.Options)
			if err != nil {
				return nil, err
			}
			mdp.Field = append(mdp.Field, fdp)
		case *schema.MapField:
			fdp, entry, err := g.mapField(name, fld)
			if err != nil {
				return nil, err
			}
			mdp.Field = append(mdp.Field, fdp)
			mdp.NestedType = append(mdp.NestedType, entry)
		case *schema.OneofDefine:
			index := int32(len(mdp.OneofDecl))
			odp := &descriptorpb.OneofDescriptorProto{Name: addr(fld.Name)}
			if len(fld.Options) > 0 {
				opts, err := uninterpretedOptions(fld.Options)
				if err != nil {
					return nil, fmt.Errorf("oneof %s: %w", qualify(name, fld.Name), err)
				}
				odp.Options = &descriptorpb.OneofOptions{UninterpretedOption: opts}
			}
			mdp.OneofDecl = append(mdp.OneofDecl, odp)
			for _, member := range fld.Fields {
				fdp, err := g.field(name, member.Name, member.Number,
					descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, member.Type, member.Options)
				if err != nil {
					return nil, err
				}
				fdp.OneofIndex = addr(index)
				mdp.Field = append(mdp.Field, fdp)
			}
		default:
			return nil, fmt.Errorf("message %s: unknown field kind %T", name, fld)
		}
	}

	for _, r := range msg.Reserved.Ranges {
		end := r.End + 1
		if r.Max {
			end = maxFieldNumber + 1
		}
		if r.Start > maxFieldNumber || end > maxFieldNumber+1 {
			return nil, fmt.Errorf("message %s: reserved range %d to %d out of range", name, r.Start, end-1)
		}
		mdp.ReservedRange = append(mdp.ReservedRange, &descriptorpb.DescriptorProto_ReservedRange{
			Start: addr(int32(r.Start)),
			End:   addr(int32(end)),
		})
	}
	mdp.ReservedName = append(mdp.ReservedName, msg.Reserved.Names...)
	return mdp, nil
}

func (g *generator) field(
	scope, name string,
	number uint32,
	label descriptorpb.FieldDescriptorProto_Label,
	typ schema.FieldType,
	options []schema.Option,
) (*descriptorpb.FieldDescriptorProto, error) {
	qualified := qualify(scope, name)
	if number > math.MaxInt32 {
		return nil, fmt.Errorf("field %s: number %d out of range", qualified, number)
	}
	fdp := &descriptorpb.FieldDescriptorProto{
		Name:     addr(name),
		Number:   addr(int32(number)),
		Label:    label.Enum(),
		JsonName: addr(cases.Converter{Case: cases.Camel, NoLowercase: true}.Convert(name)),
	}
	if err := g.setType(fdp, scope, typ); err != nil {
		return nil, fmt.Errorf("field %s: %w", qualified, err)
	}

	var rest []schema.Option
	for _, opt := range options {
		if opt.Name != "json_name" {
			rest = append(rest, opt)
			continue
		}
		jsonName, err := unquote(opt.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: json_name: %w", qualified, err)
		}
		fdp.JsonName = addr(jsonName)
	}
	if len(rest) > 0 {
		opts, err := uninterpretedOptions(rest)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", qualified, err)
		}
		fdp.Options = &descriptorpb.FieldOptions{UninterpretedOption: opts}
	}
	return fdp, nil
}

// mapField converts a map field into a repeated field of a synthesized
// entry message, named the way protoc names it.
func (g *generator) mapField(scope string, fld *schema.MapField) (*descriptorpb.FieldDescriptorProto, *descriptorpb.DescriptorProto, error) {
	if !fld.KeyType.IsValid() {
		return nil, nil, fmt.Errorf("field %s: invalid map key type", qualify(scope, fld.Name))
	}
	entryName := cases.Converter{Case: cases.Pascal, NoLowercase: true}.Convert(fld.Name) + "Entry"
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	key, err := g.field(scope, "key", 1, optional, fld.KeyType.FieldType(), nil)
	if err != nil {
		return nil, nil, err
	}
	val, err := g.field(scope, "value", 2, optional, fld.ValueType, nil)
	if err != nil {
		return nil, nil, err
	}
	entry := &descriptorpb.DescriptorProto{
		Name:    addr(entryName),
		Field:   []*descriptorpb.FieldDescriptorProto{key, val},
		Options: &descriptorpb.MessageOptions{MapEntry: addr(true)},
	}

	entryFullName := qualify(scope, entryName)
	g.symbols[entryFullName] = true
	fdp, err := g.field(scope, fld.Name, fld.Number,
		descriptorpb.FieldDescriptorProto_LABEL_REPEATED, schema.MessageOrEnum("."+entryFullName), fld.Options)
	if err != nil {
		return nil, nil, err
	}
	return fdp, entry, nil
}

// setType fills in the type and type name of fdp. References are resolved
// against the symbols of this file, starting in scope and moving outwards.
func (g *generator) setType(fdp *descriptorpb.FieldDescriptorProto, scope string, typ schema.FieldType) error {
	if !typ.IsValid() {
		return fmt.Errorf("invalid field type %q", typ)
	}
	if t, ok := scalarTypes[typ.Kind]; ok {
		fdp.Type = t.Enum()
		return nil
	}
	fullName, isMessage, ok := g.resolve(scope, typ.Name)
	if !ok {
		fdp.TypeName = addr(typ.Name)
		return nil
	}
	fdp.TypeName = addr("." + fullName)
	if isMessage {
		fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE.Enum()
	} else {
		fdp.Type = descriptorpb.FieldDescriptorProto_TYPE_ENUM.Enum()
	}
	return nil
}

// resolve looks name up the way protoc does: a leading dot makes the name
// absolute, otherwise each enclosing scope is tried, innermost first. Only
// the first component of a dotted name is used to pick the scope.
func (g *generator) resolve(scope, name string) (fullName string, isMessage, ok bool) {
	if strings.HasPrefix(name, ".") {
		isMessage, ok = g.symbols[name[1:]]
		return name[1:], isMessage, ok
	}
	first, _, _ := strings.Cut(name, ".")
	for {
		if g.declared(qualify(scope, first)) {
			candidate := qualify(scope, name)
			isMessage, ok = g.symbols[candidate]
			return candidate, isMessage, ok
		}
		if scope == "" {
			return "", false, false
		}
		if i := strings.LastIndexByte(scope, '.'); i >= 0 {
			scope = scope[:i]
		} else {
			scope = ""
		}
	}
}

func (g *generator) declared(name string) bool {
	if _, ok := g.symbols[name]; ok {
		return true
	}
	_, ok := g.packages[name]
	return ok
}

func (g *generator) enum(name string, en *schema.Enum) (*descriptorpb.EnumDescriptorProto, error) {
	edp := &descriptorpb.EnumDescriptorProto{Name: addr(en.Name)}
	if len(en.Options) > 0 {
		opts, err := uninterpretedOptions(en.Options)
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", name, err)
		}
		edp.Options = &descriptorpb.EnumOptions{UninterpretedOption: opts}
	}
	for _, val := range en.Fields {
		vdp := &descriptorpb.EnumValueDescriptorProto{
			Name:   addr(val.Name),
			Number: addr(val.Value),
		}
		if len(val.Options) > 0 {
			opts, err := uninterpretedOptions(val.Options)
			if err != nil {
				return nil, fmt.Errorf("enum value %s.%s: %w", name, val.Name, err)
			}
			vdp.Options = &descriptorpb.EnumValueOptions{UninterpretedOption: opts}
		}
		edp.Value = append(edp.Value, vdp)
	}
	for _, r := range en.Reserved.Ranges {
		end := r.End
		if r.Max {
			end = math.MaxInt32
		}
		edp.ReservedRange = append(edp.ReservedRange, &descriptorpb.EnumDescriptorProto_EnumReservedRange{
			Start: addr(int32(r.Start)),
			End:   addr(int32(end)),
		})
	}
	edp.ReservedName = append(edp.ReservedName, en.Reserved.Names...)
	return edp, nil
}

func (g *generator) service(scope string, svc *schema.Service) (*descriptorpb.ServiceDescriptorProto, error) {
	name := qualify(scope, svc.Name)
	sdp := &descriptorpb.ServiceDescriptorProto{Name: addr(svc.Name)}
	if len(svc.Options) > 0 {
		opts, err := uninterpretedOptions(svc.Options)
		if err != nil {
			return nil, fmt.Errorf("service %s: %w", name, err)
		}
		sdp.Options = &descriptorpb.ServiceOptions{UninterpretedOption: opts}
	}
	for _, rpc := range svc.RPCs {
		mdp := &descriptorpb.MethodDescriptorProto{
			Name:       addr(rpc.Name),
			InputType:  addr(g.methodType(scope, rpc.Request)),
			OutputType: addr(g.methodType(scope, rpc.Response)),
		}
		if rpc.ClientStreaming {
			mdp.ClientStreaming = addr(true)
		}
		if rpc.ServerStreaming {
			mdp.ServerStreaming = addr(true)
		}
		if len(rpc.Options) > 0 {
			opts, err := uninterpretedOptions(rpc.Options)
			if err != nil {
				return nil, fmt.Errorf("method %s.%s: %w", name, rpc.Name, err)
			}
			mdp.Options = &descriptorpb.MethodOptions{UninterpretedOption: opts}
		}
		sdp.Method = append(sdp.Method, mdp)
	}
	return sdp, nil
}

// methodType resolves a request or response type. Method types are looked
// up from the scope that encloses the service.
func (g *generator) methodType(scope, name string) string {
	if fullName, isMessage, ok := g.resolve(scope, name); ok && isMessage {
		return "." + fullName
	}
	return name
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

func addr[T any](v T) *T { return &v }
