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

// TypeKind identifies the type of a field. The zero value, TypeInvalid, is
// never produced for a successfully parsed field; it marks a FieldType that
// was never assigned.
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypeDouble
	TypeFloat
	TypeInt32
	TypeInt64
	TypeUint32
	TypeUint64
	TypeSint32
	TypeSint64
	TypeFixed32
	TypeFixed64
	TypeSfixed32
	TypeSfixed64
	TypeBool
	TypeString
	TypeBytes
	// TypeMessageOrEnum is a reference to a named message or enum. Which of
	// the two it is cannot be known without the rest of the schema.
	TypeMessageOrEnum
)

var scalarKeywords = map[TypeKind]string{
	TypeDouble:   "double",
	TypeFloat:    "float",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeUint32:   "uint32",
	TypeUint64:   "uint64",
	TypeSint32:   "sint32",
	TypeSint64:   "sint64",
	TypeFixed32:  "fixed32",
	TypeFixed64:  "fixed64",
	TypeSfixed32: "sfixed32",
	TypeSfixed64: "sfixed64",
	TypeBool:     "bool",
	TypeString:   "string",
	TypeBytes:    "bytes",
}

var scalarKinds = func() map[string]TypeKind {
	m := make(map[string]TypeKind, len(scalarKeywords))
	for k, v := range scalarKeywords {
		m[v] = k
	}
	return m
}()

// ScalarKind returns the kind named by the given scalar type keyword, such
// as "int64". The second result is false if keyword is not one of the
// fifteen scalar types.
func ScalarKind(keyword string) (TypeKind, bool) {
	k, ok := scalarKinds[keyword]
	return k, ok
}

// String returns the proto keyword for scalar kinds.
func (k TypeKind) String() string {
	if s, ok := scalarKeywords[k]; ok {
		return s
	}
	if k == TypeMessageOrEnum {
		return "message_or_enum"
	}
	return "<invalid>"
}

// IsScalar reports whether k is one of the fifteen scalar kinds.
func (k TypeKind) IsScalar() bool {
	_, ok := scalarKeywords[k]
	return ok
}

// FieldType is the type of a normal, oneof or map value field.
type FieldType struct {
	Kind TypeKind
	// Name is the referenced type name, exactly as written, when Kind is
	// TypeMessageOrEnum. It is empty for all other kinds.
	Name string
}

// Scalar returns the FieldType for a scalar kind.
func Scalar(k TypeKind) FieldType {
	return FieldType{Kind: k}
}

// MessageOrEnum returns a FieldType that refers to the named type.
func MessageOrEnum(name string) FieldType {
	return FieldType{Kind: TypeMessageOrEnum, Name: name}
}

// IsValid reports whether t was assigned.
func (t FieldType) IsValid() bool {
	if t.Kind == TypeMessageOrEnum {
		return t.Name != ""
	}
	return t.Kind.IsScalar()
}

// String returns the type as it would be written in source.
func (t FieldType) String() string {
	if t.Kind == TypeMessageOrEnum {
		return t.Name
	}
	return t.Kind.String()
}

// MapKeyType is the type of a map key. Only integral types, bool and string
// may be used as keys. The zero value, KeyInvalid, marks an unassigned key.
type MapKeyType int

const (
	KeyInvalid MapKeyType = iota
	KeyInt32
	KeyInt64
	KeyUint32
	KeyUint64
	KeySint32
	KeySint64
	KeyFixed32
	KeyFixed64
	KeySfixed32
	KeySfixed64
	KeyBool
	KeyString
)

var keyKinds = map[MapKeyType]TypeKind{
	KeyInt32:    TypeInt32,
	KeyInt64:    TypeInt64,
	KeyUint32:   TypeUint32,
	KeyUint64:   TypeUint64,
	KeySint32:   TypeSint32,
	KeySint64:   TypeSint64,
	KeyFixed32:  TypeFixed32,
	KeyFixed64:  TypeFixed64,
	KeySfixed32: TypeSfixed32,
	KeySfixed64: TypeSfixed64,
	KeyBool:     TypeBool,
	KeyString:   TypeString,
}

var keyTypesByKeyword = func() map[string]MapKeyType {
	m := make(map[string]MapKeyType, len(keyKinds))
	for k, v := range keyKinds {
		m[v.String()] = k
	}
	return m
}()

// KeyType returns the map key type named by keyword. The second result is
// false for anything that is not a legal key type, including the scalar
// types double, float and bytes.
func KeyType(keyword string) (MapKeyType, bool) {
	k, ok := keyTypesByKeyword[keyword]
	return k, ok
}

// IsValid reports whether k was assigned.
func (k MapKeyType) IsValid() bool {
	_, ok := keyKinds[k]
	return ok
}

// FieldType widens the key type into the general field type universe. It
// returns the zero FieldType for KeyInvalid.
func (k MapKeyType) FieldType() FieldType {
	return FieldType{Kind: keyKinds[k]}
}

func (k MapKeyType) String() string {
	if kind, ok := keyKinds[k]; ok {
		return kind.String()
	}
	return "<invalid>"
}
