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
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protoast/schema"
)

func TestParseFile(t *testing.T) {
	t.Parallel()
	file, err := ParseFile("testdata/roundtrip.proto")
	require.NoError(t, err)

	assert.Equal(t, "testdata/roundtrip.proto", file.Filename)
	assert.Equal(t, "example.hello", file.Package)
	assert.Equal(t, []schema.Import{
		{Type: schema.ImportWeak, Path: "other.proto"},
		{Type: schema.ImportPublic, Path: "google/protobuf/timestamp.proto"},
		{Type: schema.ImportWeak, Path: "legacy.proto"},
	}, file.Imports)
	assert.Equal(t, []schema.Option{
		{Name: "java_package", Value: `"com.example.foo"`},
		{Name: "(my_file_option)", Value: "42"},
	}, file.Options)

	require.Len(t, file.Enums, 2)
	assert.Equal(t, &schema.Enum{
		Name: "AppMgrErrCode",
		Fields: []*schema.EnumField{
			{Name: "Success", Value: 0},
			{Name: "DbFail", Value: 32001},
			{Name: "MissingProtocolId", Value: 32002},
			{Name: "CantChangeIdentifier", Value: 32003},
		},
	}, file.Enums[0])
	assert.Equal(t, &schema.Enum{
		Name:    "EnumAllowingAlias",
		Options: []schema.Option{{Name: "allow_alias", Value: "true"}},
		Fields: []*schema.EnumField{
			{Name: "UNKNOWN", Value: 0},
			{Name: "STARTED", Value: 1},
			{
				Name:    "RUNNING",
				Value:   2,
				Options: []schema.Option{{Name: "(custom_option)", Value: `"hello world"`}},
			},
		},
		Reserved: schema.Reserved{
			Ranges: []schema.ReservedRange{{Start: 5, End: 10}, {Start: 20, End: 20}},
			Names:  []string{"OLD"},
		},
	}, file.Enums[1])

	require.Len(t, file.Messages, 3)
	outer := file.Messages[0]
	assert.Equal(t, "outer", outer.Name)
	assert.Equal(t, []schema.Option{{Name: "(my_option).a", Value: "true"}}, outer.Options)
	assert.Equal(t, []*schema.Message{{
		Name: "inner",
		Fields: []schema.MessageField{
			&schema.NormalField{Type: schema.Scalar(schema.TypeInt64), Name: "ival", Number: 1},
		},
	}}, outer.Messages)
	assert.Equal(t, []schema.MessageField{
		&schema.NormalField{
			Repeated: true,
			Type:     schema.MessageOrEnum("inner"),
			Name:     "inner_message",
			Number:   2,
		},
		&schema.NormalField{
			Type:   schema.MessageOrEnum("EnumAllowingAlias"),
			Name:   "enum_field",
			Number: 3,
		},
		&schema.MapField{
			KeyType:   schema.KeyInt32,
			ValueType: schema.Scalar(schema.TypeString),
			Name:      "my_map",
			Number:    4,
		},
		&schema.OneofDefine{
			Name: "oneof_data",
			Fields: []*schema.OneofField{
				{Type: schema.Scalar(schema.TypeString), Name: "domain", Number: 5},
				{
					Type:    schema.Scalar(schema.TypeString),
					Name:    "ip",
					Number:  6,
					Options: []schema.Option{{Name: "deprecated", Value: "true"}},
				},
			},
		},
	}, outer.Fields)
	assert.Equal(t, schema.Reserved{
		Ranges: []schema.ReservedRange{{Start: 100, Max: true}},
		Names:  []string{"gone"},
	}, outer.Reserved)
	assert.Equal(t, "HelloReq", file.Messages[1].Name)
	assert.Equal(t, "HelloResp", file.Messages[2].Name)

	require.Len(t, file.Services, 1)
	assert.Equal(t, &schema.Service{
		Name:    "hello",
		Options: []schema.Option{{Name: "deprecated", Value: "false"}},
		RPCs: []*schema.RPC{
			{Name: "hello", Request: "HelloReq", Response: "HelloResp"},
			{
				Name:            "watch",
				Request:         "HelloReq",
				Response:        ".example.hello.HelloResp",
				ClientStreaming: true,
				ServerStreaming: true,
				Options:         []schema.Option{{Name: "idempotency_level", Value: "NO_SIDE_EFFECTS"}},
			},
			{Name: "ping", Request: "HelloReq", Response: "HelloResp"},
		},
	}, file.Services[0])
}

func TestParseFileMissing(t *testing.T) {
	t.Parallel()
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.proto"))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseFileReadsFromDisk(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "disk.proto")
	require.NoError(t, os.WriteFile(path, []byte(`syntax = "proto3"; package disk;`), 0o600))
	file, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Filename)
	assert.Equal(t, "disk", file.Package)
}

func TestParseTextScalarField(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `
		syntax = "proto3";
		message M {
			int64 ival = 1;
		}`)
	require.NoError(t, err)
	require.Len(t, file.Messages, 1)
	assert.Equal(t, []schema.MessageField{
		&schema.NormalField{Repeated: false, Type: schema.Scalar(schema.TypeInt64), Name: "ival", Number: 1},
	}, file.Messages[0].Fields)
}

func TestParseTextAllScalarTypes(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3";
message Scalars {
  double a = 1;
  float b = 2;
  int32 c = 3;
  int64 d = 4;
  uint32 e = 5;
  uint64 f = 6;
  sint32 g = 7;
  sint64 h = 8;
  fixed32 i = 9;
  fixed64 j = 10;
  sfixed32 k = 11;
  sfixed64 l = 12;
  bool m = 13;
  string n = 14;
  bytes o = 15;
  foo.Bar p = 16;
}`)
	require.NoError(t, err)
	want := []schema.FieldType{
		schema.Scalar(schema.TypeDouble),
		schema.Scalar(schema.TypeFloat),
		schema.Scalar(schema.TypeInt32),
		schema.Scalar(schema.TypeInt64),
		schema.Scalar(schema.TypeUint32),
		schema.Scalar(schema.TypeUint64),
		schema.Scalar(schema.TypeSint32),
		schema.Scalar(schema.TypeSint64),
		schema.Scalar(schema.TypeFixed32),
		schema.Scalar(schema.TypeFixed64),
		schema.Scalar(schema.TypeSfixed32),
		schema.Scalar(schema.TypeSfixed64),
		schema.Scalar(schema.TypeBool),
		schema.Scalar(schema.TypeString),
		schema.Scalar(schema.TypeBytes),
		schema.MessageOrEnum("foo.Bar"),
	}
	fields := file.Messages[0].Fields
	require.Len(t, fields, len(want))
	for i, fld := range fields {
		normal, ok := fld.(*schema.NormalField)
		require.True(t, ok, "field %d is %T", i, fld)
		assert.Equal(t, want[i], normal.Type, "field %s", normal.Name)
		assert.True(t, normal.Type.IsValid())
	}
}

func TestParseTextImportDefaultsToWeak(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3"; import "a.proto";`)
	require.NoError(t, err)
	require.Len(t, file.Imports, 1)
	assert.Equal(t, schema.ImportWeak, file.Imports[0].Type)
	assert.Equal(t, "a.proto", file.Imports[0].Path)
}

func TestParseTextNestedMessages(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3";
message A {
  message B {
    message C {
      string leaf = 1;
    }
    C c = 1;
  }
  B b = 1;
}`)
	require.NoError(t, err)
	require.Len(t, file.Messages, 1)
	a := file.Messages[0]
	require.Len(t, a.Messages, 1)
	b := a.Messages[0]
	assert.Equal(t, "B", b.Name)
	require.Len(t, b.Messages, 1)
	c := b.Messages[0]
	assert.Equal(t, "C", c.Name)
	assert.Empty(t, c.Messages)
	assert.Equal(t, []schema.MessageField{
		&schema.NormalField{Type: schema.Scalar(schema.TypeString), Name: "leaf", Number: 1},
	}, c.Fields)
}

func TestParseTextEmptyMessage(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3"; message Empty {} ;`)
	require.NoError(t, err)
	require.Len(t, file.Messages, 1)
	assert.Empty(t, file.Messages[0].Fields)
}

func TestParseTextEnumValues(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3";
enum E {
  ZERO = 0;
  RUNNING = 2;
  HEX = 0x10;
  NEG = -5;
  MIN = -2147483648;
  MAX = 2147483647;
}`)
	require.NoError(t, err)
	assert.Equal(t, []*schema.EnumField{
		{Name: "ZERO", Value: 0},
		{Name: "RUNNING", Value: 2},
		{Name: "HEX", Value: 16},
		{Name: "NEG", Value: -5},
		{Name: "MIN", Value: -2147483648},
		{Name: "MAX", Value: 2147483647},
	}, file.Enums[0].Fields)
}

func TestParseTextCompactOptions(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3";
message M {
  string s = 1 [deprecated = true, (a.b).c = "x", json_name = "S"];
}`)
	require.NoError(t, err)
	fld := file.Messages[0].Fields[0].(*schema.NormalField)
	assert.Equal(t, []schema.Option{
		{Name: "deprecated", Value: "true"},
		{Name: "(a.b).c", Value: `"x"`},
		{Name: "json_name", Value: `"S"`},
	}, fld.Options)
}

func TestParseTextOneofOptions(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3";
message M {
  oneof choice {
    option (my_oneof_opt) = 1;
    int32 a = 1;
    M b = 2;
  }
}`)
	require.NoError(t, err)
	assert.Equal(t, []schema.MessageField{
		&schema.OneofDefine{
			Name:    "choice",
			Options: []schema.Option{{Name: "(my_oneof_opt)", Value: "1"}},
			Fields: []*schema.OneofField{
				{Type: schema.Scalar(schema.TypeInt32), Name: "a", Number: 1},
				{Type: schema.MessageOrEnum("M"), Name: "b", Number: 2},
			},
		},
	}, file.Messages[0].Fields)
}

func TestParseTextMapValueTypes(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3";
message M {
  map<string, bytes> a = 1;
  map<bool, Other> b = 2;
  map<sfixed64, double> c = 3;
}`)
	require.NoError(t, err)
	assert.Equal(t, []schema.MessageField{
		&schema.MapField{KeyType: schema.KeyString, ValueType: schema.Scalar(schema.TypeBytes), Name: "a", Number: 1},
		&schema.MapField{KeyType: schema.KeyBool, ValueType: schema.MessageOrEnum("Other"), Name: "b", Number: 2},
		&schema.MapField{KeyType: schema.KeySfixed64, ValueType: schema.Scalar(schema.TypeDouble), Name: "c", Number: 3},
	}, file.Messages[0].Fields)
}

func TestParseTextPackageLastWins(t *testing.T) {
	t.Parallel()
	file, err := ParseText("test.proto", `syntax = "proto3"; package a.b.c;`)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", file.Package)

	file, err = ParseText("test.proto", `syntax = "proto3";`)
	require.NoError(t, err)
	assert.Empty(t, file.Package)
}

func TestParseTextIdempotent(t *testing.T) {
	t.Parallel()
	data, err := os.ReadFile("testdata/roundtrip.proto")
	require.NoError(t, err)
	first, err := ParseText("roundtrip.proto", string(data))
	require.NoError(t, err)
	second, err := ParseText("roundtrip.proto", string(data))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestParseTextConcurrent(t *testing.T) {
	t.Parallel()
	data, err := os.ReadFile("testdata/roundtrip.proto")
	require.NoError(t, err)
	want, err := ParseText("roundtrip.proto", string(data))
	require.NoError(t, err)

	const n = 8
	results := make([]*schema.ProtoFile, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = ParseText("roundtrip.proto", string(data))
		}()
	}
	wg.Wait()
	for i := range n {
		require.NoError(t, errs[i])
		assert.Empty(t, cmp.Diff(want, results[i]))
	}
}
