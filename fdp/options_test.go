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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoast/schema"
)

func TestOptionName(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		expected []string
		ext      []bool
	}{
		{name: "deprecated", expected: []string{"deprecated"}, ext: []bool{false}},
		{name: "(foo.bar)", expected: []string{"foo.bar"}, ext: []bool{true}},
		{name: "(foo).bar.baz", expected: []string{"foo", "bar", "baz"}, ext: []bool{true, false, false}},
		{name: "( .foo.bar ) . (baz)", expected: []string{".foo.bar", "baz"}, ext: []bool{true, true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			uo, err := uninterpretedOption(schema.Option{Name: tc.name, Value: "1"})
			require.NoError(t, err)
			require.Len(t, uo.GetName(), len(tc.expected))
			for i, part := range uo.GetName() {
				assert.Equal(t, tc.expected[i], part.GetNamePart())
				assert.Equal(t, tc.ext[i], part.GetIsExtension())
			}
		})
	}

	for _, name := range []string{"", "(foo", "foo.", "foo..bar", "(foo)bar"} {
		_, err := uninterpretedOption(schema.Option{Name: name, Value: "1"})
		assert.Error(t, err, name)
	}
}

func TestOptionValue(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		value    string
		expected *descriptorpb.UninterpretedOption
	}{
		{value: "true", expected: &descriptorpb.UninterpretedOption{IdentifierValue: addr("true")}},
		{value: "SPEED", expected: &descriptorpb.UninterpretedOption{IdentifierValue: addr("SPEED")}},
		{value: "foo.BAR", expected: &descriptorpb.UninterpretedOption{IdentifierValue: addr("foo.BAR")}},
		{value: "42", expected: &descriptorpb.UninterpretedOption{PositiveIntValue: addr(uint64(42))}},
		{value: "0x1F", expected: &descriptorpb.UninterpretedOption{PositiveIntValue: addr(uint64(31))}},
		{value: "017", expected: &descriptorpb.UninterpretedOption{PositiveIntValue: addr(uint64(15))}},
		{value: "18446744073709551615", expected: &descriptorpb.UninterpretedOption{PositiveIntValue: addr(uint64(math.MaxUint64))}},
		{value: "-7", expected: &descriptorpb.UninterpretedOption{NegativeIntValue: addr(int64(-7))}},
		{value: "- 7", expected: &descriptorpb.UninterpretedOption{NegativeIntValue: addr(int64(-7))}},
		{value: "-9223372036854775808", expected: &descriptorpb.UninterpretedOption{NegativeIntValue: addr(int64(math.MinInt64))}},
		{value: "1.5", expected: &descriptorpb.UninterpretedOption{DoubleValue: addr(1.5)}},
		{value: ".5e2", expected: &descriptorpb.UninterpretedOption{DoubleValue: addr(50.0)}},
		{value: "-2.25", expected: &descriptorpb.UninterpretedOption{DoubleValue: addr(-2.25)}},
		{value: "-inf", expected: &descriptorpb.UninterpretedOption{DoubleValue: addr(math.Inf(-1))}},
		{value: `"abc"`, expected: &descriptorpb.UninterpretedOption{StringValue: []byte("abc")}},
		{value: `'a' "b"`, expected: &descriptorpb.UninterpretedOption{StringValue: []byte("ab")}},
		{value: "{ a: 1 b: \"x\" }", expected: &descriptorpb.UninterpretedOption{AggregateValue: addr(`a: 1 b: "x"`)}},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()
			uo, err := uninterpretedOption(schema.Option{Name: "opt", Value: tc.value})
			require.NoError(t, err)
			tc.expected.Name = []*descriptorpb.UninterpretedOption_NamePart{
				{NamePart: addr("opt"), IsExtension: addr(false)},
			}
			if diff := cmp.Diff(tc.expected, uo, protocmp.Transform()); diff != "" {
				t.Errorf("option mismatch (-want +got):\n%s", diff)
			}
		})
	}

	for _, value := range []string{"", "-", "-abc", "{ a: 1", "1.2.3", `"open`, "@", "1; option b = 2", "1 // c"} {
		_, err := uninterpretedOption(schema.Option{Name: "opt", Value: value})
		assert.Error(t, err, value)
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		literal  string
		expected string
	}{
		{literal: `""`, expected: ""},
		{literal: `"hello"`, expected: "hello"},
		{literal: `'it\'s'`, expected: "it's"},
		{literal: `"a\tb\nc"`, expected: "a\tb\nc"},
		{literal: `"\a\b\f\r\v\\\?\""`, expected: "\a\b\f\r\v\\?\""},
		{literal: `"\x41\x4a"`, expected: "AJ"},
		{literal: `"\101\0"`, expected: "A\x00"},
		{literal: `"é\U0001F600"`, expected: "é😀"},
		{literal: `"foo" 'bar'   "baz"`, expected: "foobarbaz"},
		{literal: "\"a\" /* x */ \"b\"", expected: "ab"},
	}
	for _, tc := range testCases {
		t.Run(tc.literal, func(t *testing.T) {
			t.Parallel()
			actual, err := unquote(tc.literal)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	for _, literal := range []string{"", "abc", `"abc`, `"\q"`, `"\x"`, `"\u12"`, `"\400"`, `"\UFFFFFFFF"`, `"a" b`} {
		_, err := unquote(literal)
		assert.Error(t, err, literal)
	}
}
