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

// Package cases converts proto identifiers to the case styles protoc derives
// from them, such as JSON names and map entry message names.
package cases

import (
	"strings"
	"unicode"
)

// Case is a target case style to convert to.
type Case int

const (
	Camel  Case = iota // camelCase
	Pascal             // PascalCase
)

// Convert converts str to the given case, lowercasing everything but the
// first letter of each word.
func (c Case) Convert(str string) string {
	return Converter{Case: c}.Convert(str)
}

// Converter contains specific options for converting to a given case.
//
// Words are separated by underscores only, which is the naive splitting
// protoc uses.
type Converter struct {
	Case Case

	// If set, runes will not be converted to lowercase as part of the
	// conversion.
	NoLowercase bool
}

// Convert converts str according to the options set in this converter.
func (c Converter) Convert(str string) string {
	buf := new(strings.Builder)
	c.Append(buf, str)
	return buf.String()
}

// Append is like [Converter.Convert], but it appends to the given buffer
// instead.
func (c Converter) Append(buf *strings.Builder, str string) {
	uppercase := c.Case == Pascal
	lowercase := !c.NoLowercase
	firstWord := true
	for word := range strings.SplitSeq(str, "_") {
		firstRune := true
		for _, r := range word {
			upper := (uppercase || !firstWord) && firstRune
			if upper || lowercase {
				r = setCase(r, upper)
			}
			buf.WriteRune(r)
			firstRune = false
		}
		firstWord = false
	}
}

func setCase(r rune, upper bool) rune {
	if upper {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}
