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

package main

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/bufbuild/protocompile/reporter"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

// diagnostic renders err for a terminal. When err carries a position, the
// offending source line is shown with a caret under the reported column.
func diagnostic(err error) string {
	var ewp reporter.ErrorWithPos
	if !errors.As(err, &ewp) {
		return err.Error() + "\n"
	}
	pos := ewp.GetPosition()
	if pos.Line <= 0 {
		return err.Error() + "\n"
	}
	src, readErr := os.ReadFile(pos.Filename)
	if readErr != nil {
		return err.Error() + "\n"
	}
	return formatDiagnostic(err.Error(), src, pos.Offset)
}

// formatDiagnostic renders msg followed by the line of src that contains
// offset and a caret that points at offset. The caret is placed by display
// width, so it lines up under wide characters.
func formatDiagnostic(msg string, src []byte, offset int) string {
	if offset < 0 || offset > len(src) {
		return msg + "\n"
	}
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	end := bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	line := strings.TrimSuffix(string(src[start:end]), "\r")
	prefix := string(src[start:offset])

	expand := strings.NewReplacer("\t", strings.Repeat(" ", tabWidth))
	var buf strings.Builder
	buf.WriteString(msg)
	buf.WriteString("\n  ")
	buf.WriteString(expand.Replace(line))
	buf.WriteString("\n  ")
	buf.WriteString(strings.Repeat(" ", uniseg.StringWidth(expand.Replace(prefix))))
	buf.WriteString("^\n")
	return buf.String()
}
