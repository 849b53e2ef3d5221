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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/bufbuild/protoast/fdp"
	"github.com/bufbuild/protoast/parser"
)

func newDescriptorCommand(logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "descriptor <file>",
		Short: "Print a proto file as a FileDescriptorProto in JSON",
		Long: "Parse a single file and print it as a google.protobuf.FileDescriptorProto, " +
			"encoded as JSON. References to types declared in other files are left unresolved.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.WithField("file", args[0]).Debug("parsing")
			file, err := parser.ParseFile(args[0])
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), diagnostic(err))
				return errReported
			}
			desc, err := fdp.FromFile(file)
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", args[0], err)
			}
			data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(desc)
			if err != nil {
				return fmt.Errorf("failed to marshal descriptor: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
