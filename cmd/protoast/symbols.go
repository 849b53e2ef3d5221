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
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/btree"

	"github.com/bufbuild/protoast/schema"
	"github.com/bufbuild/protoast/walk"
)

func newSymbolsCommand(vp *viper.Viper, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "symbols <file or glob>...",
		Short: "List the fully-qualified names declared in proto files",
		Long: "Print one line per declared element with its fully-qualified name and kind, " +
			"sorted by name. When several files declare the same name, the last one wins.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := parseArgs(cmd.Context(), cmd.ErrOrStderr(), vp, logger, args)
			if err != nil {
				return err
			}
			var symbols btree.Map[string, string]
			for _, file := range files {
				if err := collectSymbols(&symbols, file); err != nil {
					return err
				}
			}
			return writeSymbols(cmd.OutOrStdout(), &symbols)
		},
	}
}

func collectSymbols(symbols *btree.Map[string, string], file *schema.ProtoFile) error {
	return walk.File(file, func(name string, elem walk.Element) error {
		symbols.Set(name, symbolKind(elem))
		return nil
	})
}

func symbolKind(elem walk.Element) string {
	switch elem.(type) {
	case *schema.Message:
		return "message"
	case *schema.NormalField, *schema.OneofField:
		return "field"
	case *schema.MapField:
		return "map"
	case *schema.OneofDefine:
		return "oneof"
	case *schema.Enum:
		return "enum"
	case *schema.EnumField:
		return "enum_value"
	case *schema.Service:
		return "service"
	case *schema.RPC:
		return "rpc"
	default:
		return fmt.Sprintf("%T", elem)
	}
}

func writeSymbols(w io.Writer, symbols *btree.Map[string, string]) error {
	var err error
	symbols.Scan(func(name, kind string) bool {
		_, err = fmt.Fprintf(w, "%s %s\n", name, kind)
		return err == nil
	})
	return err
}
