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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/protoast/parser"
	"github.com/bufbuild/protoast/schema"
)

func newParseCommand(vp *viper.Viper, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file or glob>...",
		Short: "Print the syntax tree of proto files as YAML",
		Long: "Parse each file and print its syntax tree as a YAML document. Arguments may be " +
			"doublestar globs such as 'protos/**/*.proto'. Documents are printed in argument order.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := parseArgs(cmd.Context(), cmd.ErrOrStderr(), vp, logger, args)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			for _, file := range files {
				if err := enc.Encode(file); err != nil {
					return fmt.Errorf("failed to marshal %s to YAML: %w", file.Filename, err)
				}
			}
			return enc.Close()
		},
	}
}

// parseArgs expands args into file names and parses them. If a file fails
// to parse, a diagnostic is written to stderr and errReported is returned.
func parseArgs(
	ctx context.Context,
	stderr io.Writer,
	vp *viper.Viper,
	logger *logrus.Logger,
	args []string,
) ([]*schema.ProtoFile, error) {
	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}
	files, err := parseAll(ctx, paths, workers(vp), logger)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		fmt.Fprint(stderr, diagnostic(err))
		return nil, errReported
	}
	return files, nil
}

// expandPaths replaces each glob in args with the files it matches. Other
// arguments are kept as they are; a file that appears more than once is
// only kept the first time.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	seen := map[string]bool{}
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		for _, match := range matches {
			add(match)
		}
	}
	return paths, nil
}

// parseAll parses paths concurrently, with at most limit files in flight.
// Results are in the same order as paths. The first failure cancels the
// files that have not started yet.
func parseAll(ctx context.Context, paths []string, limit int, logger *logrus.Logger) ([]*schema.ProtoFile, error) {
	files := make([]*schema.ProtoFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log := logger.WithField("file", path)
			log.Debug("parsing")
			file, err := parser.ParseFile(path)
			if err != nil {
				log.WithError(err).Debug("parse failed")
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
