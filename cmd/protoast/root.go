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
	"errors"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyVerbose = "verbose"
	keyWorkers = "workers"
)

// errReported is returned by commands that have already written a
// diagnostic for the failure.
var errReported = errors.New("errors reported")

func newRootCommand(vp *viper.Viper, logger *logrus.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "protoast",
		Short:         "Inspect proto3 source files",
		Long:          "protoast parses proto3 source files into a syntax tree and prints it as YAML, as a symbol list or as a descriptor.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.SetOutput(cmd.ErrOrStderr())
			if vp.GetBool(keyVerbose) {
				logger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolP(keyVerbose, "v", false, "Verbose output")
	flags.Int(keyWorkers, runtime.GOMAXPROCS(0), "Maximum number of files parsed at once")
	_ = vp.BindPFlag(keyVerbose, flags.Lookup(keyVerbose))
	_ = vp.BindPFlag(keyWorkers, flags.Lookup(keyWorkers))

	vp.SetEnvPrefix("PROTOAST")
	vp.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vp.AutomaticEnv()

	root.AddCommand(
		newParseCommand(vp, logger),
		newSymbolsCommand(vp, logger),
		newDescriptorCommand(logger),
	)
	return root
}

func workers(vp *viper.Viper) int {
	return max(vp.GetInt(keyWorkers), 1)
}
