// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/extsort/pkg/config"
	"github.com/walteh/extsort/pkg/log"
	"github.com/walteh/extsort/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the values bound to the root command's flags
type rootOpts struct {
	configFile  string
	debug       bool
	noColor     bool
	concurrency int
	ignore      []string
}

// newRootCmd creates the extsort command
func newRootCmd() *cobra.Command {
	o := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "extsort <source_folder> <destination_folder>",
		Short: "Copy every file of a folder tree into per-extension folders",
		Long: `extsort walks <source_folder> recursively and copies every regular file to
<destination_folder>/<extension>/<file name>. Files without an extension go to
<destination_folder>/other. Copies run concurrently; a file that fails to copy
is logged and skipped without affecting the others.`,
		Args:         cobra.ExactArgs(2),
		Version:      GetVersionInfo().Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0], args[1])
		},
	}
	cmd.SetVersionTemplate(FormatVersion())

	addRootFlags(cmd, o)

	return cmd
}

// addRootFlags adds the root command's flags
func addRootFlags(cmd *cobra.Command, o *rootOpts) {
	cmd.Flags().StringVarP(&o.configFile, "config", "c", "", "options file (.yaml, .yml, .hcl or .json)")
	cmd.Flags().BoolVarP(&o.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "disable colored log output")
	cmd.Flags().IntVarP(&o.concurrency, "concurrency", "j", 0, "maximum copies in flight (0 = one per file)")
	cmd.Flags().StringArrayVar(&o.ignore, "ignore", nil, "doublestar glob of source-relative paths to skip (repeatable)")
}

// run copies sourceDir into destDir. Copy failures are logged, not returned.
func (o *rootOpts) run(cmd *cobra.Command, sourceDir, destDir string) error {
	ctx := o.setupLogging(cmd)

	opts, err := o.options(ctx, cmd)
	if err != nil {
		return errors.Errorf("loading options: %w", err)
	}

	operation.NewDispatcher(opts).Run(ctx, sourceDir, destDir)

	return nil
}

// setupLogging configures zerolog based on flags and returns a context carrying the logger
func (o *rootOpts) setupLogging(cmd *cobra.Command) context.Context {
	level := zerolog.InfoLevel
	if o.debug {
		level = zerolog.DebugLevel
	}

	out := cmd.ErrOrStderr()
	noColor := o.noColor || !log.ColorEnabled(out)

	logger := log.New(out, level, noColor).With().Str("run", uuid.NewString()).Logger()
	return logger.WithContext(cmd.Context())
}

// options merges the options file, if any, with flags given on the command line
func (o *rootOpts) options(ctx context.Context, cmd *cobra.Command) (*config.Options, error) {
	opts := config.Default()
	if o.configFile != "" {
		loaded, err := config.Load(ctx, o.configFile)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	if cmd.Flags().Changed("concurrency") {
		opts.Concurrency = o.concurrency
	}
	if cmd.Flags().Changed("ignore") {
		opts.Ignore = append(opts.Ignore, o.ignore...)
	}

	if err := opts.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	return opts, nil
}
