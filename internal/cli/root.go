// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package cli implements the platformctl commands
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tochemey/goplatform/config"
	"github.com/tochemey/goplatform/core"
	"github.com/tochemey/goplatform/loader"
	"github.com/tochemey/goplatform/log"
	"github.com/tochemey/goplatform/model"
	"github.com/tochemey/goplatform/platform"
)

// Version is set at build time
var Version = "dev"

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

type options struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	opts := new(options)
	rootCmd := &cobra.Command{
		Use:   "platformctl",
		Short: "Inspect plugins and model files of a platform",
		Long: `platformctl bootstraps a platform with its core plugin and works on
declarative model files: it validates them, describes the classes they
declare and compiles identifier namespaces.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "platform configuration file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log platform activity to stderr")

	rootCmd.AddCommand(newValidateCommand(opts))
	rootCmd.AddCommand(newDescribeCommand(opts))
	rootCmd.AddCommand(newIDsCommand())
	rootCmd.AddCommand(newPluginsCommand(opts))
	return rootCmd
}

// Execute runs the root command with args
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errorColor.Fprintf(stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// environment is a bootstrapped platform with its core plugin
type environment struct {
	config   *config.Config
	logger   log.Logger
	platform *platform.Platform
	core     *core.Plugin
}

func bootstrap(cmd *cobra.Command, opts *options) (*environment, error) {
	cfg := config.New()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	logger := log.DiscardLogger
	if opts.verbose {
		logger = cfg.Logger(cmd.ErrOrStderr())
	}

	p, err := platform.New(cfg.PlatformOptions(logger)...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyMetadata(p); err != nil {
		return nil, err
	}
	if err := core.Install(p); err != nil {
		return nil, err
	}

	service, err := p.GetPlugin(cmd.Context(), core.PluginID)
	if err != nil {
		return nil, err
	}
	plugin, ok := service.(*core.Plugin)
	if !ok {
		return nil, fmt.Errorf("unexpected core service %T", service)
	}

	return &environment{config: cfg, logger: logger, platform: p, core: plugin}, nil
}

// session creates a session with the configured models loaded
func (e *environment) session() (*model.Session, error) {
	session, err := e.core.NewSession()
	if err != nil {
		return nil, err
	}
	for _, path := range e.config.Models {
		if err := loader.LoadFile(session, path); err != nil {
			return nil, err
		}
	}
	return session, nil
}
