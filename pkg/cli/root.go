// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"k8s.io/utils/exec"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/logging"
)

const (
	name           = "hostid"
	versionDefault = "dev"
)

// Exit codes returned by Execute.
const (
	exitCodeError    = 1
	exitCodeCanceled = 2
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the hostid command line and exits the process on failure.
// This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := newRootCmd(exec.New()).Run(ctx, os.Args); err != nil {
		slog.Error("command failed",
			"code", cnserrors.CodeOf(err),
			"error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return exitCodeCanceled
	}
	return exitCodeError
}

// newRootCmd builds the command tree. Probe commands run through exe.
func newRootCmd(exe exec.Interface) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Detect and validate the identity of the local host",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Description: `hostid runs a fixed set of system probes (lsb_release, uname, hostname)
to identify the OS name, version, distribution, CPU architecture and hostname
of the local machine, then checks the result against reference tables of
known architectures and distributions.

Detection is all or nothing: the first failing probe aborts the run and no
partial identity is ever reported.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("HOSTID_LOG_LEVEL", logging.EnvVarLogLevel),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging (overrides --log-level)",
				Sources: cli.EnvVars("HOSTID_DEBUG"),
			},
		},
		Before: initLogger,
		Commands: []*cli.Command{
			detectCmd(exe),
			snapshotCmd(exe),
			referencesCmd(),
		},
	}
}

// initLogger configures slog after flags are parsed so --log-level takes
// effect before any command executes.
func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := cmd.String("log-level")
	if cmd.Bool("debug") {
		level = "debug"
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", level)
	return ctx, nil
}
