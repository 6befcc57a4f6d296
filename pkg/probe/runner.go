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

package probe

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"k8s.io/utils/exec"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

// Option configures a Runner.
type Option func(*Runner)

// WithExecutor sets the command executor. Tests pass a fake here.
func WithExecutor(e exec.Interface) Option {
	return func(r *Runner) {
		r.exec = e
	}
}

// WithTimeout bounds each probe. Zero means the probe runs until it exits
// or the caller's context is done.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// Runner executes probe commands and turns their output into a single value.
// A Runner holds no mutable state and is safe for concurrent use.
type Runner struct {
	exec    exec.Interface
	timeout time.Duration
}

// NewRunner creates a Runner backed by the host's process executor.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		exec: exec.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes command with args and blocks until it exits. On success it
// returns the whitespace-trimmed standard output, which is never empty.
// Every failure is an *Error naming the command.
func (r *Runner) Run(ctx context.Context, command string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		code := cnserrors.ErrCodeSpawnFailure
		if errors.Is(err, context.DeadlineExceeded) {
			code = cnserrors.ErrCodeTimeout
		}
		return "", &Error{Code: code, Command: command, Args: args, Err: err}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	slog.Debug("running probe",
		slog.String("command", command),
		slog.Any("args", args))

	start := time.Now()
	out, err := r.exec.CommandContext(ctx, command, args...).Output()
	if err != nil {
		return "", classify(ctx, command, args, err)
	}

	if !utf8.Valid(out) {
		return "", &Error{Code: cnserrors.ErrCodeInvalidEncoding, Command: command, Args: args}
	}

	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", &Error{Code: cnserrors.ErrCodeEmptyOutput, Command: command, Args: args}
	}

	slog.Debug("probe finished",
		slog.String("command", command),
		slog.Duration("duration", time.Since(start)))

	return value, nil
}

func classify(ctx context.Context, command string, args []string, err error) *Error {
	// a killed child surfaces as an exit error, so the context is checked first
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Error{Code: cnserrors.ErrCodeTimeout, Command: command, Args: args, Err: ctxErr}
	}

	var exitErr exec.ExitError
	if errors.As(err, &exitErr) {
		return &Error{
			Code:       cnserrors.ErrCodeNonZeroExit,
			Command:    command,
			Args:       args,
			ExitStatus: exitErr.ExitStatus(),
			Err:        err,
		}
	}

	return &Error{Code: cnserrors.ErrCodeSpawnFailure, Command: command, Args: args, Err: err}
}

// LookPath resolves command the way Run would before starting it.
func (r *Runner) LookPath(command string) (string, error) {
	return r.exec.LookPath(command)
}
