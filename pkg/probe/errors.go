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
	"errors"
	"fmt"
	"strings"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

// Sentinels for matching probe failures with errors.Is.
var (
	ErrSpawn           = errors.New("probe command could not be started")
	ErrNonZeroExit     = errors.New("probe command exited with non-zero status")
	ErrInvalidEncoding = errors.New("probe output is not valid UTF-8")
	ErrEmptyOutput     = errors.New("probe output is empty")
	ErrTimeout         = errors.New("probe command did not finish in time")
)

var sentinelByCode = map[cnserrors.ErrorCode]error{
	cnserrors.ErrCodeSpawnFailure:    ErrSpawn,
	cnserrors.ErrCodeNonZeroExit:     ErrNonZeroExit,
	cnserrors.ErrCodeInvalidEncoding: ErrInvalidEncoding,
	cnserrors.ErrCodeEmptyOutput:     ErrEmptyOutput,
	cnserrors.ErrCodeTimeout:         ErrTimeout,
}

// Error describes a failed probe. Code is one of ErrCodeSpawnFailure,
// ErrCodeNonZeroExit, ErrCodeInvalidEncoding, ErrCodeEmptyOutput or
// ErrCodeTimeout. ExitStatus is only meaningful for ErrCodeNonZeroExit.
type Error struct {
	Code       cnserrors.ErrorCode
	Command    string
	Args       []string
	ExitStatus int
	Err        error
}

// CommandLine returns the command and its arguments joined by spaces.
func (e *Error) CommandLine() string {
	if len(e.Args) == 0 {
		return e.Command
	}
	return e.Command + " " + strings.Join(e.Args, " ")
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Code {
	case cnserrors.ErrCodeSpawnFailure:
		msg = "failed to start"
	case cnserrors.ErrCodeNonZeroExit:
		msg = fmt.Sprintf("exited with status %d", e.ExitStatus)
	case cnserrors.ErrCodeInvalidEncoding:
		msg = "produced output that is not valid UTF-8"
	case cnserrors.ErrCodeEmptyOutput:
		msg = "produced empty output"
	case cnserrors.ErrCodeTimeout:
		msg = "did not finish in time"
	default:
		msg = "failed"
	}
	if e.Err != nil {
		return fmt.Sprintf("probe %q %s: %v", e.CommandLine(), msg, e.Err)
	}
	return fmt.Sprintf("probe %q %s", e.CommandLine(), msg)
}

// Unwrap returns the underlying execution error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the error code.
func (e *Error) Is(target error) bool {
	s, ok := sentinelByCode[e.Code]
	return ok && s == target
}

// ErrorCode implements errors.Coder.
func (e *Error) ErrorCode() cnserrors.ErrorCode {
	return e.Code
}
