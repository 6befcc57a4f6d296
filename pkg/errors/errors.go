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

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeUnauthorized indicates missing or invalid credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeMethodNotAllowed indicates an unsupported HTTP method.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	// ErrCodeRateLimitExceeded indicates the caller is being throttled.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeUnavailable indicates a temporary service outage.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// Probe execution failures.
const (
	// ErrCodeSpawnFailure indicates the probe command could not be launched.
	ErrCodeSpawnFailure ErrorCode = "SPAWN_FAILURE"
	// ErrCodeNonZeroExit indicates the probe command exited with a non-success status.
	ErrCodeNonZeroExit ErrorCode = "NON_ZERO_EXIT"
	// ErrCodeInvalidEncoding indicates probe output was not valid UTF-8.
	ErrCodeInvalidEncoding ErrorCode = "INVALID_ENCODING"
	// ErrCodeEmptyOutput indicates probe output was empty after trimming.
	ErrCodeEmptyOutput ErrorCode = "EMPTY_OUTPUT"
)

// Host identity field failures.
const (
	ErrCodeNameDetection     ErrorCode = "NAME_DETECTION_FAILURE"
	ErrCodeVersionDetection  ErrorCode = "VERSION_DETECTION_FAILURE"
	ErrCodeArchDetection     ErrorCode = "ARCH_DETECTION_FAILURE"
	ErrCodeDistroDetection   ErrorCode = "DISTRO_DETECTION_FAILURE"
	ErrCodeHostnameDetection ErrorCode = "HOSTNAME_DETECTION_FAILURE"

	// ErrCodeDataIntegrity indicates every probe succeeded but the assembled
	// identity is not in the reference tables.
	ErrCodeDataIntegrity ErrorCode = "DATA_INTEGRITY"
)

// Coder is implemented by errors that carry their own ErrorCode.
type Coder interface {
	ErrorCode() ErrorCode
}

// CodeOf returns the code of the outermost error in the chain that carries one.
// Errors without a code report ErrCodeInternal; nil reports an empty code.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var c Coder
	if stderrors.As(err, &c) {
		return c.ErrorCode()
	}
	return ErrCodeInternal
}

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// ErrorCode implements Coder.
func (e *StructuredError) ErrorCode() ErrorCode {
	return e.Code
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}
