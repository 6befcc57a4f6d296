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

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/serializer"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// HTTPStatusFromCode maps an error code to the HTTP status returned for it.
func HTTPStatusFromCode(code cnserrors.ErrorCode) int {
	switch code {
	case cnserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cnserrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case cnserrors.ErrCodeNotFound:
		return http.StatusNotFound
	case cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case cnserrors.ErrCodeDataIntegrity:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may retry the same request.
// Detection and integrity failures describe the host and will not change
// on retry.
func retryableFromCode(code cnserrors.ErrorCode) bool {
	switch code {
	case cnserrors.ErrCodeTimeout,
		cnserrors.ErrCodeUnavailable,
		cnserrors.ErrCodeRateLimitExceeded,
		cnserrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// WriteError writes an ErrorResponse tagged with the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cnserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	errorResponses.WithLabelValues(string(code)).Inc()
	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr derives the status, code and message from err.
// A StructuredError contributes its message and context; any other error
// carrying a code contributes its own text. Errors without a code are
// reported as internal with fallbackMessage. An expired deadline anywhere
// in the chain is reported as a retryable timeout, with the code it would
// otherwise have carried in the "failedCode" detail.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	code := cnserrors.CodeOf(err)
	message := fallbackMessage
	var details map[string]any

	var se *cnserrors.StructuredError
	var coder cnserrors.Coder
	switch {
	case errors.As(err, &se):
		message = se.Message
		details = mergeDetails(se.Context, nil)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
	case errors.As(err, &coder):
		message = err.Error()
		if cause := errors.Unwrap(err); cause != nil {
			details = map[string]any{"error": cause.Error()}
		}
	default:
		details = map[string]any{"error": err.Error()}
	}

	if code != cnserrors.ErrCodeTimeout && errors.Is(err, context.DeadlineExceeded) {
		details = mergeDetails(details, map[string]any{"failedCode": string(code)})
		code = cnserrors.ErrCodeTimeout
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message,
		retryableFromCode(code), mergeDetails(details, extraDetails))
}

// mergeDetails returns a new map holding a and b, with b winning on
// conflicts. It returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
