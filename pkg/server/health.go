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
	"net/http"
	"time"

	"github.com/NVIDIA/hostid/pkg/defaults"
	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/serializer"
)

const (
	statusHealthy  = "healthy"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

var errNotServing = cnserrors.New(cnserrors.ErrCodeUnavailable, "server is not serving yet")

// ReadinessFunc reports whether requests can currently succeed. A non-nil
// error marks the server not ready; its code and text are returned by /ready.
type ReadinessFunc func(ctx context.Context) error

// HealthResponse is returned by the health and readiness endpoints.
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Version   string    `json:"version,omitempty" yaml:"version,omitempty"`
	Code      string    `json:"code,omitempty" yaml:"code,omitempty"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// handleHealth is a liveness check and never runs the readiness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    statusHealthy,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	resp := HealthResponse{
		Status:    statusReady,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC(),
	}

	if err := s.checkReady(r.Context()); err != nil {
		serverReady.Set(0)
		resp.Status = statusNotReady
		resp.Code = string(cnserrors.CodeOf(err))
		resp.Reason = err.Error()
		serializer.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	serverReady.Set(1)
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// checkReady fails until Start has begun serving, then defers to the
// configured ReadinessFunc.
func (s *Server) checkReady(ctx context.Context) error {
	if !s.isReady() {
		return errNotServing
	}
	if s.config.Readiness == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.ServerReadyTimeout)
	defer cancel()
	return s.config.Readiness(ctx)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}
