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

package api

import (
	"context"
	"net/http"
	"time"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/hostid"
	"github.com/NVIDIA/hostid/pkg/serializer"
	"github.com/NVIDIA/hostid/pkg/server"
	"github.com/NVIDIA/hostid/pkg/snapshotter"
)

// preflighter checks without running probes that detection can succeed.
// *hostid.Detector implements it.
type preflighter interface {
	Preflight() error
}

// Handler serves host identity documents over HTTP.
type Handler struct {
	detector  snapshotter.Detector
	kernel    snapshotter.KernelReader
	preflight preflighter
	release   snapshotter.ReleaseReader
	tables    *hostid.ReferenceTables
	timeout   time.Duration
}

// NewHandler creates a Handler. tables is only used for reporting and should
// be the same tables the detector validates against. When det also reads the
// kernel release, snapshots include it; when it supports a preflight check,
// Ready uses it.
func NewHandler(det snapshotter.Detector, release snapshotter.ReleaseReader,
	tables *hostid.ReferenceTables, timeout time.Duration) *Handler {

	if tables == nil {
		tables = hostid.DefaultReferenceTables()
	}
	h := &Handler{
		detector: det,
		release:  release,
		tables:   tables,
		timeout:  timeout,
	}
	h.kernel, _ = det.(snapshotter.KernelReader)
	h.preflight, _ = det.(preflighter)
	return h
}

// Ready reports whether every probe can run on this host. It starts no
// processes and is meant as a server readiness check.
func (h *Handler) Ready(context.Context) error {
	if h.preflight == nil {
		return nil
	}
	return h.preflight.Preflight()
}

// Routes returns the application routes served by h.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/identity":   h.HandleIdentity,
		"/v1/snapshot":   h.HandleSnapshot,
		"/v1/references": h.HandleReferences,
	}
}

// HandleIdentity runs a detection and returns the validated identity.
func (h *Handler) HandleIdentity(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	id, err := h.detector.Detect(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "host identity detection failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, id.Record())
}

// HandleSnapshot returns a host snapshot document.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	hs := &snapshotter.HostSnapshotter{
		Version:  version,
		Detector: h.detector,
		Kernel:   h.kernel,
		Release:  h.release,
	}
	snap, err := hs.Snapshot(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "host snapshot failed", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, snap)
}

// HandleReferences returns the reference tables identities are checked against.
func (h *Handler) HandleReferences(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	serializer.RespondJSON(w, http.StatusOK, hostid.ReferenceFile{
		Architectures: h.tables.Architectures(),
		Distributions: h.tables.Distributions(),
	})
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.timeout)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
	return false
}
