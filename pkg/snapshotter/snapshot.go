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

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/header"
	"github.com/NVIDIA/hostid/pkg/hostid"
	"github.com/NVIDIA/hostid/pkg/osrelease"
	"github.com/NVIDIA/hostid/pkg/serializer"
)

// HostSnapshotter captures the identity of the current host.
type HostSnapshotter struct {
	// Version is the hostid version recorded in the snapshot header.
	Version string

	// Detector detects the host identity. If nil, hostid.NewDetector(nil) is used.
	Detector Detector

	// Release reads os-release data. If nil, osrelease.NewReader() is used.
	Release ReleaseReader

	// Kernel reads the kernel release after a successful detection.
	// If nil, the kernel is omitted.
	Kernel KernelReader

	// Serializer writes the snapshot. If nil, JSON is written to stdout.
	Serializer serializer.Serializer
}

// Measure captures a snapshot and serializes it.
func (s *HostSnapshotter) Measure(ctx context.Context) error {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	if s.Serializer == nil {
		s.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := s.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}

// Snapshot detects the host identity and reads os-release concurrently.
// A failed detection fails the snapshot. A missing os-release or kernel
// release is logged and left out of the document.
func (s *HostSnapshotter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if s.Detector == nil {
		s.Detector = hostid.NewDetector(nil)
	}
	if s.Release == nil {
		s.Release = osrelease.NewReader()
	}

	slog.Debug("starting host snapshot")

	start := time.Now()
	defer func() {
		snapshotDuration.Observe(time.Since(start).Seconds())
	}()

	snap := NewSnapshot()
	snap.Init(header.KindHostSnapshot, FullAPIVersion, s.Version)
	snap.Metadata[KeySnapshotID] = uuid.NewString()
	if d, ok := s.Detector.(*hostid.Detector); ok {
		snap.Metadata[KeyPlatform] = string(d.Platform())
	}

	var (
		id      *hostid.HostIdentity
		kernel  string
		release map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stepStart := time.Now()
		defer func() {
			snapshotStepDuration.WithLabelValues("identity").Observe(time.Since(stepStart).Seconds())
		}()
		var err error
		id, err = s.Detector.Detect(gctx)
		if err != nil {
			return fmt.Errorf("failed to detect host identity: %w", err)
		}
		// runs after Detect so the probe commands never overlap
		if s.Kernel != nil {
			if kernel, err = s.Kernel.KernelRelease(gctx); err != nil {
				slog.Warn("kernel release not available, omitting", slog.String("error", err.Error()))
			}
		}
		return nil
	})

	g.Go(func() error {
		stepStart := time.Now()
		defer func() {
			snapshotStepDuration.WithLabelValues("release").Observe(time.Since(stepStart).Seconds())
		}()
		r, err := s.Release.Read(gctx)
		if err != nil {
			slog.Warn("os-release not available, omitting", slog.String("error", err.Error()))
			return nil
		}
		release = r
		return nil
	})

	if err := g.Wait(); err != nil {
		snapshotTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if id == nil || !id.IsValidated() {
		snapshotTotal.WithLabelValues("error").Inc()
		return nil, cnserrors.New(cnserrors.ErrCodeInternal, "detector returned an unvalidated host identity")
	}

	snap.System = NewSystemInfo(id)
	snap.System.Kernel = kernel
	snap.Release = release

	snapshotTotal.WithLabelValues("success").Inc()
	slog.Debug("host snapshot complete",
		slog.String("hostname", snap.System.Hostname),
		slog.Int("release_fields", len(release)))

	return snap, nil
}
