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

package hostid

import (
	"context"
	"log/slog"
	"time"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/probe"
)

// Runner executes a single probe command. *probe.Runner implements it.
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (string, error)
}

// PathFinder resolves a command to an executable path. *probe.Runner
// implements it.
type PathFinder interface {
	LookPath(command string) (string, error)
}

// Option configures a Detector.
type Option func(*Detector)

// WithRunner sets the probe runner. Defaults to probe.NewRunner().
func WithRunner(r Runner) Option {
	return func(d *Detector) {
		d.runner = r
	}
}

// WithPlatform declares the platform used to evaluate probe gates.
// Defaults to CurrentPlatform().
func WithPlatform(p Platform) Option {
	return func(d *Detector) {
		d.platform = p
	}
}

// Detector detects a HostIdentity by running one probe per field and
// validating the result against reference tables. A Detector is safe for
// concurrent use; each Detect call runs its own child processes.
type Detector struct {
	runner   Runner
	tables   *ReferenceTables
	platform Platform
	probes   []Probe
}

// NewDetector creates a detector that validates against tables.
// A nil tables uses DefaultReferenceTables().
func NewDetector(tables *ReferenceTables, opts ...Option) *Detector {
	if tables == nil {
		tables = DefaultReferenceTables()
	}
	d := &Detector{
		runner:   probe.NewRunner(),
		tables:   tables,
		platform: CurrentPlatform(),
		probes:   DefaultProbes(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Platform returns the platform the detector evaluates gates against.
func (d *Detector) Platform() Platform {
	return d.platform
}

// Detect probes name, version, architecture, distribution and hostname in
// that order and stops at the first failure with a *DetectionError. When
// every probe succeeds the values must pass the reference table check or an
// *IntegrityError is returned. The returned identity is always validated.
func (d *Detector) Detect(ctx context.Context) (*HostIdentity, error) {
	slog.Debug("detecting host identity", slog.String("platform", string(d.platform)))

	start := time.Now()
	id, err := d.detect(ctx)
	detectionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		detectionTotal.WithLabelValues("error").Inc()
		detectionFailures.WithLabelValues(string(cnserrors.CodeOf(err))).Inc()
		return nil, err
	}

	detectionTotal.WithLabelValues("success").Inc()
	slog.Info("host identity detected",
		slog.String("name", id.name),
		slog.String("version", id.version),
		slog.String("architecture", id.architecture),
		slog.String("distribution", id.distribution),
		slog.String("hostname", id.hostname))

	return id, nil
}

func (d *Detector) detect(ctx context.Context) (*HostIdentity, error) {
	values := make(map[Field]string, len(d.probes))
	for _, p := range d.probes {
		v, err := d.run(ctx, p)
		if err != nil {
			slog.Error("host identity detection failed",
				slog.String("field", p.Field.String()),
				slog.String("error", err.Error()))
			return nil, err
		}
		values[p.Field] = v
	}

	candidate := newCandidate(values)
	if err := d.tables.Check(candidate.architecture, candidate.distribution); err != nil {
		slog.Warn("host identity rejected by reference tables",
			slog.String("architecture", candidate.architecture),
			slog.String("distribution", candidate.distribution))
		return nil, err
	}

	candidate.validated = true
	return candidate, nil
}

func (d *Detector) run(ctx context.Context, p Probe) (string, error) {
	if !p.Allowed(d.platform) {
		return "", &DetectionError{Field: p.Field, Platform: d.platform, Err: ErrUnsupportedPlatform}
	}

	start := time.Now()
	v, err := d.runner.Run(ctx, p.Command, p.Args...)
	probeDuration.WithLabelValues(p.Field.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", &DetectionError{Field: p.Field, Platform: d.platform, Err: err}
	}

	// Runner implementations other than *probe.Runner may not enforce this
	if v == "" {
		return "", &DetectionError{
			Field:    p.Field,
			Platform: d.platform,
			Err:      &probe.Error{Code: cnserrors.ErrCodeEmptyOutput, Command: p.Command, Args: p.Args},
		}
	}

	slog.Debug("detected field",
		slog.String("field", p.Field.String()),
		slog.String("value", v))
	return v, nil
}

// KernelRelease runs `uname -r`. The kernel release is supporting context
// for a snapshot and is never part of the identity or its integrity check.
func (d *Detector) KernelRelease(ctx context.Context) (string, error) {
	return d.runner.Run(ctx, "uname", "-r")
}

// Preflight checks without running anything that every probe may run on
// the platform and that its command can be found. It returns the
// *DetectionError Detect would fail with first, or nil. When the runner
// cannot resolve commands only the platform gates are checked.
func (d *Detector) Preflight() error {
	finder, _ := d.runner.(PathFinder)
	resolved := make(map[string]error, len(d.probes))
	for _, p := range d.probes {
		if !p.Allowed(d.platform) {
			return &DetectionError{Field: p.Field, Platform: d.platform, Err: ErrUnsupportedPlatform}
		}
		if finder == nil {
			continue
		}
		err, seen := resolved[p.Command]
		if !seen {
			_, err = finder.LookPath(p.Command)
			resolved[p.Command] = err
		}
		if err != nil {
			return &DetectionError{
				Field:    p.Field,
				Platform: d.platform,
				Err:      &probe.Error{Code: cnserrors.ErrCodeSpawnFailure, Command: p.Command, Args: p.Args, Err: err},
			}
		}
	}
	return nil
}
