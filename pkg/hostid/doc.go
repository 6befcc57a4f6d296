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

// Package hostid detects and validates the identity of the host it runs on.
//
// # Overview
//
// A HostIdentity holds the distribution name, version, machine architecture,
// distribution ID and hostname. Each field comes from one external command:
//
//	name          lsb_release -si   linux only
//	version       lsb_release -sr   linux only
//	architecture  uname -m          any platform
//	distribution  lsb_release -is   linux only
//	hostname      hostname          linux only
//
// Detection is all-or-nothing. Probes run one at a time in the order above
// and the first failure aborts the run with a *DetectionError naming the
// field. A probe gated off on the declared platform fails the same way with
// ErrUnsupportedPlatform as the cause, and no later probe runs.
//
// # Integrity Check
//
// After every probe succeeds the architecture and distribution must both be
// present in the ReferenceTables, otherwise Detect returns an *IntegrityError.
// Only identities that pass are returned, so IsValidated is always true on a
// HostIdentity obtained from Detect.
//
// # Usage
//
//	tables, err := hostid.LoadReferenceTables("references.yaml")
//	if err != nil {
//	    return err
//	}
//
//	d := hostid.NewDetector(tables,
//	    hostid.WithRunner(probe.NewRunner(probe.WithTimeout(defaults.ProbeTimeout))),
//	)
//	id, err := d.Detect(ctx)
//	switch {
//	case errors.Is(err, hostid.ErrDataIntegrity):
//	    // probes ran but returned values outside the tables
//	case errors.Is(err, hostid.ErrArchDetection):
//	    // uname failed
//	}
//
// # Platform Gates
//
// Gates are pure functions of a Platform, so WithPlatform can evaluate the
// darwin or windows behavior on a linux test host.
//
// # Metrics
//
//   - hostid_detection_duration_seconds
//   - hostid_detection_total{status}
//   - hostid_detection_failures_total{code}
//   - hostid_probe_duration_seconds{field}
package hostid
