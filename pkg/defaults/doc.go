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

// Package defaults provides centralized configuration constants for hostid.
//
// # Timeout Categories
//
//   - Probe timeouts: per external command and per detection run
//   - Snapshot timeouts: os-release read and whole CLI snapshot
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.DetectTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// DetectTimeout must leave room for every probe to hit ProbeTimeout, and
// CLISnapshotTimeout must cover a full detection.
package defaults
