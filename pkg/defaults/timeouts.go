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

package defaults

import "time"

// Probe timeouts for external command execution.
const (
	// ProbeTimeout bounds a single probe command. A hung command is killed
	// once it elapses instead of blocking detection indefinitely.
	ProbeTimeout = 10 * time.Second

	// DetectTimeout bounds a complete detection run across all probes.
	// Must cover every probe running up to ProbeTimeout.
	DetectTimeout = 1 * time.Minute
)

// Snapshot timeouts.
const (
	// ReleaseReadTimeout bounds reading the os-release file.
	ReleaseReadTimeout = 5 * time.Second

	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 5 * time.Minute
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Must cover a full detection run.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerDetectTimeout bounds detection triggered by an API request.
	ServerDetectTimeout = 20 * time.Second

	// ServerReadyTimeout bounds the readiness check behind /ready.
	ServerReadyTimeout = 2 * time.Second
)

// ProbeCount is the number of identity fields probed per detection run.
const ProbeCount = 5
