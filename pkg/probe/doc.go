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

// Package probe runs external commands whose standard output is a single value.
//
// A probe succeeds only when the command starts, exits with status 0, prints
// valid UTF-8 and prints something other than whitespace. Each failure is an
// *Error with a distinct code:
//
//   - SPAWN_FAILURE: the command could not be started (not found, permission denied)
//   - NON_ZERO_EXIT: the command ran and exited with a non-success status
//   - INVALID_ENCODING: standard output is not valid UTF-8
//   - EMPTY_OUTPUT: standard output is empty after trimming whitespace
//   - TIMEOUT: the runner timeout or the caller's deadline expired while running
//
// # Usage
//
//	r := probe.NewRunner(probe.WithTimeout(defaults.ProbeTimeout))
//	arch, err := r.Run(ctx, "uname", "-m")
//	if errors.Is(err, probe.ErrNonZeroExit) {
//	    var perr *probe.Error
//	    errors.As(err, &perr)
//	    slog.Error("uname failed", "status", perr.ExitStatus)
//	}
//
// Commands go through k8s.io/utils/exec, so tests swap in a scripted executor
// from probetest with WithExecutor. Probes are never retried or cached.
package probe
