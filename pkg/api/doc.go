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

// Package api provides the HTTP API of the hostid daemon (hostidd).
//
// This package is a thin wrapper around pkg/server. It builds a detector
// for the local host and exposes it through these routes:
//
//	GET /v1/identity    detect and return the validated host identity
//	GET /v1/snapshot    return a HostSnapshot document
//	GET /v1/references  return the reference tables in use
//
// Every request runs a fresh detection. Nothing is cached, so a request
// that fails reports the failure of that run, for example:
//
//	HTTP/1.1 422 Unprocessable Entity
//	{"code":"DATA_INTEGRITY","message":"host identity failed the integrity check: unknown architecture \"i386\"", ...}
//
// A request that runs past the detection timeout answers 504 with code
// TIMEOUT and retryable set. /ready fails, without running anything, when a
// probe command cannot be found on PATH or is not available on the platform.
//
// # Configuration
//
//	PORT                   listen port (default: 8080)
//	LOG_LEVEL              logging level (debug, info, warn, error)
//	HOSTID_REFERENCE_FILE  YAML or JSONC reference tables file
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/hostid/pkg/api.version=1.0.0'"
package api
