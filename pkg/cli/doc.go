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

// Package cli implements the command-line interface for the hostid tool.
//
// # Overview
//
// hostid identifies the machine it runs on by running a fixed sequence of
// system probes and validating the result against reference tables of known
// architectures and distributions.
//
// # Commands
//
// detect - Detect and validate the host identity:
//
//	hostid detect [--format json|yaml|table] [--reference-file FILE] [--platform linux]
//
// snapshot - Capture a host snapshot document:
//
//	hostid snapshot [--output FILE] [--format yaml|json|table] [--os-release FILE]
//
// references - Print the effective reference tables:
//
//	hostid references [--reference-file FILE] [--format yaml]
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--debug        Enable debug logging
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	HOSTID_LOG_LEVEL       Same as --log-level (LOG_LEVEL is also honored)
//	HOSTID_FORMAT          Default output format
//	HOSTID_OUTPUT          Default output path
//	HOSTID_REFERENCE_FILE  Reference tables file
//	HOSTID_PLATFORM        Platform override for probe gating
//	HOSTID_PROBE_TIMEOUT   Per-probe timeout
//
// # Exit Codes
//
//	0  Success
//	1  Detection, integrity or argument failure
//	2  Context canceled or timeout
package cli
