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

// Package header provides the common header of hostid documents.
//
// # Header Structure
//
//	kind: HostSnapshot
//	apiVersion: hostid.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v1.0.0
//	  snapshot-id: 3f0b1c1e-...
//
// # Usage
//
//	var h header.Header
//	h.Init(header.KindHostSnapshot, "hostid.nvidia.com/v1alpha1", version)
//
// Or with functional options:
//
//	h := header.New(
//	    header.WithKind(header.KindHostIdentity),
//	    header.WithMetadata("source", "detect"),
//	)
package header
