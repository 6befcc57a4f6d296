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

// Package snapshotter captures a host snapshot document.
//
// A snapshot combines the validated host identity with os-release data:
//
//	kind: HostSnapshot
//	apiVersion: hostid.nvidia.com/v1alpha1
//	metadata:
//	  snapshot-id: 5b0c...
//	  platform: linux
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v1.0.0
//	system:
//	  name: Ubuntu
//	  version: "22.04"
//	  distro: Ubuntu
//	  architecture: x86_64
//	  hostname: alu
//	  kernel: 6.8.0-45-generic
//	release:
//	  ID: ubuntu
//	  VERSION_ID: "22.04"
//
// Identity detection and the os-release read run concurrently. The probes
// inside detection stay sequential and the kernel release, when a
// KernelReader is set, is read after them. The kernel and os-release are
// context only and never validated. A failed detection fails the snapshot
// and nothing is serialized.
//
// # Usage
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "backup.json")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	s := &snapshotter.HostSnapshotter{
//	    Version:    version,
//	    Serializer: w,
//	}
//	if err := s.Measure(ctx); err != nil {
//	    return err
//	}
package snapshotter
