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

	"github.com/NVIDIA/hostid/pkg/header"
	"github.com/NVIDIA/hostid/pkg/hostid"
)

const (
	// APIGroup is the API group of hostid documents.
	APIGroup = "hostid.nvidia.com"
	// APIVersion is the snapshot schema version.
	APIVersion = "v1alpha1"
	// FullAPIVersion is the apiVersion written to snapshot headers.
	FullAPIVersion = APIGroup + "/" + APIVersion

	// KeySnapshotID is the metadata key holding the unique snapshot ID.
	KeySnapshotID = "snapshot-id"
	// KeyPlatform is the metadata key holding the detector platform.
	KeyPlatform = "platform"
)

// Snapshotter captures a host snapshot and writes it out.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// Detector detects the host identity. *hostid.Detector implements it.
type Detector interface {
	Detect(ctx context.Context) (*hostid.HostIdentity, error)
}

// KernelReader reports the running kernel release. *hostid.Detector implements it.
type KernelReader interface {
	KernelRelease(ctx context.Context) (string, error)
}

// ReleaseReader reads os-release data. *osrelease.Reader implements it.
type ReleaseReader interface {
	Read(ctx context.Context) (map[string]string, error)
}

// SystemInfo is the system section of a snapshot, copied from a validated
// HostIdentity.
type SystemInfo struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	Distro       string `json:"distro" yaml:"distro"`
	Architecture string `json:"architecture" yaml:"architecture"`
	Hostname     string `json:"hostname" yaml:"hostname"`

	// Kernel is the kernel release. It is reported for context only and is
	// not part of the validated identity.
	Kernel string `json:"kernel,omitempty" yaml:"kernel,omitempty"`
}

// NewSystemInfo copies the validated fields of id.
func NewSystemInfo(id *hostid.HostIdentity) SystemInfo {
	return SystemInfo{
		Name:         id.Name(),
		Version:      id.Version(),
		Distro:       id.Distribution(),
		Architecture: id.Architecture(),
		Hostname:     id.Hostname(),
	}
}

// Snapshot is the document written by the snapshotter.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	// System holds the validated host identity.
	System SystemInfo `json:"system" yaml:"system"`

	// Release holds os-release key/value pairs when the file was readable.
	Release map[string]string `json:"release,omitempty" yaml:"release,omitempty"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}
