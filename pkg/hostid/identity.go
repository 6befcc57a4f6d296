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

import "encoding/json"

// HostIdentity is a validated snapshot of a host's OS, architecture and hostname.
// Values are only produced by Detector.Detect and cannot be modified afterwards.
// The zero value is not validated.
type HostIdentity struct {
	name         string
	version      string
	architecture string
	distribution string
	hostname     string
	validated    bool
}

// Name returns the distribution name, e.g. "Ubuntu".
func (h *HostIdentity) Name() string { return h.name }

// Version returns the distribution release, e.g. "22.04".
func (h *HostIdentity) Version() string { return h.version }

// Architecture returns the machine architecture, e.g. "x86_64".
func (h *HostIdentity) Architecture() string { return h.architecture }

// Distribution returns the distributor ID, e.g. "Ubuntu".
func (h *HostIdentity) Distribution() string { return h.distribution }

// Hostname returns the host name.
func (h *HostIdentity) Hostname() string { return h.hostname }

// IsValidated reports whether the identity passed the integrity check.
func (h *HostIdentity) IsValidated() bool { return h.validated }

// Value returns the value detected for field.
func (h *HostIdentity) Value(field Field) string {
	switch field {
	case FieldName:
		return h.name
	case FieldVersion:
		return h.version
	case FieldArchitecture:
		return h.architecture
	case FieldDistribution:
		return h.distribution
	case FieldHostname:
		return h.hostname
	default:
		return ""
	}
}

// Record is the serializable form of a HostIdentity.
type Record struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	Architecture string `json:"architecture" yaml:"architecture"`
	Distribution string `json:"distribution" yaml:"distribution"`
	Hostname     string `json:"hostname" yaml:"hostname"`
	Validated    bool   `json:"validated" yaml:"validated"`
}

// Record returns a copy of the identity as a plain struct.
func (h *HostIdentity) Record() Record {
	return Record{
		Name:         h.name,
		Version:      h.version,
		Architecture: h.architecture,
		Distribution: h.distribution,
		Hostname:     h.hostname,
		Validated:    h.validated,
	}
}

// MarshalJSON implements json.Marshaler.
func (h *HostIdentity) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Record())
}

// MarshalYAML implements yaml.Marshaler.
func (h *HostIdentity) MarshalYAML() (any, error) {
	return h.Record(), nil
}

// newCandidate assembles an unvalidated identity from probe values.
func newCandidate(values map[Field]string) *HostIdentity {
	return &HostIdentity{
		name:         values[FieldName],
		version:      values[FieldVersion],
		architecture: values[FieldArchitecture],
		distribution: values[FieldDistribution],
		hostname:     values[FieldHostname],
	}
}
