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

import (
	"runtime"
	"slices"
)

// Platform is an OS family as reported by runtime.GOOS, e.g. "linux".
type Platform string

// PlatformLinux is the OS family the distribution probes support.
const PlatformLinux Platform = "linux"

// CurrentPlatform returns the platform the process is running on.
func CurrentPlatform() Platform {
	return Platform(runtime.GOOS)
}

// Gate decides whether a probe may run on a platform. Gates are pure so
// they can be evaluated for any platform without running on it.
type Gate func(Platform) bool

// AnyPlatform allows a probe everywhere.
func AnyPlatform(Platform) bool {
	return true
}

// OnlyFamily allows a probe only on the listed platforms.
func OnlyFamily(families ...Platform) Gate {
	allowed := slices.Clone(families)
	return func(p Platform) bool {
		return slices.Contains(allowed, p)
	}
}

// Probe binds an identity field to the command that detects it.
type Probe struct {
	Field   Field
	Command string
	Args    []string
	Gate    Gate
}

// Allowed reports whether the probe may run on p.
func (p Probe) Allowed(on Platform) bool {
	return p.Gate == nil || p.Gate(on)
}

// DefaultProbes returns the probe table in detection order.
//
//	name          lsb_release -si   linux
//	version       lsb_release -sr   linux
//	architecture  uname -m          any
//	distribution  lsb_release -is   linux
//	hostname      hostname          linux
func DefaultProbes() []Probe {
	linux := OnlyFamily(PlatformLinux)
	return []Probe{
		{Field: FieldName, Command: "lsb_release", Args: []string{"-si"}, Gate: linux},
		{Field: FieldVersion, Command: "lsb_release", Args: []string{"-sr"}, Gate: linux},
		{Field: FieldArchitecture, Command: "uname", Args: []string{"-m"}, Gate: AnyPlatform},
		{Field: FieldDistribution, Command: "lsb_release", Args: []string{"-is"}, Gate: linux},
		{Field: FieldHostname, Command: "hostname", Gate: linux},
	}
}
