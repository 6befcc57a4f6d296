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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

var (
	// values reported by `uname -m`
	defaultArchitectures = []string{
		"x86_64",
		"aarch64",
		"arm64",
		"armv7l",
		"ppc64le",
		"s390x",
		"riscv64",
	}

	// distributor IDs reported by `lsb_release -is`
	defaultDistributions = []string{
		"AlmaLinux",
		"Amazon",
		"Arch",
		"CentOS",
		"Debian",
		"Fedora",
		"Gentoo",
		"Kali",
		"Linuxmint",
		"ManjaroLinux",
		"OracleServer",
		"Pop",
		"Raspbian",
		"RedHatEnterprise",
		"RedHatEnterpriseServer",
		"Rocky",
		"SUSE",
		"Ubuntu",
		"openSUSE",
	}

	defaultTables = sync.OnceValue(func() *ReferenceTables {
		t, err := NewReferenceTables(defaultArchitectures, defaultDistributions)
		if err != nil {
			panic(fmt.Sprintf("invalid built-in reference tables: %v", err))
		}
		return t
	})
)

// ReferenceTables holds the architectures and distributions an identity must
// match to pass the integrity check. Tables are read-only after construction
// and safe to share between goroutines.
type ReferenceTables struct {
	architectures map[string]struct{}
	distributions map[string]struct{}
}

// NewReferenceTables builds tables from the accepted values. Values are
// trimmed and matched case-sensitively. Both sets must be non-empty.
func NewReferenceTables(architectures, distributions []string) (*ReferenceTables, error) {
	archs, err := toSet("architecture", architectures)
	if err != nil {
		return nil, err
	}
	distros, err := toSet("distribution", distributions)
	if err != nil {
		return nil, err
	}
	return &ReferenceTables{
		architectures: archs,
		distributions: distros,
	}, nil
}

// DefaultReferenceTables returns the built-in tables. The same instance is
// returned on every call.
func DefaultReferenceTables() *ReferenceTables {
	return defaultTables()
}

func toSet(kind string, values []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, fmt.Errorf("%s reference table contains a blank entry", kind)
		}
		set[v] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%s reference table is empty", kind)
	}
	return set, nil
}

// AcceptsArchitecture reports whether arch is in the architecture table.
func (t *ReferenceTables) AcceptsArchitecture(arch string) bool {
	_, ok := t.architectures[arch]
	return ok
}

// AcceptsDistribution reports whether distro is in the distribution table.
func (t *ReferenceTables) AcceptsDistribution(distro string) bool {
	_, ok := t.distributions[distro]
	return ok
}

// Architectures returns the accepted architectures, sorted.
func (t *ReferenceTables) Architectures() []string {
	return sortedKeys(t.architectures)
}

// Distributions returns the accepted distributions, sorted.
func (t *ReferenceTables) Distributions() []string {
	return sortedKeys(t.distributions)
}

// Check returns an *IntegrityError unless both architecture and
// distribution are accepted.
func (t *ReferenceTables) Check(architecture, distribution string) error {
	archOK := t.AcceptsArchitecture(architecture)
	distroOK := t.AcceptsDistribution(distribution)
	if archOK && distroOK {
		return nil
	}
	return &IntegrityError{
		Architecture:         architecture,
		Distribution:         distribution,
		ArchitectureAccepted: archOK,
		DistributionAccepted: distroOK,
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ReferenceFile is the on-disk layout of reference tables.
//
//	architectures: [x86_64, aarch64]
//	distributions: [Ubuntu, Debian]
type ReferenceFile struct {
	Architectures []string `json:"architectures" yaml:"architectures"`
	Distributions []string `json:"distributions" yaml:"distributions"`
}

// LoadReferenceTables reads tables from a YAML (.yaml, .yml) or JSON with
// comments (.json, .jsonc) file. Every failure carries ErrCodeInvalidRequest.
func LoadReferenceTables(path string) (*ReferenceTables, error) {
	if path == "" {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "reference file path cannot be empty")
	}
	details := map[string]any{"path": path}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to read reference file %q", path), err, details)
	}

	var rf ReferenceFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &rf)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(b), &rf)
	default:
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported reference file extension %q", ext), details)
	}
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse reference file %q", path), err, details)
	}

	t, err := NewReferenceTables(rf.Architectures, rf.Distributions)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid reference file %q", path), err, details)
	}
	return t, nil
}
