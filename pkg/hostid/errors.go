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
	"errors"
	"fmt"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

// Sentinels for matching detection failures with errors.Is.
var (
	ErrNameDetection     = errors.New("failed to detect the OS distribution name")
	ErrVersionDetection  = errors.New("failed to detect the OS version")
	ErrArchDetection     = errors.New("failed to detect the architecture")
	ErrDistroDetection   = errors.New("failed to detect the OS distribution")
	ErrHostnameDetection = errors.New("failed to detect the hostname")

	// ErrUnsupportedPlatform is the cause of a DetectionError whose probe is
	// not available on the running platform.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrDataIntegrity matches every IntegrityError.
	ErrDataIntegrity = errors.New("host identity failed the integrity check")
)

var sentinelByField = map[Field]error{
	FieldName:         ErrNameDetection,
	FieldVersion:      ErrVersionDetection,
	FieldArchitecture: ErrArchDetection,
	FieldDistribution: ErrDistroDetection,
	FieldHostname:     ErrHostnameDetection,
}

// DetectionError reports that one identity field could not be detected,
// either because its probe is gated off on Platform or because the probe failed.
type DetectionError struct {
	Field    Field
	Platform Platform
	Err      error
}

// Error implements the error interface.
func (e *DetectionError) Error() string {
	if errors.Is(e.Err, ErrUnsupportedPlatform) {
		return fmt.Sprintf("failed to detect %s: %v %q", e.Field, e.Err, e.Platform)
	}
	return fmt.Sprintf("failed to detect %s: %v", e.Field, e.Err)
}

// Unwrap returns the probe failure or ErrUnsupportedPlatform.
func (e *DetectionError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the failed field.
func (e *DetectionError) Is(target error) bool {
	s, ok := sentinelByField[e.Field]
	return ok && s == target
}

// ErrorCode implements errors.Coder.
func (e *DetectionError) ErrorCode() cnserrors.ErrorCode {
	return e.Field.ErrorCode()
}

// IntegrityError reports that every probe succeeded but the architecture or
// distribution is not in the reference tables.
type IntegrityError struct {
	Architecture         string
	Distribution         string
	ArchitectureAccepted bool
	DistributionAccepted bool
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	switch {
	case !e.ArchitectureAccepted && !e.DistributionAccepted:
		return fmt.Sprintf("%v: unknown architecture %q and distribution %q", ErrDataIntegrity, e.Architecture, e.Distribution)
	case !e.ArchitectureAccepted:
		return fmt.Sprintf("%v: unknown architecture %q", ErrDataIntegrity, e.Architecture)
	default:
		return fmt.Sprintf("%v: unknown distribution %q", ErrDataIntegrity, e.Distribution)
	}
}

// Is matches ErrDataIntegrity.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

// ErrorCode implements errors.Coder.
func (e *IntegrityError) ErrorCode() cnserrors.ErrorCode {
	return cnserrors.ErrCodeDataIntegrity
}
