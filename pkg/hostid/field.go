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
	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

// Field identifies one probed attribute of a HostIdentity.
type Field string

// Identity fields in detection order.
const (
	FieldName         Field = "name"
	FieldVersion      Field = "version"
	FieldArchitecture Field = "architecture"
	FieldDistribution Field = "distribution"
	FieldHostname     Field = "hostname"
)

// Fields lists every identity field in the order they are detected.
var Fields = []Field{
	FieldName,
	FieldVersion,
	FieldArchitecture,
	FieldDistribution,
	FieldHostname,
}

// String returns the string representation of the Field.
func (f Field) String() string {
	return string(f)
}

// ErrorCode returns the code reported when detection of f fails.
func (f Field) ErrorCode() cnserrors.ErrorCode {
	switch f {
	case FieldName:
		return cnserrors.ErrCodeNameDetection
	case FieldVersion:
		return cnserrors.ErrCodeVersionDetection
	case FieldArchitecture:
		return cnserrors.ErrCodeArchDetection
	case FieldDistribution:
		return cnserrors.ErrCodeDistroDetection
	case FieldHostname:
		return cnserrors.ErrCodeHostnameDetection
	default:
		return cnserrors.ErrCodeInternal
	}
}
