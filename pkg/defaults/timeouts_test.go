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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"ProbeTimeout", ProbeTimeout, 1 * time.Second, 30 * time.Second},
		{"DetectTimeout", DetectTimeout, 10 * time.Second, 5 * time.Minute},
		{"ReleaseReadTimeout", ReleaseReadTimeout, 1 * time.Second, 30 * time.Second},
		{"CLISnapshotTimeout", CLISnapshotTimeout, 1 * time.Minute, 10 * time.Minute},
		{"ServerReadTimeout", ServerReadTimeout, 1 * time.Second, 1 * time.Minute},
		{"ServerReadHeaderTimeout", ServerReadHeaderTimeout, 1 * time.Second, 30 * time.Second},
		{"ServerWriteTimeout", ServerWriteTimeout, 5 * time.Second, 2 * time.Minute},
		{"ServerIdleTimeout", ServerIdleTimeout, 30 * time.Second, 5 * time.Minute},
		{"ServerShutdownTimeout", ServerShutdownTimeout, 5 * time.Second, 2 * time.Minute},
		{"ServerDetectTimeout", ServerDetectTimeout, 5 * time.Second, 1 * time.Minute},
		{"ServerReadyTimeout", ServerReadyTimeout, 100 * time.Millisecond, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestDetectTimeoutCoversAllProbes(t *testing.T) {
	if DetectTimeout < ProbeCount*ProbeTimeout {
		t.Errorf("DetectTimeout (%v) should cover %d probes at ProbeTimeout (%v)",
			DetectTimeout, ProbeCount, ProbeTimeout)
	}
}

func TestSnapshotTimeoutCoversDetection(t *testing.T) {
	if CLISnapshotTimeout <= DetectTimeout {
		t.Errorf("CLISnapshotTimeout (%v) should exceed DetectTimeout (%v)",
			CLISnapshotTimeout, DetectTimeout)
	}
}

func TestServerWriteTimeoutCoversDetection(t *testing.T) {
	if ServerWriteTimeout <= ServerDetectTimeout {
		t.Errorf("ServerWriteTimeout (%v) should exceed ServerDetectTimeout (%v)",
			ServerWriteTimeout, ServerDetectTimeout)
	}
}
