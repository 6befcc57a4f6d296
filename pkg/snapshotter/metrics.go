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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostid_snapshot_duration_seconds",
			Help:    "Time taken to capture a complete host snapshot",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	snapshotTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostid_snapshot_total",
			Help: "Total number of host snapshot attempts",
		},
		[]string{"status"}, // success or error
	)

	snapshotStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostid_snapshot_step_duration_seconds",
			Help:    "Time taken by individual snapshot steps",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"step"}, // identity, release
	)
)
