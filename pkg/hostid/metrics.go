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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	detectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hostid_detection_duration_seconds",
			Help:    "Time taken to detect and validate a host identity",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	detectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostid_detection_total",
			Help: "Total number of host identity detection attempts",
		},
		[]string{"status"}, // success or error
	)

	detectionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostid_detection_failures_total",
			Help: "Failed host identity detections by error code",
		},
		[]string{"code"},
	)

	probeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostid_probe_duration_seconds",
			Help:    "Time taken by individual identity probes",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"field"},
	)
)
