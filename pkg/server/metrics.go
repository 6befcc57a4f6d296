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
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Requests are labelled by the registered route, never the raw path, so
// unknown paths all count against "/".
var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostid_http_requests_total",
			Help: "API requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostid_http_request_duration_seconds",
			Help:    "API request latency, including any host commands the request ran",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"route"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostid_http_requests_in_flight",
			Help: "API requests currently being served",
		},
	)

	errorResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostid_http_error_responses_total",
			Help: "Error responses by error code",
		},
		[]string{"code"},
	)

	throttledRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostid_http_throttled_requests_total",
			Help: "API requests rejected by the rate limiter before any command ran",
		},
	)

	recoveredPanics = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostid_http_recovered_panics_total",
			Help: "Panics recovered in API handlers",
		},
	)

	serverReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostid_ready",
			Help: "1 when the last readiness check passed, 0 otherwise",
		},
	)
)

func (s *Server) metricsMiddleware(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.Status())).Inc()
		requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
