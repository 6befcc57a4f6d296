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

// Package server provides the HTTP server used by the hostid daemon.
//
// The server is generic: applications register their routes with
// WithHandler and the server wraps each one in a middleware chain with
// metrics, API version negotiation, request IDs, panic recovery, rate
// limiting (golang.org/x/time/rate) and request logging. The rate limiter
// runs before the route handler, so a throttled request never starts any
// host command.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("hostidd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/identity": h.HandleIdentity,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # System Endpoints
//
// These are served without middleware or rate limiting:
//
//	GET /health   liveness, always 200
//	GET /ready    readiness, 503 until the listener is up, during shutdown
//	              and while the WithReadinessCheck check fails
//	GET /metrics  Prometheus metrics
//
// Request metrics are labelled by registered route, so unknown paths are
// all counted against "/". Error responses are counted by error code and
// hostid_ready mirrors the last /ready answer.
//
// A root handler listing the registered routes is added unless the
// application registers "/" itself.
//
// # Errors
//
// Failures are written as ErrorResponse documents. WriteErrorFromErr maps
// the error code of the failure to the HTTP status:
//
//	INVALID_REQUEST      400
//	NOT_FOUND            404
//	RATE_LIMIT_EXCEEDED  429
//	DATA_INTEGRITY       422
//	TIMEOUT              504
//	anything else        500
//
// An error whose chain holds context.DeadlineExceeded is reported as a
// retryable TIMEOUT whatever its own code, which is kept in the
// "failedCode" detail.
//
// # Configuration
//
//	PORT                      listen port (default: 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default: 30)
package server
