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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/NVIDIA/hostid/pkg/defaults"
	"github.com/NVIDIA/hostid/pkg/hostid"
	"github.com/NVIDIA/hostid/pkg/logging"
	"github.com/NVIDIA/hostid/pkg/osrelease"
	"github.com/NVIDIA/hostid/pkg/probe"
	"github.com/NVIDIA/hostid/pkg/server"
)

const (
	name           = "hostidd"
	versionDefault = "dev"

	// EnvReferenceFile names a reference tables file that replaces the
	// built-in tables.
	EnvReferenceFile = "HOSTID_REFERENCE_FILE"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/hostid/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	tables, err := referenceTables(os.Getenv(EnvReferenceFile))
	if err != nil {
		return err
	}

	det := hostid.NewDetector(tables,
		hostid.WithRunner(probe.NewRunner(probe.WithTimeout(defaults.ProbeTimeout))),
	)
	h := NewHandler(det, osrelease.NewReader(), tables, defaults.ServerDetectTimeout)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
		server.WithReadinessCheck(h.Ready),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func referenceTables(path string) (*hostid.ReferenceTables, error) {
	if path == "" {
		return hostid.DefaultReferenceTables(), nil
	}
	tables, err := hostid.LoadReferenceTables(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", EnvReferenceFile, err)
	}
	return tables, nil
}
