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

package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
	"k8s.io/utils/exec"

	"github.com/NVIDIA/hostid/pkg/defaults"
	"github.com/NVIDIA/hostid/pkg/osrelease"
	"github.com/NVIDIA/hostid/pkg/snapshotter"
)

func snapshotCmd(exe exec.Interface) *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a host snapshot document",
		Description: `Capture a snapshot of the host combining the validated identity with the
os-release data of the machine.

The snapshot can be output in JSON, YAML, or table format. When --output is
given without --format the format follows the file extension.

# Examples

Write a YAML snapshot:
  hostid snapshot --output host.yaml

Print the snapshot as a table:
  hostid snapshot --format table`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for capturing the snapshot",
				Value: defaults.CLISnapshotTimeout,
			},
			&cli.StringFlag{
				Name:    "os-release",
				Usage:   "read os-release data from this file instead of the standard locations",
				Sources: cli.EnvVars("HOSTID_OS_RELEASE"),
			},
			referenceFileFlag(),
			platformFlag(),
			probeTimeoutFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			det, err := buildDetector(cmd, exe)
			if err != nil {
				return err
			}

			release := osrelease.NewReader()
			if p := strings.TrimSpace(cmd.String("os-release")); p != "" {
				release = osrelease.NewReaderFromPaths(p)
			}

			w, err := newSerializer(cmd, outFormat)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := w.Close(); closeErr != nil {
					slog.Warn("failed to close output", "error", closeErr)
				}
			}()

			if timeout := cmd.Duration("timeout"); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			hs := &snapshotter.HostSnapshotter{
				Version:    version,
				Detector:   det,
				Kernel:     det,
				Release:    release,
				Serializer: w,
			}
			return hs.Measure(ctx)
		},
	}
}
