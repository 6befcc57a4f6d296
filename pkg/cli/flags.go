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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
	"k8s.io/utils/exec"

	"github.com/NVIDIA/hostid/pkg/defaults"
	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/hostid"
	"github.com/NVIDIA/hostid/pkg/probe"
	"github.com/NVIDIA/hostid/pkg/serializer"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
		Sources: cli.EnvVars("HOSTID_OUTPUT"),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(serializer.FormatJSON),
		Sources: cli.EnvVars("HOSTID_FORMAT"),
	}
}

func referenceFileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "reference-file",
		Aliases: []string{"r"},
		Usage:   "YAML or JSONC file with accepted architectures and distributions (default: built-in tables)",
		Sources: cli.EnvVars("HOSTID_REFERENCE_FILE"),
	}
}

func platformFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "platform",
		Usage:   "platform used to gate probes (default: current OS)",
		Sources: cli.EnvVars("HOSTID_PLATFORM"),
	}
}

func probeTimeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:    "probe-timeout",
		Usage:   "maximum time a single probe command may run (0 disables the limit)",
		Value:   defaults.ProbeTimeout,
		Sources: cli.EnvVars("HOSTID_PROBE_TIMEOUT"),
	}
}

// parseOutputFormat returns the --format value. When --format was not given
// and --output names a file, the format follows the file extension.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(strings.ToLower(strings.TrimSpace(cmd.String("format"))))
	if !cmd.IsSet("format") {
		if out := strings.TrimSpace(cmd.String("output")); out != "" {
			format = serializer.FormatFromPath(out)
		}
	}
	if format.IsUnknown() {
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", format),
			map[string]any{"supported": serializer.SupportedFormats()})
	}
	return format, nil
}

// loadReferenceTables returns the tables named by --reference-file, or the
// built-in tables when the flag is empty.
func loadReferenceTables(cmd *cli.Command) (*hostid.ReferenceTables, error) {
	path := strings.TrimSpace(cmd.String("reference-file"))
	if path == "" {
		return hostid.DefaultReferenceTables(), nil
	}
	return hostid.LoadReferenceTables(path)
}

// buildDetector wires a detector from the command flags.
func buildDetector(cmd *cli.Command, exe exec.Interface) (*hostid.Detector, error) {
	tables, err := loadReferenceTables(cmd)
	if err != nil {
		return nil, err
	}

	timeout := cmd.Duration("probe-timeout")
	if timeout < 0 {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid probe timeout: %s", timeout))
	}

	opts := []hostid.Option{
		hostid.WithRunner(probe.NewRunner(
			probe.WithExecutor(exe),
			probe.WithTimeout(timeout),
		)),
	}
	if p := strings.TrimSpace(cmd.String("platform")); p != "" {
		opts = append(opts, hostid.WithPlatform(hostid.Platform(strings.ToLower(p))))
	}

	return hostid.NewDetector(tables, opts...), nil
}

// newSerializer writes to --output, or to the root command writer when no
// path is given.
func newSerializer(cmd *cli.Command, format serializer.Format) (*serializer.Writer, error) {
	path := strings.TrimSpace(cmd.String("output"))
	if path == "" {
		return serializer.NewWriter(format, cmd.Root().Writer), nil
	}
	return serializer.NewFileWriterOrStdout(format, path)
}
