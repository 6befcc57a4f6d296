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
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/utils/exec"

	"github.com/NVIDIA/hostid/pkg/defaults"
	"github.com/NVIDIA/hostid/pkg/hostid"
	"github.com/NVIDIA/hostid/pkg/serializer"
)

func detectCmd(exe exec.Interface) *cli.Command {
	return &cli.Command{
		Name:                  "detect",
		EnableShellCompletion: true,
		Usage:                 "Detect and validate the host identity",
		Description: `Run the identity probes in order and print the validated host identity:
  - name          lsb_release -si
  - version       lsb_release -sr
  - architecture  uname -m
  - distribution  lsb_release -is
  - hostname      hostname

The first probe that fails aborts detection. When every probe succeeds the
architecture and distribution are checked against the reference tables and
the identity is printed only if both are known.

# Examples

Print the identity as a table:
  hostid detect --format table

Validate against a custom reference file:
  hostid detect --reference-file references.yaml`,
		Flags: []cli.Flag{
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

			ctx, cancel := context.WithTimeout(ctx, defaults.DetectTimeout)
			defer cancel()

			id, err := det.Detect(ctx)
			if err != nil {
				return fmt.Errorf("failed to detect host identity on %s: %w", det.Platform(), err)
			}

			if outFormat == serializer.FormatTable && cmd.String("output") == "" {
				return printIdentity(cmd.Root().Writer, id)
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

			return w.Serialize(ctx, id.Record())
		},
	}
}

// printIdentity writes the identity as an aligned two column table.
func printIdentity(out io.Writer, id *hostid.HostIdentity) error {
	caser := cases.Title(language.English)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range hostid.Fields {
		fmt.Fprintf(tw, "%s:\t%s\n", caser.String(f.String()), id.Value(f))
	}
	fmt.Fprintf(tw, "%s:\t%s\n", caser.String("validated"), strconv.FormatBool(id.IsValidated()))
	return tw.Flush()
}
