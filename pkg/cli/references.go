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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostid/pkg/hostid"
)

func referencesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "references",
		EnableShellCompletion: true,
		Usage:                 "Print the effective reference tables",
		Description: `Print the architectures and distributions a detected identity is checked
against. Without --reference-file the built-in tables are printed.

The output of this command is itself a valid reference file:
  hostid references --format yaml > references.yaml`,
		Flags: []cli.Flag{
			referenceFileFlag(),
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			tables, err := loadReferenceTables(cmd)
			if err != nil {
				return err
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

			return w.Serialize(ctx, hostid.ReferenceFile{
				Architectures: tables.Architectures(),
				Distributions: tables.Distributions(),
			})
		},
	}
}
