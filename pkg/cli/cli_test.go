package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
	"github.com/NVIDIA/hostid/pkg/hostid"
	"github.com/NVIDIA/hostid/pkg/probe/probetest"
	"github.com/NVIDIA/hostid/pkg/serializer"
	"github.com/NVIDIA/hostid/pkg/snapshotter"
)

func hasName(flag cli.Flag, name string) bool {
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func findCommand(root *cli.Command, name string) *cli.Command {
	for _, c := range root.Commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func identitySteps(arch string) []probetest.Step {
	return []probetest.Step{
		probetest.OK("Ubuntu"),
		probetest.OK("22.04"),
		probetest.OK(arch),
		probetest.OK("Ubuntu"),
		probetest.OK("alu"),
	}
}

func run(t *testing.T, fake *probetest.Exec, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd(fake)
	root.Writer = &buf
	err := root.Run(context.Background(), append([]string{name}, args...))
	return buf.String(), err
}

func TestRootCommandStructure(t *testing.T) {
	root := newRootCmd(probetest.New())

	assert.Equal(t, name, root.Name)
	for _, flagName := range []string{"log-level", "debug"} {
		found := false
		for _, flag := range root.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		assert.True(t, found, "root flag %q not found", flagName)
	}

	required := map[string][]string{
		"detect":     {"reference-file", "platform", "probe-timeout", "output", "format"},
		"snapshot":   {"timeout", "os-release", "reference-file", "output", "format"},
		"references": {"reference-file", "output", "format"},
	}
	for cmdName, flags := range required {
		cmd := findCommand(root, cmdName)
		require.NotNil(t, cmd, "command %q not found", cmdName)
		assert.NotNil(t, cmd.Action, "command %q has no action", cmdName)

		for _, flagName := range flags {
			found := false
			for _, flag := range cmd.Flags {
				if hasName(flag, flagName) {
					found = true
					break
				}
			}
			assert.True(t, found, "flag %q not found on %q", flagName, cmdName)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "default", args: nil, wantFormat: serializer.FormatJSON},
		{name: "yaml", args: []string{"--format", "yaml"}, wantFormat: serializer.FormatYAML},
		{name: "table upper case", args: []string{"--format", "TABLE"}, wantFormat: serializer.FormatTable},
		{name: "from output extension", args: []string{"--output", "host.yml"}, wantFormat: serializer.FormatYAML},
		{name: "explicit format wins", args: []string{"--output", "host.yml", "--format", "json"}, wantFormat: serializer.FormatJSON},
		{name: "invalid xml", args: []string{"--format", "xml"}, wantErr: true},
		{name: "empty", args: []string{"--format", ""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got serializer.Format
			var gotErr error
			cmd := &cli.Command{
				Flags: []cli.Flag{outputFlag(), formatFlag()},
				Action: func(_ context.Context, c *cli.Command) error {
					got, gotErr = parseOutputFormat(c)
					return nil
				},
			}

			require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, tt.args...)))
			if tt.wantErr {
				require.Error(t, gotErr)
				assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(gotErr))
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.wantFormat, got)
		})
	}
}

func TestDetectCommand_JSON(t *testing.T) {
	fake := probetest.New(identitySteps("x86_64")...)

	out, err := run(t, fake, "detect", "--platform", "linux")
	require.NoError(t, err)

	var rec hostid.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, hostid.Record{
		Name:         "Ubuntu",
		Version:      "22.04",
		Architecture: "x86_64",
		Distribution: "Ubuntu",
		Hostname:     "alu",
		Validated:    true,
	}, rec)

	assert.Equal(t, []string{"lsb_release", "-si"}, fake.Argv(t, 0))
	assert.Equal(t, []string{"hostname"}, fake.Argv(t, 4))
}

func TestDetectCommand_Table(t *testing.T) {
	out, err := run(t, probetest.New(identitySteps("x86_64")...), "detect", "--platform", "linux", "--format", "table")
	require.NoError(t, err)

	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Architecture:")
	assert.Contains(t, out, "x86_64")
	assert.Contains(t, out, "Hostname:")
	assert.Contains(t, out, "Validated:")
}

func TestDetectCommand_IntegrityFailure(t *testing.T) {
	out, err := run(t, probetest.New(identitySteps("i386")...), "detect", "--platform", "linux")
	require.Error(t, err)

	assert.ErrorIs(t, err, hostid.ErrDataIntegrity)
	assert.Equal(t, cnserrors.ErrCodeDataIntegrity, cnserrors.CodeOf(err))
	assert.Empty(t, out, "no identity may be printed on failure")
}

func TestDetectCommand_ReferenceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("architectures: [i386]\ndistributions: [Ubuntu]\n"), 0o600))

	out, err := run(t, probetest.New(identitySteps("i386")...), "detect", "--platform", "linux", "--reference-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"architecture": "i386"`)
}

func TestDetectCommand_BadReferenceFile(t *testing.T) {
	fake := probetest.New()
	_, err := run(t, fake, "detect", "--reference-file", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, cnserrors.ErrCodeInvalidRequest, cnserrors.CodeOf(err))
	assert.Zero(t, fake.Calls(), "no probe may run without reference tables")
}

func TestDetectCommand_UnsupportedPlatform(t *testing.T) {
	fake := probetest.New()
	_, err := run(t, fake, "detect", "--platform", "windows")
	require.Error(t, err)

	assert.ErrorIs(t, err, hostid.ErrUnsupportedPlatform)
	assert.ErrorIs(t, err, hostid.ErrNameDetection)
	assert.Zero(t, fake.Calls())
}

func TestDetectCommand_ProbeFailure(t *testing.T) {
	steps := identitySteps("x86_64")[:3]
	steps[2] = probetest.Exit(1)
	fake := probetest.New(steps...)

	_, err := run(t, fake, "detect", "--platform", "linux")
	require.Error(t, err)
	assert.ErrorIs(t, err, hostid.ErrArchDetection)
	assert.Equal(t, cnserrors.ErrCodeArchDetection, cnserrors.CodeOf(err))
	assert.Equal(t, 3, fake.Calls())
}

func TestReferencesCommand(t *testing.T) {
	out, err := run(t, probetest.New(), "references", "--format", "yaml")
	require.NoError(t, err)

	var rf hostid.ReferenceFile
	require.NoError(t, yaml.Unmarshal([]byte(out), &rf))
	assert.Equal(t, hostid.DefaultReferenceTables().Architectures(), rf.Architectures)
	assert.Equal(t, hostid.DefaultReferenceTables().Distributions(), rf.Distributions)
}

func TestReferencesCommand_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.yaml")

	_, err := run(t, probetest.New(), "references", "--output", path)
	require.NoError(t, err)

	tables, err := hostid.LoadReferenceTables(path)
	require.NoError(t, err)
	assert.Equal(t, hostid.DefaultReferenceTables().Architectures(), tables.Architectures())
}

func TestSnapshotCommand(t *testing.T) {
	dir := t.TempDir()
	release := filepath.Join(dir, "os-release")
	require.NoError(t, os.WriteFile(release, []byte("ID=ubuntu\nVERSION_ID=\"22.04\"\n"), 0o600))
	out := filepath.Join(dir, "host.yaml")

	steps := append(identitySteps("x86_64"), probetest.OK("6.8.0-45-generic"))
	_, err := run(t, probetest.New(steps...),
		"snapshot", "--platform", "linux", "--os-release", release, "--output", out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)

	var snap snapshotter.Snapshot
	require.NoError(t, yaml.Unmarshal(b, &snap))
	assert.Equal(t, snapshotter.FullAPIVersion, snap.APIVersion)
	assert.Equal(t, "alu", snap.System.Hostname)
	assert.Equal(t, "Ubuntu", snap.System.Distro)
	assert.Equal(t, "6.8.0-45-generic", snap.System.Kernel)
	assert.Equal(t, "22.04", snap.Release["VERSION_ID"])
}

func TestSnapshotCommand_DetectionFailure(t *testing.T) {
	out := filepath.Join(t.TempDir(), "host.json")

	_, err := run(t, probetest.New(identitySteps("i386")...),
		"snapshot", "--platform", "linux", "--os-release", filepath.Join(t.TempDir(), "none"), "--output", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, hostid.ErrDataIntegrity)

	b, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Empty(t, b)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitCodeCanceled, exitCode(context.Canceled))
	assert.Equal(t, exitCodeCanceled, exitCode(context.DeadlineExceeded))
	assert.Equal(t, exitCodeError, exitCode(hostid.ErrDataIntegrity))
}
