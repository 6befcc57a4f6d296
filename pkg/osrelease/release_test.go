package osrelease

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

const ubuntuRelease = `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
# comment line
ID=ubuntu
ID_LIKE=debian

MALFORMED
EMPTY=""
HOME_URL='https://www.ubuntu.com/'
`

func TestParse(t *testing.T) {
	got := Parse(ubuntuRelease)

	assert.Equal(t, map[string]string{
		KeyPrettyName: "Ubuntu 22.04.4 LTS",
		KeyName:       "Ubuntu",
		KeyVersionID:  "22.04",
		KeyID:         "ubuntu",
		"ID_LIKE":     "debian",
		"HOME_URL":    "https://www.ubuntu.com/",
	}, got)
}

func TestParse_ValueWithDelimiter(t *testing.T) {
	got := Parse(`BUG_REPORT_URL="https://example.com/?a=b"`)
	assert.Equal(t, "https://example.com/?a=b", got["BUG_REPORT_URL"])
}

func writeRelease(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func TestReader_Read(t *testing.T) {
	dir := t.TempDir()
	path := writeRelease(t, dir, "os-release", []byte(ubuntuRelease))

	got, err := NewReaderFromPaths(path).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ubuntu", got[KeyID])
}

func TestReader_Fallback(t *testing.T) {
	dir := t.TempDir()
	fallback := writeRelease(t, dir, "usr-lib-os-release", []byte("ID=debian\n"))

	got, err := NewReaderFromPaths(filepath.Join(dir, "missing"), fallback).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "debian", got[KeyID])
}

func TestReader_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("no file", func(t *testing.T) {
		_, err := NewReaderFromPaths(filepath.Join(dir, "a"), filepath.Join(dir, "b")).Read(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Equal(t, cnserrors.ErrCodeNotFound, cnserrors.CodeOf(err))

		var se *cnserrors.StructuredError
		require.ErrorAs(t, err, &se)
		assert.Len(t, se.Context["paths"], 2)
	})

	t.Run("no paths", func(t *testing.T) {
		_, err := NewReaderFromPaths().Read(context.Background())
		require.Error(t, err)
		assert.Equal(t, cnserrors.ErrCodeNotFound, cnserrors.CodeOf(err))
	})

	t.Run("too large", func(t *testing.T) {
		content := "ID=ubuntu\n" + strings.Repeat("#", maxFileSize)
		path := writeRelease(t, dir, "large", []byte(content))
		_, err := NewReaderFromPaths(path).Read(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum size")
	})

	t.Run("directory", func(t *testing.T) {
		_, err := NewReaderFromPaths(t.TempDir()).Read(context.Background())
		require.Error(t, err)
		assert.Equal(t, cnserrors.ErrCodeInternal, cnserrors.CodeOf(err))
		assert.Contains(t, err.Error(), "failed to read os release")
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		path := writeRelease(t, dir, "bad", []byte{'I', 'D', '=', 0xff})
		_, err := NewReaderFromPaths(path).Read(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid UTF-8")
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewReader().Read(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReader_MaxSizeAccepted(t *testing.T) {
	content := "ID=ubuntu\n"
	content += strings.Repeat("#", maxFileSize-len(content))
	path := writeRelease(t, t.TempDir(), "os-release", []byte(content))

	got, err := NewReaderFromPaths(path).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ubuntu", got[KeyID])
}

func TestReader_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	got, err := NewReader().Read(context.Background())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.Skip("/etc/os-release not available on this system")
		}
		t.Fatalf("Read() failed: %v", err)
	}
	t.Logf("Found %d os-release fields", len(got))
}
