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

package osrelease

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	cnserrors "github.com/NVIDIA/hostid/pkg/errors"
)

var (
	filePathPrimary  = "/etc/os-release"
	filePathFallback = "/usr/lib/os-release"
)

const (
	maxFileSize = 1 << 20 // 1MB
	kvDelimiter = "="
	trimChars   = `"'`
)

// Common os-release keys.
const (
	KeyID         = "ID"
	KeyName       = "NAME"
	KeyVersionID  = "VERSION_ID"
	KeyPrettyName = "PRETTY_NAME"
)

// Reader reads os-release data from the filesystem.
type Reader struct {
	paths []string
}

// NewReader returns a Reader for the standard locations. Per freedesktop.org
// /etc/os-release is used when present, else /usr/lib/os-release.
func NewReader() *Reader {
	return &Reader{paths: []string{filePathPrimary, filePathFallback}}
}

// NewReaderFromPaths returns a Reader that tries paths in order.
func NewReaderFromPaths(paths ...string) *Reader {
	return &Reader{paths: paths}
}

// Read returns the key/value pairs of the first os-release file that exists.
//
//	NAME="Ubuntu"
//	ID=ubuntu
//	VERSION_ID="22.04"
//	PRETTY_NAME="Ubuntu 22.04.4 LTS"
func (r *Reader) Read(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := r.locate()
	if err != nil {
		return nil, err
	}

	b, err := readLimited(path)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	return Parse(string(b)), nil
}

// readLimited reads at most maxFileSize bytes and fails if the file is larger.
func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to open os release "+path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxFileSize+1))
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to read os release "+path, err)
	}
	if len(b) > maxFileSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, maxFileSize)
	}
	return b, nil
}

func (r *Reader) locate() (string, error) {
	if len(r.paths) == 0 {
		return "", cnserrors.New(cnserrors.ErrCodeNotFound, "no os-release paths configured")
	}
	for _, p := range r.paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "os-release file not found",
		os.ErrNotExist, map[string]any{"paths": r.paths})
}

// Parse parses os-release content. Comments, blank lines and lines without a
// value are skipped and surrounding quotes are removed.
func Parse(content string) map[string]string {
	lines := strings.Split(content, "\n")
	res := make(map[string]string, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, kvDelimiter)
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), trimChars)
		if !found || key == "" || value == "" {
			slog.Debug("skipping malformed os-release line", slog.String("line", line))
			continue
		}
		res[key] = value
	}
	return res
}
