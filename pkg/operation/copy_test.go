// Copyright 2025 walteh LLC
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

package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// 🧪 createTestEnv creates a source file and a context whose logger writes to a buffer
func createTestEnv(t *testing.T, name, content string) (context.Context, *bytes.Buffer, string, string) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	return logger.WithContext(context.Background()), &buf, src, filepath.Join(tmpDir, "out")
}

func TestCopierCopy(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		wantBucket string
	}{
		{name: "with_extension", file: "report.pdf", wantBucket: "pdf"},
		{name: "without_extension", file: "Makefile", wantBucket: "other"},
		{name: "upper_case_extension", file: "PHOTO.JPG", wantBucket: "JPG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf, src, dest := createTestEnv(t, tt.file, "test content")

			out := NewCopier().Copy(ctx, src, dest)

			require.NoError(t, out.Err)
			assert.Equal(t, StatusSucceeded, out.Status)
			assert.Equal(t, tt.wantBucket, out.Bucket)
			assert.Equal(t, filepath.Join(dest, tt.wantBucket, tt.file), out.Target)
			assert.Equal(t, int64(len("test content")), out.Size)

			content, err := os.ReadFile(out.Target)
			require.NoError(t, err)
			assert.Equal(t, "test content", string(content))

			assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "exactly one log line expected")
			assert.Contains(t, buf.String(), `"level":"info"`)
			assert.Contains(t, buf.String(), src)
			assert.Contains(t, buf.String(), out.Target)
		})
	}
}

func TestCopierOverwrites(t *testing.T) {
	ctx, _, src, dest := createTestEnv(t, "a.txt", "new")
	target := filepath.Join(dest, "txt", "a.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, os.WriteFile(target, []byte("old content that is longer"), 0644))

	out := NewCopier().Copy(ctx, src, dest)
	require.Equal(t, StatusSucceeded, out.Status)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content), "target should be replaced in its entirety")
}

func TestCopierErrors(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, c *Copier, src, dest string) string
		errContains string
	}{
		{
			name: "missing_source",
			setup: func(t *testing.T, c *Copier, src, dest string) string {
				require.NoError(t, os.Remove(src))
				return src
			},
			errContains: "reading source file",
		},
		{
			name: "bucket_is_a_file",
			setup: func(t *testing.T, c *Copier, src, dest string) string {
				require.NoError(t, os.MkdirAll(dest, 0755))
				require.NoError(t, os.WriteFile(filepath.Join(dest, "txt"), []byte("x"), 0644))
				return src
			},
			errContains: "creating bucket directory",
		},
		{
			name: "target_is_a_directory",
			setup: func(t *testing.T, c *Copier, src, dest string) string {
				require.NoError(t, os.MkdirAll(filepath.Join(dest, "txt", "a.txt"), 0755))
				return src
			},
			errContains: "writing target file",
		},
		{
			name: "write_failure",
			setup: func(t *testing.T, c *Copier, src, dest string) string {
				c.writeFile = func(string, []byte, os.FileMode) error {
					return errors.New("disk full")
				}
				return src
			},
			errContains: "disk full",
		},
		{
			name: "panic_is_recovered",
			setup: func(t *testing.T, c *Copier, src, dest string) string {
				c.readFile = func(string) ([]byte, error) {
					panic("boom")
				}
				return src
			},
			errContains: "unexpected panic: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, buf, src, dest := createTestEnv(t, "a.txt", "content")
			c := NewCopier()
			src = tt.setup(t, c, src, dest)

			var out Outcome
			require.NotPanics(t, func() { out = c.Copy(ctx, src, dest) })

			assert.Equal(t, StatusFailed, out.Status)
			require.Error(t, out.Err)
			assert.Contains(t, out.Err.Error(), tt.errContains)
			assert.Zero(t, out.Size)

			logs := buf.String()
			assert.Equal(t, 1, strings.Count(logs, "\n"), "exactly one log line expected, got %q", logs)
			assert.Contains(t, logs, `"level":"error"`)
			assert.Contains(t, logs, src, "error line should name the source file")
			assert.Contains(t, logs, tt.errContains, "error line should carry the cause")
		})
	}
}

func TestDispatcherReadFailureIsIsolated(t *testing.T) {
	_, _, src, dest := createTestEnv(t, "secret.txt", "hidden")
	srcDir := filepath.Dir(src)
	var buf bytes.Buffer
	ctx := zerolog.New(zerolog.SyncWriter(&buf)).WithContext(context.Background())
	for name, content := range map[string]string{"ok.txt": "fine", "deep/c.go": "package c", "noext": "n"} {
		path := filepath.Join(srcDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	d := NewDispatcher(nil)
	d.copier.readFile = func(name string) ([]byte, error) {
		if name == src {
			return nil, errors.Errorf("open %s: permission denied", name)
		}
		return os.ReadFile(name)
	}

	report := d.Run(ctx, srcDir, dest)

	require.NoError(t, report.Err)
	assert.Equal(t, 3, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
	assert.NoFileExists(t, filepath.Join(dest, "txt", "secret.txt"))
	assert.FileExists(t, filepath.Join(dest, "txt", "ok.txt"))
	assert.FileExists(t, filepath.Join(dest, "go", "c.go"))
	assert.FileExists(t, filepath.Join(dest, "other", "noext"))

	var errorLines []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, `"level":"error"`) {
			errorLines = append(errorLines, line)
		}
	}
	require.Len(t, errorLines, 1, "exactly one error line expected")
	assert.Contains(t, errorLines[0], src, "error line should name the unreadable file")
	assert.Contains(t, errorLines[0], "permission denied")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
