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

// Package scan finds the regular files under a source tree.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrSourceMissing is returned by Check when the source folder does not exist
	ErrSourceMissing = errors.New("source folder does not exist")
	// ErrSourceNotDir is returned by Check when the source path is not a folder
	ErrSourceNotDir = errors.New("source path is not a folder")
)

// ✅ Check verifies that root exists and is a directory
func Check(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errors.Errorf("%w: %s", ErrSourceMissing, root)
		}
		return errors.Errorf("checking source folder: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s", ErrSourceNotDir, root)
	}
	return nil
}

// 🔍 Walk lists every regular file under root, at any depth.
//
// A symlinked root is followed; below it symlinks, directories and special
// files are left out. A subdirectory that cannot be read is logged and skipped. Files whose slash-separated path
// relative to root matches one of the ignore globs are left out too.
func Walk(ctx context.Context, root string, ignore []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	for _, pattern := range ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	// WalkDir does not descend into a symlinked root, so walk its target
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, errors.Errorf("resolving %s: %w", root, err)
	}

	files := make([]string, 0, 64)
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// the directory's entries were never read, so returning nil moves on to its siblings
			logger.Error().Err(walkErr).Str("path", path).Msg("skipping unreadable entry")
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}
		if shouldIgnore(ctx, filepath.ToSlash(rel), ignore) {
			return nil
		}

		files = append(files, filepath.Join(root, rel))
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", root, err)
	}

	return files, nil
}

// 🙈 shouldIgnore checks if a relative path matches any ignore glob
func shouldIgnore(ctx context.Context, rel string, ignore []string) bool {
	for _, pattern := range ignore {
		if doublestar.MatchUnvalidated(pattern, rel) {
			zerolog.Ctx(ctx).Debug().Str("file", rel).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}
