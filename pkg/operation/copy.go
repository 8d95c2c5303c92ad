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
	"context"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/walteh/extsort/pkg/bucket"
	"gitlab.com/tozd/go/errors"
)

// 📊 Status is the terminal state of one copy
type Status int

const (
	StatusUnknown   Status = iota
	StatusSucceeded        // Bytes landed at the target
	StatusFailed           // Failure was logged and the copy skipped
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Outcome describes what happened to one source file
type Outcome struct {
	Source string // Path of the source file
	Target string // Path the file was (or would have been) written to
	Bucket string // Extension bucket, or "other"
	Size   int64  // Bytes written
	Status Status
	Err    error // Cause when Status is StatusFailed
}

const (
	dirMode  = 0755
	fileMode = 0644
)

// 📦 Copier copies single files into their extension bucket
type Copier struct {
	readFile  func(name string) ([]byte, error)
	writeFile func(name string, data []byte, perm os.FileMode) error
	mkdirAll  func(path string, perm os.FileMode) error
}

// 🏗️ NewCopier creates a copier backed by the os package
func NewCopier() *Copier {
	return &Copier{
		readFile:  os.ReadFile,
		writeFile: os.WriteFile,
		mkdirAll:  os.MkdirAll,
	}
}

// 📄 Copy copies source into destRoot/<bucket>/<name>.
//
// Copy never returns an error: every failure, panics included, is logged once
// and reported through the returned Outcome.
func (c *Copier) Copy(ctx context.Context, source, destRoot string) (out Outcome) {
	logger := zerolog.Ctx(ctx)

	dir, target := bucket.Target(destRoot, source)
	out = Outcome{
		Source: source,
		Target: target,
		Bucket: bucket.For(source),
	}

	defer func() {
		if r := recover(); r != nil {
			out.Status = StatusFailed
			out.Size = 0
			out.Err = errors.Errorf("unexpected panic: %v", r)
			logger.Error().Err(out.Err).Str("source", source).Msg("copying file failed")
		}
	}()

	n, err := c.transfer(dir, source, target)
	if err != nil {
		out.Status = StatusFailed
		out.Err = err
		logger.Error().Err(err).Str("source", source).Msg("copying file failed")
		return out
	}

	out.Status = StatusSucceeded
	out.Size = n
	logger.Info().
		Str("source", source).
		Str("target", target).
		Str("size", humanize.Bytes(uint64(n))).
		Msg("file copied")

	return out
}

// 🚚 transfer creates the bucket, reads the whole source, then writes the whole target
func (c *Copier) transfer(dir, source, target string) (int64, error) {
	if err := c.mkdirAll(dir, dirMode); err != nil {
		return 0, errors.Errorf("creating bucket directory: %w", err)
	}

	content, err := c.readFile(source)
	if err != nil {
		return 0, errors.Errorf("reading source file: %w", err)
	}

	if err := c.writeFile(target, content, fileMode); err != nil {
		return 0, errors.Errorf("writing target file: %w", err)
	}

	return int64(len(content)), nil
}
