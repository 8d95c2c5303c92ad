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

package config

import (
	"context"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for options file parsers
type Parser interface {
	// 📝 Parse parses the options from bytes
	Parse(ctx context.Context, data []byte) (*Options, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Options tunes a run. The zero value copies every file with unbounded concurrency.
type Options struct {
	// Concurrency caps the number of copies in flight; 0 means one per file
	Concurrency int `json:"concurrency" yaml:"concurrency" hcl:"concurrency,optional"`
	// Ignore holds doublestar globs matched against paths relative to the source folder
	Ignore []string `json:"ignore" yaml:"ignore" hcl:"ignore,optional"`
}

// 🏭 Default returns the options used when no file or flag changes them
func Default() *Options {
	return &Options{}
}

// 🎯 Load loads options from a file, picking the format from its extension
func Load(ctx context.Context, path string) (*Options, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading options")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading options file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	opts, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing options: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	return opts, nil
}

// 🔍 Validate checks if the options are usable
func (o *Options) Validate() error {
	if o.Concurrency < 0 {
		return errors.Errorf("concurrency must be >= 0, got %d", o.Concurrency)
	}

	cleaned := make([]string, 0, len(o.Ignore))
	for _, pattern := range o.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid ignore pattern %q", pattern)
		}
		cleaned = append(cleaned, pattern)
	}
	o.Ignore = cleaned

	return nil
}

// 🔢 Limit returns the value for errgroup.Group.SetLimit
func (o *Options) Limit() int {
	if o.Concurrency <= 0 {
		return -1
	}
	return o.Concurrency
}
