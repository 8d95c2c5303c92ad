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

	"github.com/rs/zerolog"
	"github.com/walteh/extsort/pkg/config"
	"github.com/walteh/extsort/pkg/scan"
	"golang.org/x/sync/errgroup"
)

// 📋 Report collects the outcome of every copy launched by a run
type Report struct {
	Source      string
	Destination string
	Outcomes    []Outcome
	// Err is set when the run stopped before copying anything
	Err error
}

// ✅ Succeeded returns the number of files copied
func (r *Report) Succeeded() int {
	return r.count(StatusSucceeded)
}

// ❌ Failed returns the number of files whose copy failed
func (r *Report) Failed() int {
	return r.count(StatusFailed)
}

func (r *Report) count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// 🏃 Dispatcher walks a source tree and fans out one copy per file
type Dispatcher struct {
	copier *Copier
	opts   config.Options
}

// 🏗️ NewDispatcher creates a dispatcher; nil opts means config.Default()
func NewDispatcher(opts *config.Options) *Dispatcher {
	if opts == nil {
		opts = config.Default()
	}
	return &Dispatcher{
		copier: NewCopier(),
		opts:   *opts,
	}
}

// 🏃 Run copies every regular file under sourceDir into destDir/<bucket>.
//
// Run returns once every copy has finished. A missing or non-directory source
// is logged and nothing is touched. Per-file failures are logged by the
// copier and never stop sibling copies.
func (d *Dispatcher) Run(ctx context.Context, sourceDir, destDir string) *Report {
	logger := zerolog.Ctx(ctx)
	report := &Report{Source: sourceDir, Destination: destDir}

	if err := scan.Check(sourceDir); err != nil {
		logger.Error().Err(err).Str("source", sourceDir).Msg("cannot read source folder")
		report.Err = err
		return report
	}

	files, err := scan.Walk(ctx, sourceDir, d.opts.Ignore)
	if err != nil {
		logger.Error().Err(err).Str("source", sourceDir).Msg("listing source folder")
		report.Err = err
		return report
	}

	logger.Debug().Int("files", len(files)).Int("limit", d.opts.Limit()).Msg("dispatching copies")

	report.Outcomes = make([]Outcome, len(files))

	var g errgroup.Group
	g.SetLimit(d.opts.Limit())
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			// each slot is written by exactly one goroutine
			report.Outcomes[i] = d.copier.Copy(ctx, file, destDir)
			return nil
		})
	}
	_ = g.Wait()

	return report
}
