// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives a rename run over one file or a directory of PDFs.
// Directory runs fan out across a bounded worker pool; a failure on one
// file is logged and counted but never stops the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/pdfrename/internal/extract"
	"github.com/pdiddy/pdfrename/internal/rename"
	"github.com/pdiddy/pdfrename/internal/resolve"
	"github.com/pdiddy/pdfrename/pkg/types"
)

// ErrSetup marks errors that prevent a run from starting: a missing or
// unreadable input path, or an option combination that cannot work.
var ErrSetup = errors.New("setup error")

// Resolver produces the title for one document. *resolve.Resolver is the
// production implementation.
type Resolver interface {
	Resolve(ctx context.Context, path string) (resolve.Resolution, error)
}

// Runner processes files through a Resolver and a rename.Engine.
type Runner struct {
	resolver Resolver
	engine   *rename.Engine
	cfg      types.BatchConfig
	out      io.Writer
	logger   *slog.Logger
}

// New creates a Runner. Progress lines and the summary go to out.
func New(resolver Resolver, engine *rename.Engine, cfg types.BatchConfig, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		resolver: resolver,
		engine:   engine,
		cfg:      cfg,
		out:      out,
		logger:   logger,
	}
}

func (r *Runner) workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.NumCPU()
}

func (r *Runner) mode() rename.Mode {
	if r.cfg.Auto {
		return rename.ModeAuto
	}
	return rename.ModeInteractive
}

// Run processes root, which may be a single PDF or a directory. Only
// errors wrapping ErrSetup are returned; per-file problems end up in the
// summary.
func (r *Runner) Run(ctx context.Context, root string) (Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrSetup, err)
	}

	if !info.IsDir() {
		t := newTally(r.out, 1, r.cfg.Quiet)
		if rest := r.removeEmpty([]string{root}, t); len(rest) > 0 {
			r.handle(ctx, root, r.mode(), t)
		}
		s := t.result()
		fmt.Fprintf(r.out, "\n%s\n", s)
		return s, nil
	}

	// A worker pool cannot share one prompt.
	if r.mode() == rename.ModeInteractive && !r.engine.DryRun() {
		return Summary{}, fmt.Errorf("%w: processing a directory requires --auto or --dry-run", ErrSetup)
	}

	files, err := discover(root, r.cfg.Recursive)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: listing %s: %w", ErrSetup, root, err)
	}
	r.logger.Info("starting batch", "root", root, "files", len(files), "workers", r.workers(), "dry_run", r.engine.DryRun())

	t := newTally(r.out, len(files), r.cfg.Quiet)
	files = r.removeEmpty(files, t)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	// In-flight files finish even after an interrupt; only dispatch stops.
	work := context.WithoutCancel(gctx)

	notDispatched := 0
	for i, path := range files {
		if ctx.Err() != nil {
			notDispatched = len(files) - i
			break
		}
		g.Go(func() error {
			r.handle(work, path, rename.ModeAuto, t)
			return nil
		})
	}
	g.Wait()

	s := t.result()
	s.NotDispatched = notDispatched
	if notDispatched > 0 {
		r.logger.Warn("run interrupted", "not_processed", notDispatched)
	}
	fmt.Fprintf(r.out, "\n%s\n", s)
	return s, nil
}

// removeEmpty deletes zero-byte PDFs, which can never yield a title, and
// returns the files left to process. In a dry run they are only reported.
func (r *Runner) removeEmpty(files []string, t *tally) []string {
	var kept []string
	for _, path := range files {
		empty, err := isEmpty(path)
		if err != nil || !empty {
			kept = append(kept, path)
			continue
		}
		if r.engine.DryRun() {
			r.logger.Info("dry run: would remove empty file", "file", path)
			t.record(types.OutcomePlanned, path, "remove empty file")
			continue
		}
		if err := os.Remove(path); err != nil {
			r.logger.Error("removing empty file", "file", path, "error", err)
			t.record(types.OutcomeFailed, path, "")
			continue
		}
		r.logger.Info("removed empty file", "file", path)
		t.record(types.OutcomeRemovedEmpty, path, "")
	}
	return kept
}

// handle runs one file through resolution and rename. Every outcome,
// panics included, is recorded here and nowhere else.
func (r *Runner) handle(ctx context.Context, path string, mode rename.Mode, t *tally) {
	res := r.process(ctx, path, mode)
	detail := ""
	if res.Outcome.Mutated() || res.Outcome == types.OutcomePlanned {
		detail = res.Target
	}
	t.record(res.Outcome, path, detail)
}

func (r *Runner) process(ctx context.Context, path string, mode rename.Mode) (res rename.Result) {
	logger := r.logger.With("file", path)

	defer func() {
		if p := recover(); p != nil {
			logger.Error("panic while processing file", "panic", p, "stack", string(debug.Stack()))
			res = rename.Result{Source: path, Outcome: types.OutcomeFailed, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	resolution, err := r.resolver.Resolve(ctx, path)
	switch {
	case errors.Is(err, extract.ErrUnreadable):
		logger.Error("unreadable document", "error", err)
		res = r.engine.MarkBroken(ctx, path)
		if res.Outcome == types.OutcomeFailed {
			logger.Error("marking broken file", "error", res.Err)
		}
		return res
	case errors.Is(err, resolve.ErrNoTitle):
		logger.Error("no title found, leaving file as is")
		return rename.Result{Source: path, Outcome: types.OutcomeFailed, Err: err}
	case err != nil:
		logger.Error("resolving title", "error", err)
		return rename.Result{Source: path, Outcome: types.OutcomeFailed, Err: err}
	}

	res = r.engine.Apply(ctx, path, resolution.Title, mode)
	if res.Outcome == types.OutcomeFailed {
		logger.Error("rename failed", "title", resolution.Title, "error", res.Err)
	}
	return res
}
