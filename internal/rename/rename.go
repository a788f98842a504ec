// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rename moves PDFs onto their resolved titles. Every mutation goes
// through the same guarded path: the target is claimed for the run, checked
// against the filesystem, optionally backed up, then renamed in one step.
// Nothing is ever renamed onto an existing path.
package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfrename/internal/extract"
	"github.com/pdiddy/pdfrename/internal/logging"
	"github.com/pdiddy/pdfrename/pkg/types"
)

const (
	// ProcessedDir receives renamed files unless renaming in place.
	ProcessedDir = "processed"

	// BrokenPrefix marks files that could not be parsed.
	BrokenPrefix = "broken_"

	pdfExt = ".pdf"
)

// ErrTargetExists is set on results whose target was already taken.
var ErrTargetExists = errors.New("target already exists")

// Mode selects between prompting and unattended renames.
type Mode int

const (
	ModeAuto Mode = iota
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "auto"
}

// Result describes what happened to one file.
type Result struct {
	Source  string
	Target  string
	Outcome types.Outcome
	Err     error
}

// Engine applies renames for one run. It is safe for concurrent use; the
// claim set is shared by every caller.
type Engine struct {
	cfg       types.RenameConfig
	confirmer Confirmer
	titles    extract.TitleWriter
	claims    *claimSet
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfirmer sets the prompt used in ModeInteractive.
func WithConfirmer(c Confirmer) Option {
	return func(e *Engine) { e.confirmer = c }
}

// WithTitleWriter sets the metadata writer used by Retitle.
func WithTitleWriter(w extract.TitleWriter) Option {
	return func(e *Engine) { e.titles = w }
}

// New creates an Engine.
func New(cfg types.RenameConfig, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{
		cfg:    cfg,
		claims: newClaimSet(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DryRun reports whether the engine only plans renames.
func (e *Engine) DryRun() bool { return e.cfg.DryRun }

// TargetDir returns the directory a renamed src lands in.
func (e *Engine) TargetDir(src string) string {
	dir := e.cfg.OutputDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	if !e.cfg.InPlace {
		dir = filepath.Join(dir, ProcessedDir)
	}
	return dir
}

// Apply renames src to the sanitized title. In ModeInteractive the
// Confirmer decides first; a custom answer replaces the title.
func (e *Engine) Apply(ctx context.Context, src, sanitized string, mode Mode) Result {
	outcome := types.OutcomeRenamed
	target := filepath.Join(e.TargetDir(src), sanitized+pdfExt)

	if mode == ModeInteractive {
		if e.confirmer == nil {
			return Result{Source: src, Outcome: types.OutcomeFailed, Err: errors.New("interactive mode without a confirmer")}
		}
		reply, err := e.confirmer.Confirm(ctx, src, filepath.Base(target))
		if err != nil {
			return Result{Source: src, Outcome: types.OutcomeFailed, Err: err}
		}
		switch d, custom := interpret(reply); d {
		case decisionCancel:
			e.logger.Info("rename cancelled", "file", src)
			return Result{Source: src, Outcome: types.OutcomeSkippedCancelled}
		case decisionCustom:
			target = filepath.Join(e.TargetDir(src), custom+pdfExt)
			outcome = types.OutcomeRenamedCustom
		}
	}

	return e.move(ctx, src, target, outcome, e.cfg.Backup)
}

// MarkBroken renames src in place to broken_<name>. Files already carrying
// the prefix are left alone.
func (e *Engine) MarkBroken(ctx context.Context, src string) Result {
	base := filepath.Base(src)
	if strings.HasPrefix(base, BrokenPrefix) {
		return Result{Source: src, Target: src, Outcome: types.OutcomeMarkedBroken}
	}
	target := filepath.Join(filepath.Dir(src), BrokenPrefix+base)
	return e.move(ctx, src, target, types.OutcomeMarkedBroken, false)
}

// move is the single mutation path. It never overwrites: the target must
// be unclaimed in this run and absent on disk.
// caseOnlyRename reports whether target names the source file itself under
// a different letter case, as it does on a case-insensitive filesystem.
func caseOnlyRename(src, target string, targetInfo fs.FileInfo) bool {
	if src == target || !strings.EqualFold(src, target) {
		return false
	}
	srcInfo, err := os.Lstat(src)
	return err == nil && os.SameFile(srcInfo, targetInfo)
}

func (e *Engine) move(ctx context.Context, src, target string, outcome types.Outcome, backup bool) Result {
	res := Result{Source: src, Target: target}
	logger := e.logger.With("file", src, "target", target)

	if err := ctx.Err(); err != nil {
		res.Outcome, res.Err = types.OutcomeFailed, err
		return res
	}

	if !e.claims.claim(target, src) {
		logger.Info("target already claimed in this run, skipping")
		res.Outcome, res.Err = types.OutcomeSkippedExists, ErrTargetExists
		return res
	}
	if info, err := os.Lstat(target); err == nil && caseOnlyRename(src, target, info) {
		logger.Debug("target differs from source only in case")
	} else if err == nil {
		logger.Info("target exists, skipping")
		res.Outcome, res.Err = types.OutcomeSkippedExists, ErrTargetExists
		return res
	} else if !errors.Is(err, fs.ErrNotExist) {
		e.claims.release(target, src)
		res.Outcome, res.Err = types.OutcomeFailed, fmt.Errorf("checking target: %w", err)
		return res
	}

	if e.cfg.DryRun {
		logger.Info("dry run: would rename", "outcome", outcome)
		res.Outcome = types.OutcomePlanned
		return res
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		e.claims.release(target, src)
		res.Outcome, res.Err = types.OutcomeFailed, fmt.Errorf("creating target directory: %w", err)
		return res
	}

	if backup {
		dst, err := backupFile(src)
		if err != nil {
			e.claims.release(target, src)
			res.Outcome, res.Err = types.OutcomeFailed, fmt.Errorf("backing up %s: %w", src, err)
			return res
		}
		logger.Debug("backed up original", "backup", dst)
	}

	if err := os.Rename(src, target); err != nil {
		e.claims.release(target, src)
		res.Outcome, res.Err = types.OutcomeFailed, fmt.Errorf("renaming: %w", err)
		return res
	}

	logging.Success(ctx, logger, "renamed", "outcome", outcome)
	res.Outcome = outcome
	return res
}
