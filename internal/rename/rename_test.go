// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rename

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdfrename/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type replyConfirmer struct {
	reply    string
	err      error
	proposed string
}

func (c *replyConfirmer) Confirm(_ context.Context, _, proposed string) (string, error) {
	c.proposed = proposed
	return c.reply, c.err
}

func TestApply_AutoMovesIntoProcessed(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "1706.03762.pdf")
	writeFile(t, src, "paper")

	res := New(types.RenameConfig{}, nil).Apply(context.Background(), src, "Attention Is All You Need", ModeAuto)

	require.NoError(t, res.Err)
	assert.Equal(t, types.OutcomeRenamed, res.Outcome)
	want := filepath.Join(dir, ProcessedDir, "Attention Is All You Need.pdf")
	assert.Equal(t, want, res.Target)
	assert.Equal(t, "paper", readFile(t, want))
	assert.NoFileExists(t, src)
}

func TestApply_TargetDir(t *testing.T) {
	out := t.TempDir()
	tests := []struct {
		name string
		cfg  types.RenameConfig
		want string
	}{
		{"default", types.RenameConfig{}, filepath.Join("papers", ProcessedDir)},
		{"in place", types.RenameConfig{InPlace: true}, "papers"},
		{"output dir", types.RenameConfig{OutputDir: out}, filepath.Join(out, ProcessedDir)},
		{"output dir in place", types.RenameConfig{OutputDir: out, InPlace: true}, out},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.cfg, nil).TargetDir(filepath.Join("papers", "x.pdf")))
		})
	}
}

func TestApply_ExistingTargetIsNeverOverwritten(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.pdf")
	existing := filepath.Join(dir, ProcessedDir, "Same Title.pdf")
	writeFile(t, src, "new content")
	writeFile(t, existing, "old content")

	res := New(types.RenameConfig{}, nil).Apply(context.Background(), src, "Same Title", ModeAuto)

	assert.Equal(t, types.OutcomeSkippedExists, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrTargetExists)
	assert.Equal(t, "old content", readFile(t, existing))
	assert.Equal(t, "new content", readFile(t, src))
}

func TestApply_ConcurrentSameTitleOnlyOneWins(t *testing.T) {
	dir := t.TempDir()
	const n = 8
	srcs := make([]string, n)
	for i := range srcs {
		srcs[i] = filepath.Join(dir, fmt.Sprintf("dup-%d.pdf", i))
		writeFile(t, srcs[i], fmt.Sprintf("content %d", i))
	}

	engine := New(types.RenameConfig{}, nil)
	results := make([]Result, n)
	var wg sync.WaitGroup
	for i := range srcs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Apply(context.Background(), srcs[i], "Shared Title", ModeAuto)
		}(i)
	}
	wg.Wait()

	renamed := 0
	var winner int
	for i, r := range results {
		switch r.Outcome {
		case types.OutcomeRenamed:
			renamed++
			winner = i
		case types.OutcomeSkippedExists:
			assert.FileExists(t, srcs[i])
		default:
			t.Errorf("unexpected outcome %s for %s", r.Outcome, srcs[i])
		}
	}
	require.Equal(t, 1, renamed)
	assert.Equal(t, fmt.Sprintf("content %d", winner), readFile(t, filepath.Join(dir, ProcessedDir, "Shared Title.pdf")))
}

func TestApply_DryRunTouchesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.pdf")
	writeFile(t, src, "x")

	engine := New(types.RenameConfig{DryRun: true, Backup: true}, nil)
	res := engine.Apply(context.Background(), src, "Planned Title", ModeAuto)

	assert.Equal(t, types.OutcomePlanned, res.Outcome)
	assert.Equal(t, filepath.Join(dir, ProcessedDir, "Planned Title.pdf"), res.Target)
	assert.FileExists(t, src)
	assert.NoDirExists(t, filepath.Join(dir, ProcessedDir))
	assert.NoDirExists(t, filepath.Join(dir, BackupDir))

	// A second file planned onto the same name reports the collision.
	other := filepath.Join(dir, "b.pdf")
	writeFile(t, other, "y")
	assert.Equal(t, types.OutcomeSkippedExists, engine.Apply(context.Background(), other, "Planned Title", ModeAuto).Outcome)
}

func TestApply_Backup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.pdf")
	writeFile(t, src, "original bytes")
	mtime := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	res := New(types.RenameConfig{Backup: true}, nil).Apply(context.Background(), src, "Backed Up", ModeAuto)
	require.Equal(t, types.OutcomeRenamed, res.Outcome)

	backup := filepath.Join(dir, BackupDir, "a.pdf")
	assert.Equal(t, "original bytes", readFile(t, backup))
	info, err := os.Stat(backup)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestApply_BackupFailureAbortsRename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.pdf")
	writeFile(t, src, "new")
	writeFile(t, filepath.Join(dir, BackupDir, "a.pdf"), "earlier backup")

	engine := New(types.RenameConfig{Backup: true}, nil)
	res := engine.Apply(context.Background(), src, "Title", ModeAuto)

	assert.Equal(t, types.OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.Equal(t, "new", readFile(t, src))
	assert.Equal(t, "earlier backup", readFile(t, filepath.Join(dir, BackupDir, "a.pdf")))
	assert.NoFileExists(t, filepath.Join(dir, ProcessedDir, "Title.pdf"))

	// The failed claim is released so a retry can use the name.
	require.NoError(t, os.Remove(filepath.Join(dir, BackupDir, "a.pdf")))
	assert.Equal(t, types.OutcomeRenamed, engine.Apply(context.Background(), src, "Title", ModeAuto).Outcome)
}

func TestApply_Interactive(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		err        error
		outcome    types.Outcome
		targetName string
	}{
		{"accept", "y", nil, types.OutcomeRenamed, "Proposed.pdf"},
		{"accept upper", "Y", nil, types.OutcomeRenamed, "Proposed.pdf"},
		{"cancel", "n", nil, types.OutcomeSkippedCancelled, ""},
		{"custom", "My: Own Name.PDF", nil, types.OutcomeRenamedCustom, "My Own Name.pdf"},
		{"custom sanitizes to nothing", "???", nil, types.OutcomeSkippedCancelled, ""},
		{"prompt error", "", errors.New("tty closed"), types.OutcomeFailed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "scan.pdf")
			writeFile(t, src, "x")
			conf := &replyConfirmer{reply: tt.reply, err: tt.err}

			res := New(types.RenameConfig{InPlace: true}, nil, WithConfirmer(conf)).
				Apply(context.Background(), src, "Proposed", ModeInteractive)

			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, "Proposed.pdf", conf.proposed)
			if tt.targetName != "" {
				assert.FileExists(t, filepath.Join(dir, tt.targetName))
				assert.NoFileExists(t, src)
			} else {
				assert.FileExists(t, src)
			}
		})
	}
}

func TestApply_InteractiveWithoutConfirmer(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.pdf")
	writeFile(t, src, "x")

	res := New(types.RenameConfig{}, nil).Apply(context.Background(), src, "T", ModeInteractive)
	assert.Equal(t, types.OutcomeFailed, res.Outcome)
	assert.FileExists(t, src)
}

func TestApply_CancelledContext(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.pdf")
	writeFile(t, src, "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(types.RenameConfig{}, nil).Apply(ctx, src, "T", ModeAuto)
	assert.Equal(t, types.OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.FileExists(t, src)
}

func TestMarkBroken(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corrupt.pdf")
	writeFile(t, src, "garbage")

	engine := New(types.RenameConfig{}, nil)
	res := engine.MarkBroken(context.Background(), src)

	assert.Equal(t, types.OutcomeMarkedBroken, res.Outcome)
	assert.Equal(t, filepath.Join(dir, "broken_corrupt.pdf"), res.Target)
	assert.FileExists(t, res.Target)
	assert.NoFileExists(t, src)

	// Already marked files are left alone.
	again := engine.MarkBroken(context.Background(), res.Target)
	assert.Equal(t, types.OutcomeMarkedBroken, again.Outcome)
	assert.FileExists(t, res.Target)
}

func TestMarkBroken_Collision(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "corrupt.pdf")
	writeFile(t, src, "new")
	writeFile(t, filepath.Join(dir, "broken_corrupt.pdf"), "old")

	res := New(types.RenameConfig{}, nil).MarkBroken(context.Background(), src)
	assert.Equal(t, types.OutcomeSkippedExists, res.Outcome)
	assert.Equal(t, "old", readFile(t, filepath.Join(dir, "broken_corrupt.pdf")))
	assert.Equal(t, "new", readFile(t, src))
}

func TestMarkBroken_DryRun(t *testing.T) {
	src := filepath.Join(t.TempDir(), "corrupt.pdf")
	writeFile(t, src, "x")

	res := New(types.RenameConfig{DryRun: true}, nil).MarkBroken(context.Background(), src)
	assert.Equal(t, types.OutcomePlanned, res.Outcome)
	assert.FileExists(t, src)
}
