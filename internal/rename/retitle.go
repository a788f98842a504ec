package rename

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfrename/internal/title"
	"github.com/pdiddy/pdfrename/pkg/types"
)

// Retitle title-cases the file name of path and writes the new title into
// the document's metadata. A name that is already normalized only gets its
// metadata rewritten.
func (e *Engine) Retitle(ctx context.Context, path string) Result {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	newTitle := title.Sanitize(title.Normalize(stem))
	if newTitle == "" {
		return Result{Source: path, Outcome: types.OutcomeFailed, Err: errors.New("name normalizes to nothing")}
	}

	target := filepath.Join(filepath.Dir(path), newTitle+pdfExt)
	var res Result
	if target == path {
		res = Result{Source: path, Target: path, Outcome: types.OutcomeRenamed}
		if e.cfg.DryRun {
			res.Outcome = types.OutcomePlanned
		}
	} else {
		res = e.move(ctx, path, target, types.OutcomeRenamed, false)
	}

	if res.Outcome != types.OutcomeRenamed || e.titles == nil {
		return res
	}
	if err := e.titles.SetTitle(res.Target, newTitle); err != nil {
		e.logger.Warn("writing title metadata failed", "file", res.Target, "error", err)
		res.Err = fmt.Errorf("writing title metadata: %w", err)
	}
	return res
}

// RetitleAll applies Retitle to every PDF under root, or to root itself
// when it is a file.
func (e *Engine) RetitleAll(ctx context.Context, root string) ([]Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	files := []string{root}
	if info.IsDir() {
		files, err = walkFiles(root, func(name string) bool {
			return strings.EqualFold(filepath.Ext(name), pdfExt)
		})
		if err != nil {
			return nil, err
		}
	}

	results := make([]Result, 0, len(files))
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		results = append(results, e.Retitle(ctx, f))
	}
	return results, ctx.Err()
}
