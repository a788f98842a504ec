package rename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdfrename/pkg/types"
)

// StripKeyword removes every occurrence of keyword from the names of files
// under root, recursively. Files stay in their directory. The backup
// directory is never touched.
func (e *Engine) StripKeyword(ctx context.Context, root, keyword string) ([]Result, error) {
	if keyword == "" {
		return nil, errors.New("empty keyword")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	files, err := walkFiles(root, func(name string) bool {
		return strings.Contains(name, keyword)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("files matching keyword", "root", root, "keyword", keyword, "count", len(files))

	results := make([]Result, 0, len(files))
	for _, src := range files {
		if ctx.Err() != nil {
			break
		}
		name := strings.ReplaceAll(filepath.Base(src), keyword, "")
		if strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name))) == "" {
			results = append(results, Result{
				Source:  src,
				Outcome: types.OutcomeFailed,
				Err:     fmt.Errorf("removing %q leaves an empty name", keyword),
			})
			continue
		}
		results = append(results, e.move(ctx, src, filepath.Join(filepath.Dir(src), name), types.OutcomeRenamed, false))
	}
	return results, ctx.Err()
}

// walkFiles lists regular files under root whose base name satisfies
// match, skipping backup directories.
func walkFiles(root string, match func(name string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && d.Name() == BackupDir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
