// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// TitleWriter sets the title field of a PDF's information dictionary.
type TitleWriter interface {
	SetTitle(path, title string) error
}

// SetTitle rewrites path with its Title entry set to title. The new file is
// written next to the original and swapped in with a single rename, so an
// interrupted write leaves the original untouched.
func (e *PDFExtractor) SetTitle(path, title string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".retitle-*.pdf")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	props := map[string]string{"Title": title}
	if err := api.AddPropertiesFile(path, tmpPath, props, pdfcpuConfig()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing title to %s: %v", ErrUnreadable, path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
