package rename

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BackupDir is the directory, next to the source file, that receives
// copies of originals before they are renamed.
const BackupDir = "backup"

// backupFile copies src into <dir(src)>/backup/<base(src)>, keeping its
// permission bits and modification time. An existing backup is never
// overwritten.
func backupFile(src string) (string, error) {
	dir := filepath.Join(filepath.Dir(src), BackupDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("copying to backup: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("closing backup: %w", err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return "", fmt.Errorf("preserving backup mtime: %w", err)
	}
	return dst, nil
}
