// Package atomicfile replaces files so that readers observe either the old
// or the new content, never a partial write.
package atomicfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write replaces filename with the bytes produced by writeFunc. Missing
// parent directories are created.
//
// Content goes to a temp file in the same directory, which is synced and
// renamed over the target. On any error the target is left untouched and
// the temp file removed.
func Write(filename string, perm os.FileMode, writeFunc func(io.Writer) error) (err error) {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("atomicfile: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("atomicfile: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("atomicfile: chmod: %w", err)
	}

	buf := bufio.NewWriter(tmp)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("atomicfile: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("atomicfile: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomicfile: close: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("atomicfile: rename: %w", err)
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// WriteFile is Write for a byte slice.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	return Write(filename, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
