// Package fileutil holds the small file helpers shared by the persistence
// packages: whole-file atomic replacement and existence checks.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriteFileAtomic replaces path with data in a single rename so readers see
// either the old bytes or the new bytes, never a partial file. Parent
// directories are created as needed.
func WriteFileAtomic(path string, data []byte) error {
	return WriteStreamAtomic(path, bytes.NewReader(data))
}

// WriteStreamAtomic is WriteFileAtomic for callers that hold a reader. A
// read error leaves path untouched.
func WriteStreamAtomic(path string, r io.Reader) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
	}
	if err := atomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path names an existing regular file or directory.
// Errors other than "does not exist" count as present so callers never
// overwrite something they merely failed to stat.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// IsDir reports whether path is an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReadOptional reads path, reporting ok=false when the file does not exist.
func ReadOptional(path string) (data []byte, ok bool, err error) {
	data, err = os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
