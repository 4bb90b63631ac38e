// Package scanner discovers ROM files to register as shortcuts.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"emustation/internal/services"
	"emustation/internal/shortcuts"
)

// Options controls which files count as games.
type Options struct {
	// Extensions are lowercase and include the dot, e.g. ".nsp".
	Extensions []string
	// RequireTag, when set, must appear in the file name (case-insensitive).
	RequireTag string
}

// Scan walks root and returns one entry per matching file in lexical walk
// order.
func Scan(ctx context.Context, root string, opts Options) ([]shortcuts.Entry, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "scanner", "scan", fmt.Sprintf("ROM folder %s does not exist", root), err)
		}
		return nil, fmt.Errorf("stat ROM folder: %w", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "scanner", "scan", fmt.Sprintf("%s is not a directory", root), nil)
	}

	tag := strings.ToLower(strings.TrimSpace(opts.RequireTag))
	var games []shortcuts.Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !Matches(d.Name(), opts.Extensions, tag) {
			return nil
		}
		games = append(games, shortcuts.Entry{DisplayName: DisplayName(d.Name()), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return games, nil
}

// Matches reports whether name has an accepted extension and carries tag.
// tag must already be lowercase; empty accepts every name.
func Matches(name string, extensions []string, tag string) bool {
	lower := strings.ToLower(name)
	if !slices.Contains(extensions, strings.ToLower(filepath.Ext(name))) {
		return false
	}
	return tag == "" || strings.Contains(lower, tag)
}

// DisplayName strips the extension and everything from the first " [" on,
// so "Game [0100ABC][v0].nsp" becomes "Game".
func DisplayName(file string) string {
	base := strings.TrimSuffix(file, filepath.Ext(file))
	if i := strings.Index(base, " ["); i > 0 {
		return strings.TrimSpace(base[:i])
	}
	return base
}
