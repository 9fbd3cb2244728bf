// Package adapter contains the infrastructure adapters used by the cup domain layer.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	m "github.com/rezi-labs/cup/internal/model"
)

const (
	// maxSourceFileSize skips files that are unlikely to be hand-edited text.
	maxSourceFileSize = 10 << 20
	// binarySniffLen is how many leading bytes are checked for NUL.
	binarySniffLen = 8000
)

// SourceFSAdapter abstracts the filesystem operations the scanner and the
// updater rely on, so domain logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Walk traverses root, skipping .git and anything ignored by .gitignore files.
	Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error

	// CollectFiles returns every text file under root together with its content.
	CollectFiles(ctx context.Context, root m.Path) ([]m.SourceFile, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc is called for every non-ignored file found by Walk.
type FilepathWalkFunc func(path m.Path, info fs.FileInfo) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct {
	excluded map[string]struct{}
}

// SourceFSOption configures a LocalSourceFSAdapter.
type SourceFSOption func(*LocalSourceFSAdapter)

// WithExcludedFiles keeps the given files out of CollectFiles, e.g. cup's
// own configuration and log files. Relative paths are resolved against the
// working directory.
func WithExcludedFiles(paths ...m.Path) SourceFSOption {
	return func(a *LocalSourceFSAdapter) {
		for _, path := range paths {
			if path == "" {
				continue
			}

			if key, ok := absPath(string(path)); ok {
				a.excluded[key] = struct{}{}
			}
		}
	}
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter(opts ...SourceFSOption) *LocalSourceFSAdapter {
	a := &LocalSourceFSAdapter{excluded: make(map[string]struct{})}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Walk iterates over regular files under root in lexical order.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error {
	rootStr := filepath.Clean(string(root))
	ignore := NewIgnoreMatcher()

	return filepath.WalkDir(rootStr, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootStr {
				return err
			}

			slog.Debug("Skipping unreadable path", "path", path, "error", err)

			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(rootStr, path)
		if relErr != nil {
			return relErr
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			return a.enterDir(ignore, path, rel, d)
		}

		if !d.Type().IsRegular() || ignore.Match(rel, false) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			slog.Debug("Skipping file without info", "path", path, "error", infoErr)
			return nil
		}

		return fn(m.Path(path), info)
	})
}

func (a *LocalSourceFSAdapter) enterDir(ignore *IgnoreMatcher, path, rel string, d fs.DirEntry) error {
	if rel != "." {
		if d.Name() == ".git" || ignore.Match(rel, true) {
			return filepath.SkipDir
		}
	}

	base := rel
	if base == "." {
		base = ""
	}

	// #nosec G304 - path comes from walking the user's own tree
	data, err := os.ReadFile(filepath.Join(path, ".gitignore"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("Failed to read .gitignore", "dir", path, "error", err)
		}

		return nil
	}

	ignore.AddRules(base, string(data))

	return nil
}

// CollectFiles reads every text file under root.
func (a *LocalSourceFSAdapter) CollectFiles(ctx context.Context, root m.Path) ([]m.SourceFile, error) {
	var files []m.SourceFile

	err := a.Walk(ctx, root, func(path m.Path, info fs.FileInfo) error {
		if a.isExcluded(path) {
			slog.Debug("Skipping excluded file", "path", path)
			return nil
		}

		if info.Size() > maxSourceFileSize {
			slog.Debug("Skipping large file", "path", path, "size", info.Size())
			return nil
		}

		content, err := a.ReadFile(ctx, path)
		if err != nil {
			slog.Debug("Skipping unreadable file", "path", path, "error", err)
			return nil
		}

		if isBinary(content) {
			return nil
		}

		files = append(files, m.SourceFile{Path: path, Content: string(content)})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return files, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(_ context.Context, path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(_ context.Context, path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(_ context.Context, path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func (a *LocalSourceFSAdapter) isExcluded(path m.Path) bool {
	if len(a.excluded) == 0 {
		return false
	}

	key, ok := absPath(string(path))
	if !ok {
		return false
	}

	_, found := a.excluded[key]

	return found
}

func absPath(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	return filepath.Clean(abs), true
}

func isBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}
