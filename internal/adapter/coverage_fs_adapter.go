// Package adapter contains the infrastructure adapters the coverage pipeline
// consumes: file access, report decoding, fingerprinting and artifact storage.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// ErrNotADirectory is returned when the input location is not a directory.
var ErrNotADirectory = errors.New("not a directory")

// CoverageFS abstracts the filesystem operations the domain layer relies on.
// It hides direct `os` access so the pipeline can be tested against an
// in-memory filesystem.
type CoverageFS interface {
	// ListFiles returns the regular files directly inside dir whose base
	// name matches mask, sorted by name.
	ListFiles(dir m.Path, mask string) ([]m.Path, error)

	// ReadFile loads a file and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile writes content to path, creating parent directories first.
	WriteFile(ctx context.Context, path m.Path, content []byte) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalCoverageFS implements CoverageFS on top of an afero filesystem.
type LocalCoverageFS struct {
	fs afero.Fs
}

// NewLocalCoverageFS constructs a LocalCoverageFS backed by the OS filesystem.
func NewLocalCoverageFS() *LocalCoverageFS {
	return NewCoverageFS(afero.NewOsFs())
}

// NewCoverageFS constructs a LocalCoverageFS over fs.
// Use afero.NewMemMapFs() for testing.
func NewCoverageFS(fs afero.Fs) *LocalCoverageFS {
	return &LocalCoverageFS{fs: fs}
}

// ListFiles enumerates the top level of dir and keeps files matching mask.
func (a *LocalCoverageFS) ListFiles(dir m.Path, mask string) ([]m.Path, error) {
	if !doublestar.ValidatePattern(mask) {
		return nil, fmt.Errorf("invalid file mask %q: %w", mask, doublestar.ErrBadPattern)
	}

	info, err := a.fs.Stat(string(dir))
	if err != nil {
		return nil, fmt.Errorf("input folder %s: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("input folder %s: %w", dir, ErrNotADirectory)
	}

	entries, err := afero.ReadDir(a.fs, string(dir))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []m.Path

	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}

		ok, err := doublestar.Match(mask, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("match %s against %q: %w", entry.Name(), mask, err)
		}

		if ok {
			files = append(files, a.JoinPath(string(dir), entry.Name()))
		}
	}

	return files, nil
}

// ReadFile loads file contents.
func (a *LocalCoverageFS) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return afero.ReadFile(a.fs, string(path))
}

// WriteFile ensures the parent directory exists and writes content.
func (a *LocalCoverageFS) WriteFile(ctx context.Context, path m.Path, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := a.fs.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}

	return afero.WriteFile(a.fs, string(path), content, os.FileMode(0o644))
}

// JoinPath joins path elements into a single path.
func (a *LocalCoverageFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
