package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covmerge/internal/model"
)

func TestLocalCoverageFS_ListFiles(t *testing.T) {
	t.Run("keeps top level files matching the mask", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "b.json"), "[]")
		writeTestFile(t, filepath.Join(root, "a.json"), "[]")
		writeTestFile(t, filepath.Join(root, "notes.txt"), "")
		require.NoError(t, os.Mkdir(filepath.Join(root, "dir.json"), 0o755))
		writeTestFile(t, filepath.Join(root, "dir.json", "nested.json"), "[]")

		files, err := NewLocalCoverageFS().ListFiles(m.Path(root), "*.json")
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(root, "a.json")),
			m.Path(filepath.Join(root, "b.json")),
		}, files)
	})

	t.Run("brace patterns", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		for _, name := range []string{"home.json", "cart.json", "admin.json"} {
			require.NoError(t, afero.WriteFile(fs, "/in/"+name, []byte("[]"), 0o644))
		}

		files, err := NewCoverageFS(fs).ListFiles("/in", "{home,cart}.json")
		require.NoError(t, err)

		assert.Equal(t, []m.Path{"/in/cart.json", "/in/home.json"}, files)
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := NewCoverageFS(afero.NewMemMapFs()).ListFiles("/missing", "*.json")
		require.Error(t, err)
	})

	t.Run("file instead of folder", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/report.json", []byte("[]"), 0o644))

		_, err := NewCoverageFS(fs).ListFiles("/report.json", "*.json")
		require.ErrorIs(t, err, ErrNotADirectory)
	})

	t.Run("invalid mask", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/in", 0o755))

		_, err := NewCoverageFS(fs).ListFiles("/in", "[json")
		require.ErrorIs(t, err, doublestar.ErrBadPattern)
	})
}

func TestLocalCoverageFS_WriteFileCreatesParents(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfs := NewCoverageFS(fs)

	path := cfs.JoinPath("/out", "cdn.example.com", "js", "app.js")
	require.NoError(t, cfs.WriteFile(context.Background(), path, []byte("covered")))

	data, err := cfs.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "covered", string(data))
}

func TestLocalCoverageFS_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfs := NewCoverageFS(afero.NewMemMapFs())

	_, err := cfs.ReadFile(ctx, "/in/a.json")
	require.ErrorIs(t, err, context.Canceled)

	err = cfs.WriteFile(ctx, "/out/a.js", []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
