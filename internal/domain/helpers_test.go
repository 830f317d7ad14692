package domain

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/covmerge/internal/model"
)

func observation(file, resourceURL, fingerprint string, empty bool, ranges ...m.Range) m.Observation {
	return m.Observation{
		SourceFile:     m.Path(file),
		PageURL:        "https://example.com/" + file,
		ResourceURL:    resourceURL,
		Ranges:         ranges,
		Fingerprint:    fingerprint,
		IsContentEmpty: empty,
	}
}

func writeReport(t *testing.T, fs afero.Fs, path string, entries ...m.ResourceEntry) {
	t.Helper()

	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	return string(data)
}

// recordingUI keeps the summaries it was asked to display.
type recordingUI struct {
	mu        sync.Mutex
	summaries []m.RunSummary
}

func (u *recordingUI) DisplaySummary(summary m.RunSummary) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.summaries = append(u.summaries, summary)

	return nil
}

func (u *recordingUI) last(t *testing.T) m.RunSummary {
	t.Helper()

	u.mu.Lock()
	defer u.mu.Unlock()

	require.NotEmpty(t, u.summaries, "no summary displayed")

	return u.summaries[len(u.summaries)-1]
}

// cancellingFS cancels the run the first time a file is read.
type cancellingFS struct {
	afero.Fs
	cancel context.CancelFunc
	once   sync.Once
}

func (c *cancellingFS) Open(name string) (afero.File, error) {
	c.once.Do(c.cancel)
	return c.Fs.Open(name)
}
