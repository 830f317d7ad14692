package adapter

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// Names of the run-level artifacts written under the output folder.
const (
	StatsFileName         = "stats.txt"
	ExcludedFileName      = "excluded.txt"
	ExcludedEmptyFileName = "excludedEmpty.txt"
	IndexFileName         = "stats.yaml"
)

// ReportStore persists the artifacts of an aggregation run.
type ReportStore interface {
	// SaveCovered writes the covered content of a resource and returns the
	// path it was written to.
	SaveCovered(ctx context.Context, outputDir m.Path, resourceURL string, content string) (m.Path, error)
	// SaveText writes a run-level text artifact such as stats.txt.
	SaveText(ctx context.Context, outputDir m.Path, name string, content string) error
	// SaveIndex writes the machine readable run summary.
	SaveIndex(ctx context.Context, outputDir m.Path, summary m.RunSummary) error
}

// LocalReportStore writes artifacts through a CoverageFS.
type LocalReportStore struct {
	fs CoverageFS
}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore(fs CoverageFS) *LocalReportStore {
	return &LocalReportStore{fs: fs}
}

// SaveCovered writes content to the path derived from resourceURL.
func (rs *LocalReportStore) SaveCovered(ctx context.Context, outputDir m.Path, resourceURL string, content string) (m.Path, error) {
	path := OutputPath(outputDir, resourceURL)

	if err := rs.fs.WriteFile(ctx, path, []byte(content)); err != nil {
		return "", fmt.Errorf("write covered content of %s: %w", resourceURL, err)
	}

	return path, nil
}

// SaveText writes content to outputDir/name.
func (rs *LocalReportStore) SaveText(ctx context.Context, outputDir m.Path, name string, content string) error {
	path := rs.fs.JoinPath(string(outputDir), name)

	if err := rs.fs.WriteFile(ctx, path, []byte(content)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	return nil
}

type indexYAML struct {
	RunID         string      `yaml:"run_id"`
	Pages         int         `yaml:"pages"`
	Observations  int         `yaml:"observations"`
	Resources     int         `yaml:"resources"`
	TotalLength   int         `yaml:"total_length"`
	CoveredLength int         `yaml:"covered_length"`
	Coverage      string      `yaml:"coverage"`
	Excluded      []string    `yaml:"excluded,omitempty"`
	ExcludedEmpty []string    `yaml:"excluded_empty,omitempty"`
	Stats         []statsYAML `yaml:"stats"`
}

type statsYAML struct {
	URL      string `yaml:"url"`
	Total    int    `yaml:"total"`
	Covered  int    `yaml:"covered"`
	Coverage string `yaml:"coverage"`
}

// SaveIndex writes summary as YAML to outputDir/stats.yaml.
func (rs *LocalReportStore) SaveIndex(ctx context.Context, outputDir m.Path, summary m.RunSummary) error {
	totals := summary.Totals()

	idx := indexYAML{
		RunID:         summary.RunID,
		Pages:         summary.Pages,
		Observations:  summary.Observations,
		Resources:     summary.Resources,
		TotalLength:   totals.TotalLength,
		CoveredLength: totals.CoveredLength,
		Coverage:      formatPercent(totals.Percent()),
		Excluded:      summary.Excluded,
		ExcludedEmpty: summary.ExcludedEmpty,
		Stats:         make([]statsYAML, 0, len(summary.Stats)),
	}

	for _, st := range summary.Stats {
		idx.Stats = append(idx.Stats, statsYAML{
			URL:      st.URL,
			Total:    st.TotalLength,
			Covered:  st.CoveredLength,
			Coverage: formatPercent(st.Percent()),
		})
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal run index: %w", err)
	}

	return rs.SaveText(ctx, outputDir, IndexFileName, string(data))
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
