package domain

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mouse-blink/covmerge/internal/adapter"
	m "github.com/mouse-blink/covmerge/internal/model"
)

// ExtractCovered concatenates the covered slices of text, one line per
// range, and measures coverage. On a range that does not fit text it
// returns an empty string, zero covered length and ErrRangeOutOfBounds.
func ExtractCovered(resource m.AggregatedResource, text string) (string, m.CoverageStats, error) {
	rt := newResourceText(text)
	stats := m.CoverageStats{URL: resource.ResourceURL, TotalLength: rt.Len()}

	for _, r := range resource.Ranges {
		if r.Start < 0 || r.Start > r.End || r.End > rt.Len() {
			return "", stats, fmt.Errorf("%w: [%d,%d) in text of length %d", ErrRangeOutOfBounds, r.Start, r.End, rt.Len())
		}
	}

	var sb strings.Builder

	for _, r := range resource.Ranges {
		sb.WriteString(rt.Slice(r.Start, r.End))
		sb.WriteString("\n")

		stats.CoveredLength += r.Len()
	}

	return sb.String(), stats, nil
}

// ContentExtractor recovers resource text from report files, writes the
// covered part of every resource and collects coverage statistics.
type ContentExtractor struct {
	fs      adapter.CoverageFS
	decoder adapter.ReportDecoder
	store   adapter.ReportStore
	logger  *zap.Logger
	threads int
}

// NewContentExtractor constructs a ContentExtractor.
func NewContentExtractor(fs adapter.CoverageFS, decoder adapter.ReportDecoder, store adapter.ReportStore,
	logger *zap.Logger, threads int) *ContentExtractor {
	return &ContentExtractor{
		fs:      fs,
		decoder: decoder,
		store:   store,
		logger:  logger,
		threads: threads,
	}
}

// ExtractAll processes resources concurrently. Per-resource read and slice
// failures degrade that resource to zero coverage; write failures are
// returned once every resource has been handled.
func (e *ContentExtractor) ExtractAll(ctx context.Context, outputDir m.Path, resources []m.AggregatedResource) ([]m.CoverageStats, error) {
	collected, err := runTasks(ctx, e.threads, resources, func(ctx context.Context, res m.AggregatedResource) (m.CoverageStats, error) {
		return e.extractResource(ctx, outputDir, res)
	})

	stats := make([]m.CoverageStats, 0, len(collected))

	for _, st := range collected {
		if st.URL != "" {
			stats = append(stats, st)
		}
	}

	return stats, err
}

func (e *ContentExtractor) extractResource(ctx context.Context, outputDir m.Path, res m.AggregatedResource) (m.CoverageStats, error) {
	logger := e.logger.With(zap.String("url", res.ResourceURL), zap.String("file", string(res.RepresentativeFile)))

	if res.RepresentativeFile == "" {
		logger.Warn("no report with resource content, skipping")
		return m.CoverageStats{}, nil
	}

	text, err := e.loadText(ctx, res)
	if err != nil {
		if isCancellation(err) {
			return m.CoverageStats{}, err
		}

		logger.Error("failed to load resource content", zap.Error(err))

		if len(res.Ranges) == 0 {
			return m.CoverageStats{URL: res.ResourceURL}, nil
		}

		return e.save(ctx, logger, outputDir, res, "", m.CoverageStats{URL: res.ResourceURL})
	}

	covered, stats, err := ExtractCovered(res, text)
	if err != nil {
		logger.Error("failed to extract covered content", zap.Error(err))
	}

	if len(res.Ranges) == 0 {
		logger.Info("resource has no covered ranges")
		return stats, nil
	}

	return e.save(ctx, logger, outputDir, res, covered, stats)
}

func (e *ContentExtractor) save(ctx context.Context, logger *zap.Logger, outputDir m.Path, res m.AggregatedResource,
	covered string, stats m.CoverageStats) (m.CoverageStats, error) {
	path, err := e.store.SaveCovered(ctx, outputDir, res.ResourceURL, covered)
	if err != nil {
		return m.CoverageStats{}, err
	}

	logger.Info("covered content written", zap.String("output", string(path)))

	return stats, nil
}

// loadText re-reads the representative report and returns the text of the
// entry with the same resource key.
func (e *ContentExtractor) loadText(ctx context.Context, res m.AggregatedResource) (string, error) {
	data, err := e.fs.ReadFile(ctx, res.RepresentativeFile)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", res.RepresentativeFile, err)
	}

	entries, err := e.decoder.Decode(data)
	if err != nil {
		return "", err
	}

	key := m.ResourceKey(res.ResourceURL)

	for _, entry := range entries {
		if m.ResourceKey(entry.URL) == key && entry.Text != "" {
			return entry.Text, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrResourceNotFound, res.ResourceURL)
}
