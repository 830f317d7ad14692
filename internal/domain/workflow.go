// Package domain implements the coverage aggregation pipeline: reading page
// reports, validating resource content, merging ranges and extracting the
// covered text.
package domain

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mouse-blink/covmerge/internal/adapter"
	"github.com/mouse-blink/covmerge/internal/controller"
	m "github.com/mouse-blink/covmerge/internal/model"
)

// AggregateArgs configures one aggregation run.
type AggregateArgs struct {
	Input  m.Path
	Output m.Path
	Mask   string
	// Threads caps concurrent file and resource tasks; zero means no cap.
	Threads int
}

// Workflow defines the interface for coverage aggregation.
type Workflow interface {
	Aggregate(ctx context.Context, args AggregateArgs) error
}

type workflow struct {
	fs          adapter.CoverageFS
	decoder     adapter.ReportDecoder
	fingerprint adapter.Fingerprint
	store       adapter.ReportStore
	ui          controller.UI
	logger      *zap.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fs adapter.CoverageFS,
	decoder adapter.ReportDecoder,
	fingerprint adapter.Fingerprint,
	store adapter.ReportStore,
	ui controller.UI,
	logger *zap.Logger,
) Workflow {
	return &workflow{
		fs:          fs,
		decoder:     decoder,
		fingerprint: fingerprint,
		store:       store,
		ui:          ui,
		logger:      logger,
	}
}

// Aggregate runs read, validate, aggregate and extract in order, each phase
// joining all of its tasks before the next starts. Cancellation stops the
// run at the next phase boundary and is not reported as an error.
func (w *workflow) Aggregate(ctx context.Context, args AggregateArgs) error {
	summary := m.RunSummary{RunID: uuid.NewString()}
	logger := w.logger.With(zap.String("run_id", summary.RunID))

	logger.Info("aggregation started",
		zap.String("input", string(args.Input)),
		zap.String("output", string(args.Output)),
		zap.String("mask", args.Mask))

	reader := NewCoverageReader(w.fs, w.decoder, w.fingerprint, logger, args.Threads)

	observations, err := reader.ReadAll(ctx, args.Input, args.Mask)
	if err != nil {
		return fmt.Errorf("read coverage reports: %w", err)
	}

	if ctx.Err() != nil {
		return w.cancel(logger, summary, "read")
	}

	summary.Observations = len(observations)
	summary.Pages = countPages(observations)

	observations, err = w.validate(ctx, logger, args.Output, observations, &summary)
	if err != nil {
		if isCancellation(err) {
			return w.cancel(logger, summary, "validate")
		}

		return err
	}

	resources := NewCoverageAggregator(logger).AggregateAll(observations)
	summary.Resources = len(resources)

	extractor := NewContentExtractor(w.fs, w.decoder, w.store, logger, args.Threads)

	stats, err := extractor.ExtractAll(ctx, args.Output, resources)
	if err != nil {
		return fmt.Errorf("extract covered content: %w", err)
	}

	if ctx.Err() != nil {
		return w.cancel(logger, summary, "extract")
	}

	summary.Stats = SortStats(stats)

	if err := w.writeStats(ctx, logger, args.Output, summary); err != nil {
		if isCancellation(err) {
			return w.cancel(logger, summary, "report")
		}

		return err
	}

	logger.Info("aggregation finished",
		zap.Int("pages", summary.Pages),
		zap.Int("resources", summary.Resources),
		zap.Int("excluded", len(summary.Excluded)+len(summary.ExcludedEmpty)))

	return w.ui.DisplaySummary(summary)
}

// validate drops inconsistent and empty-only resources and writes their
// diagnostics.
func (w *workflow) validate(ctx context.Context, logger *zap.Logger, output m.Path, observations []m.Observation,
	summary *m.RunSummary) ([]m.Observation, error) {
	inconsistent := FindInconsistentContent(observations)
	empty := FindAllEmptyContent(observations)

	for _, res := range inconsistent {
		fingerprints := make([]string, 0, len(res.Variants))
		for _, v := range res.Variants {
			fingerprints = append(fingerprints, v.Fingerprint)
		}

		logger.Warn("resource content differs between pages, excluded",
			zap.String("url", res.ResourceURL),
			zap.Strings("hashes", fingerprints))

		summary.Excluded = append(summary.Excluded, res.ResourceURL)
	}

	for _, res := range empty {
		logger.Warn("resource has no content in any report, excluded", zap.String("url", res.ResourceURL))

		summary.ExcludedEmpty = append(summary.ExcludedEmpty, res.ResourceURL)
	}

	if len(inconsistent) > 0 {
		if err := w.store.SaveText(ctx, output, adapter.ExcludedFileName, RenderInconsistent(inconsistent)); err != nil {
			return nil, err
		}
	}

	if len(empty) > 0 {
		if err := w.store.SaveText(ctx, output, adapter.ExcludedEmptyFileName, RenderAllEmpty(empty)); err != nil {
			return nil, err
		}
	}

	excluded := append(append([]string{}, summary.Excluded...), summary.ExcludedEmpty...)

	return ExcludeResources(observations, excluded...), nil
}

func (w *workflow) writeStats(ctx context.Context, logger *zap.Logger, output m.Path, summary m.RunSummary) error {
	table := RenderStats(summary.Stats)
	logger.Info("coverage statistics\n" + table)

	if err := w.store.SaveText(ctx, output, adapter.StatsFileName, table); err != nil {
		return err
	}

	return w.store.SaveIndex(ctx, output, summary)
}

func (w *workflow) cancel(logger *zap.Logger, summary m.RunSummary, phase string) error {
	logger.Info("aggregation cancelled", zap.String("phase", phase))

	summary.Cancelled = true

	return w.ui.DisplaySummary(summary)
}

func countPages(observations []m.Observation) int {
	files := make(map[m.Path]struct{})
	for _, obs := range observations {
		files[obs.SourceFile] = struct{}{}
	}

	return len(files)
}
