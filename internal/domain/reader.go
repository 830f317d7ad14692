package domain

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mouse-blink/covmerge/internal/adapter"
	m "github.com/mouse-blink/covmerge/internal/model"
)

// CoverageReader loads page coverage reports and turns every listed
// resource into an Observation.
type CoverageReader struct {
	fs          adapter.CoverageFS
	decoder     adapter.ReportDecoder
	fingerprint adapter.Fingerprint
	logger      *zap.Logger
	threads     int
}

// NewCoverageReader constructs a CoverageReader. threads caps the number of
// files decoded at once; zero or less means no cap.
func NewCoverageReader(fs adapter.CoverageFS, decoder adapter.ReportDecoder, fingerprint adapter.Fingerprint,
	logger *zap.Logger, threads int) *CoverageReader {
	return &CoverageReader{
		fs:          fs,
		decoder:     decoder,
		fingerprint: fingerprint,
		logger:      logger,
		threads:     threads,
	}
}

// ReadAll decodes every file in inputDir matching mask. A file that cannot
// be read or decoded is logged and contributes nothing; only a failure to
// list inputDir is returned.
func (r *CoverageReader) ReadAll(ctx context.Context, inputDir m.Path, mask string) ([]m.Observation, error) {
	files, err := r.fs.ListFiles(inputDir, mask)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		r.logger.Info("no files to process", zap.String("input", string(inputDir)), zap.String("mask", mask))
		return []m.Observation{}, nil
	}

	r.logger.Info("coverage files found", zap.Int("files", len(files)))

	perFile, err := runTasks(ctx, r.threads, files, r.readFile)
	if err != nil {
		return nil, err
	}

	var observations []m.Observation
	for _, obs := range perFile {
		observations = append(observations, obs...)
	}

	return observations, nil
}

// readFile never fails the batch: errors other than cancellation are
// logged and the file yields no observations.
func (r *CoverageReader) readFile(ctx context.Context, file m.Path) ([]m.Observation, error) {
	r.logger.Debug("reading file", zap.String("file", string(file)))

	observations, err := r.decodeFile(ctx, file)
	if err != nil {
		if isCancellation(err) {
			return nil, err
		}

		if errors.Is(err, ErrNoEntries) {
			r.logger.Warn("file has no resources", zap.String("file", string(file)))
			return nil, nil
		}

		r.logger.Error("failed to parse file", zap.String("file", string(file)), zap.Error(err))

		return nil, nil
	}

	r.logger.Info("file parsed", zap.String("file", string(file)), zap.Int("resources", len(observations)))

	return observations, nil
}

func (r *CoverageReader) decodeFile(ctx context.Context, file m.Path) ([]m.Observation, error) {
	data, err := r.fs.ReadFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	entries, err := r.decoder.Decode(data)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	pageURL := entries[0].URL
	observations := make([]m.Observation, 0, len(entries))

	for _, entry := range entries {
		observations = append(observations, m.Observation{
			SourceFile:     file,
			PageURL:        pageURL,
			ResourceURL:    entry.URL,
			Ranges:         entry.Ranges,
			Fingerprint:    r.fingerprint(entry.Text),
			IsContentEmpty: entry.Text == "",
		})
	}

	return observations, nil
}
