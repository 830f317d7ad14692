package domain

import (
	"go.uber.org/zap"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// CoverageAggregator merges the observations of each resource.
type CoverageAggregator struct {
	logger *zap.Logger
}

// NewCoverageAggregator constructs a CoverageAggregator.
func NewCoverageAggregator(logger *zap.Logger) *CoverageAggregator {
	return &CoverageAggregator{logger: logger}
}

// AggregateAll returns one AggregatedResource per resource key, in the
// order resources were first observed.
func (a *CoverageAggregator) AggregateAll(observations []m.Observation) []m.AggregatedResource {
	groups := groupByResource(observations)
	resources := make([]m.AggregatedResource, 0, len(groups))

	for _, group := range groups {
		resources = append(resources, a.AggregateResource(group.observations[0].ResourceURL, group.observations))
	}

	return resources
}

// AggregateResource unions the ranges of observations. The representative
// file is the first one that carried the resource text.
func (a *CoverageAggregator) AggregateResource(resourceURL string, observations []m.Observation) m.AggregatedResource {
	var (
		ranges         []m.Range
		representative m.Path
	)

	for _, obs := range observations {
		ranges = append(ranges, obs.Ranges...)

		if representative == "" && !obs.IsContentEmpty {
			representative = obs.SourceFile
		}
	}

	merged := MergeRanges(ranges)

	a.logger.Info("coverage aggregated",
		zap.String("url", resourceURL),
		zap.Int("reports", len(observations)),
		zap.Int("ranges", len(merged)))

	return m.AggregatedResource{
		ResourceURL:        resourceURL,
		RepresentativeFile: representative,
		Ranges:             merged,
		Observations:       len(observations),
	}
}
