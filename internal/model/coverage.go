package model

// Range is a half-open [Start, End) span of covered offsets.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of offsets covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// AggregatedResource is the union of all observations of one resource.
type AggregatedResource struct {
	ResourceURL string
	// RepresentativeFile is a report file holding non-empty text for the
	// resource. Empty when no such file exists.
	RepresentativeFile Path
	// Ranges are sorted and pairwise non-overlapping.
	Ranges       []Range
	Observations int
}

// CoverageStats holds coverage numbers for a single resource.
type CoverageStats struct {
	URL           string
	TotalLength   int
	CoveredLength int
}

// Percent returns the covered share in percent, 0 for empty resources.
func (s CoverageStats) Percent() float64 {
	if s.TotalLength <= 0 {
		return 0
	}

	return float64(s.CoveredLength) * 100 / float64(s.TotalLength)
}

// Uncovered returns the number of offsets not covered.
func (s CoverageStats) Uncovered() int {
	return s.TotalLength - s.CoveredLength
}
