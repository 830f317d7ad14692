package model

// PageRef identifies the page (and report file) an observation came from.
type PageRef struct {
	SourceFile Path
	PageURL    string
}

// ContentVariant groups the pages that saw the same resource content.
type ContentVariant struct {
	Fingerprint string
	Pages       []PageRef
}

// InconsistentResource is a resource whose observations disagree on content.
type InconsistentResource struct {
	ResourceURL string
	Variants    []ContentVariant
}

// EmptyResource is a resource for which every observation had no text.
type EmptyResource struct {
	ResourceURL string
}

// RunSummary describes the outcome of one aggregation run.
type RunSummary struct {
	RunID         string
	Pages         int
	Observations  int
	Resources     int
	Excluded      []string
	ExcludedEmpty []string
	Stats         []CoverageStats
	Cancelled     bool
}

// Totals sums covered and total lengths across all resources.
func (s RunSummary) Totals() CoverageStats {
	var total CoverageStats
	for _, st := range s.Stats {
		total.TotalLength += st.TotalLength
		total.CoveredLength += st.CoveredLength
	}

	return total
}
