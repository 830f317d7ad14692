// Package model defines the data structures shared by the coverage pipeline.
package model

import "strings"

// Path represents a file system path.
type Path string

// ResourceEntry is one element of a decoded page coverage report.
type ResourceEntry struct {
	URL    string  `json:"url"`
	Ranges []Range `json:"ranges"`
	// Text is the full resource content. Absent text decodes to "".
	Text string `json:"text"`
}

// Observation is a single page's view of one resource.
type Observation struct {
	SourceFile     Path
	PageURL        string
	ResourceURL    string
	Ranges         []Range
	Fingerprint    string
	IsContentEmpty bool
}

// Key returns the resource identity of the observation.
func (o Observation) Key() string {
	return ResourceKey(o.ResourceURL)
}

// ResourceKey strips the "scheme://" prefix from a resource URL so that the
// same asset served over different schemes groups together.
func ResourceKey(rawURL string) string {
	idx := strings.Index(rawURL, "://")
	if idx <= 0 || !isScheme(rawURL[:idx]) {
		return rawURL
	}

	return rawURL[idx+len("://"):]
}

func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}

	return true
}
