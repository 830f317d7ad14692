package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// ErrInvalidEntry marks a report element that cannot be used.
var ErrInvalidEntry = errors.New("invalid coverage entry")

var utf8BOM = []byte("\xef\xbb\xbf")

// ReportDecoder parses a page coverage report.
type ReportDecoder interface {
	Decode(data []byte) ([]m.ResourceEntry, error)
}

// JSONReportDecoder decodes the JSON array written by the browser's
// coverage API: [{"url": ..., "ranges": [{"start", "end"}], "text": ...}].
type JSONReportDecoder struct{}

// NewJSONReportDecoder constructs a JSONReportDecoder.
func NewJSONReportDecoder() *JSONReportDecoder {
	return &JSONReportDecoder{}
}

// Decode parses data and validates every entry.
func (d *JSONReportDecoder) Decode(data []byte) ([]m.ResourceEntry, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var entries []m.ResourceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode coverage report: %w", err)
	}

	for i, entry := range entries {
		if entry.URL == "" {
			return nil, fmt.Errorf("entry %d: %w: missing url", i, ErrInvalidEntry)
		}

		for _, r := range entry.Ranges {
			if r.Start < 0 || r.End < r.Start {
				return nil, fmt.Errorf("entry %d (%s): %w: range [%d,%d)", i, entry.URL, ErrInvalidEntry, r.Start, r.End)
			}
		}
	}

	return entries, nil
}
