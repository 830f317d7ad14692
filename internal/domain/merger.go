package domain

import (
	"cmp"
	"slices"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// MergeRanges folds ranges into the minimal sorted set of disjoint ranges
// covering the same offsets. Touching ranges ({0,5},{5,10}) are joined.
// The input slice is left untouched.
func MergeRanges(ranges []m.Range) []m.Range {
	merged := make([]m.Range, 0, len(ranges))
	if len(ranges) == 0 {
		return merged
	}

	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b m.Range) int {
		return cmp.Compare(a.Start, b.Start)
	})

	open := sorted[0]

	for _, next := range sorted[1:] {
		if next.Start <= open.End {
			open.End = max(open.End, next.End)
			continue
		}

		merged = append(merged, open)
		open = next
	}

	return append(merged, open)
}
