package domain

import (
	"context"
	"errors"
)

var (
	// ErrRangeOutOfBounds is returned when a covered range does not fit the
	// resource text it refers to.
	ErrRangeOutOfBounds = errors.New("range out of bounds")
	// ErrResourceNotFound is returned when a representative report file no
	// longer lists the resource.
	ErrResourceNotFound = errors.New("resource not found in report")
	// ErrNoEntries is returned for report files without any resource.
	ErrNoEntries = errors.New("report has no entries")
)

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
