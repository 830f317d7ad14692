// Package controller provides output adapters for presenting aggregation results.
package controller

import (
	m "github.com/mouse-blink/covmerge/internal/model"
)

// UI presents the outcome of an aggregation run to the user.
// Implementations can use different output methods (plain table, styled text).
type UI interface {
	DisplaySummary(summary m.RunSummary) error
}
