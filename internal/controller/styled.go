package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/covmerge/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	labelStyle = lipgloss.NewStyle().Faint(true).Width(24)
	valueStyle = lipgloss.NewStyle().Align(lipgloss.Right)
	goodStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fairStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	poorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// StyledUI implements UI with colored output for interactive terminals.
type StyledUI struct {
	output io.Writer
}

// NewStyledUI creates a new StyledUI.
func NewStyledUI(output io.Writer) *StyledUI {
	return &StyledUI{output: output}
}

// DisplaySummary prints the run summary with coverage colored by level.
func (u *StyledUI) DisplaySummary(summary m.RunSummary) error {
	if summary.Cancelled {
		_, _ = fmt.Fprintln(u.output, warnStyle.Render("aggregation cancelled"))
		return nil
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Coverage summary"))
	sb.WriteString("\n")

	rows := summaryRows(summary)
	for i, row := range rows {
		value := valueStyle.Render(row[1])
		if i == len(rows)-1 {
			value = coverageStyle(summary.Totals().Percent()).Render(row[1])
		}

		sb.WriteString(labelStyle.Render(row[0]))
		sb.WriteString(value)
		sb.WriteString("\n")
	}

	if n := len(summary.Excluded) + len(summary.ExcludedEmpty); n > 0 {
		sb.WriteString(warnStyle.Render(fmt.Sprintf("%d resource(s) excluded, see excluded reports", n)))
		sb.WriteString("\n")
	}

	_, err := fmt.Fprint(u.output, sb.String())

	return err
}

func coverageStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 80:
		return goodStyle
	case percent >= 50:
		return fairStyle
	default:
		return poorStyle
	}
}
