package controller

import (
	"bytes"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// SimpleUI implements UI using a borderless table on the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySummary prints the run summary.
func (s *SimpleUI) DisplaySummary(summary m.RunSummary) error {
	if summary.Cancelled {
		s.printf("aggregation cancelled (run %s)\n", summary.RunID)
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, row := range summaryRows(summary) {
		table.Append(row)
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// summaryRows lists the label/value pairs shared by every UI.
func summaryRows(summary m.RunSummary) [][]string {
	totals := summary.Totals()

	return [][]string{
		{"Run", summary.RunID},
		{"Pages", humanize.Comma(int64(summary.Pages))},
		{"Observations", humanize.Comma(int64(summary.Observations))},
		{"Resources", humanize.Comma(int64(summary.Resources))},
		{"Excluded (inconsistent)", humanize.Comma(int64(len(summary.Excluded)))},
		{"Excluded (empty)", humanize.Comma(int64(len(summary.ExcludedEmpty)))},
		{"Covered", humanize.Bytes(uint64(totals.CoveredLength))},
		{"Total", humanize.Bytes(uint64(totals.TotalLength))},
		{"Coverage", fmt.Sprintf("%.2f%%", totals.Percent())},
	}
}
