package domain

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	m "github.com/mouse-blink/covmerge/internal/model"
)

// MaxDisplayURLLength caps URLs shown in the statistics table.
const MaxDisplayURLLength = 260

// SortStats orders stats worst-covered first: by uncovered length
// descending, then by URL.
func SortStats(stats []m.CoverageStats) []m.CoverageStats {
	sorted := slices.Clone(stats)
	slices.SortStableFunc(sorted, func(a, b m.CoverageStats) int {
		if c := cmp.Compare(b.Uncovered(), a.Uncovered()); c != 0 {
			return c
		}

		return cmp.Compare(a.URL, b.URL)
	})

	return sorted
}

// RenderStats formats the stats.txt table.
func RenderStats(stats []m.CoverageStats) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"COVERAGE", "UNCOVERED", "COVERED", "TOTAL", "URL"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	var total m.CoverageStats

	for _, st := range SortStats(stats) {
		table.Append([]string{
			formatPercent(st.Percent()),
			formatSize(st.Uncovered()),
			formatSize(st.CoveredLength),
			formatSize(st.TotalLength),
			truncateURL(st.URL),
		})

		total.TotalLength += st.TotalLength
		total.CoveredLength += st.CoveredLength
	}

	table.SetFooter([]string{
		formatPercent(total.Percent()),
		formatSize(total.Uncovered()),
		formatSize(total.CoveredLength),
		formatSize(total.TotalLength),
		fmt.Sprintf("TOTAL %d RESOURCES", len(stats)),
	})

	table.Render()

	return buf.String()
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

func formatSize(n int) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}

	return humanize.Bytes(uint64(n))
}

func truncateURL(u string) string {
	runes := []rune(u)
	if len(runes) <= MaxDisplayURLLength {
		return u
	}

	return string(runes[:MaxDisplayURLLength])
}
