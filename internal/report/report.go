// File: internal/report/report.go
// Description: Renders the ordered enriched records as a text table. Pure
// presentation: nothing here can alter or invalidate the traversal output.
package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/depscope/depscope-cli/api/schemas"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render lays the records out as a bordered grid with one row per
// component, in traversal order. Absent telemetry renders as N/A.
func Render(records []schemas.EnrichedRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "TYPE", "STATUS", "HEALTH", "CPU", "MEMORY", "DISK")

	for _, rec := range records {
		t.Row(
			rec.ID,
			rec.Type,
			rec.Status,
			string(rec.ObservedHealth),
			rec.CPUUsage.String(),
			rec.MemoryUsage.String(),
			rec.DiskUsage.String(),
		)
	}

	return t.Render()
}
