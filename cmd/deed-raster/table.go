package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// maxDetailWidth bounds the Detail column of the pages table.
const maxDetailWidth = 60

// renderTable renders rows under header with the rounded style. Columns
// without an entry in aligns are left-aligned.
func renderTable(header table.Row, rows []table.Row, aligns []text.Align) string {
	if len(header) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(header)
	tw.AppendRows(rows)

	configs := make([]table.ColumnConfig, 0, len(aligns))
	for i, align := range aligns {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// truncate shortens s to at most width display columns, marking the cut
// with "...". Multi-byte runes are never split.
func truncate(s string, width int) string {
	if text.StringWidthWithoutEscSequences(s) <= width {
		return s
	}
	return text.Trim(s, width-3) + "..."
}
