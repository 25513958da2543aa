package export

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lehigh-university-libraries/treeslice/internal/models"
)

// numeric columns are right aligned
var rightAligned = map[int]bool{5: true, 6: true}

// RenderTable renders the records as a terminal table
func RenderTable(records []models.InspectionRecord) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, r := range records {
		cells := Row(r)
		row := make(table.Row, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		tw.AppendRow(row)
	}

	configs := make([]table.ColumnConfig, 0, len(Header))
	for i := range Header {
		align := text.AlignLeft
		if rightAligned[i+1] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
