// Package console renders band tables and screening results for terminals.
package console

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/RMahshie/imdscreen/internal/bands"
	"github.com/RMahshie/imdscreen/internal/export"
	"github.com/RMahshie/imdscreen/pkg/models"
)

// highlight marks rows that fall inside a checked band.
var highlight = tablewriter.Colors{tablewriter.Bold, tablewriter.FgBlackColor, tablewriter.BgYellowColor}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

// RenderBands prints the reference table, marking the bands in checked.
func RenderBands(w io.Writer, ref, checked bands.Table) {
	t := newTable(w, []string{"Frequency Band", "Range", "Overlap check"})
	for _, b := range ref {
		mark := ""
		if checked.Has(b.Name) {
			mark = "yes"
		}
		t.Append([]string{b.Name, b.RangeLabel(), mark})
	}
	t.Render()
}

// RenderResults prints the sorted result table. With color set, rows with an
// overlap are highlighted.
func RenderResults(w io.Writer, calc *models.Calculation, color bool) {
	t := newTable(w, export.Header)
	for _, row := range calc.Rows {
		record := export.Record(row.ClassifiedProduct)
		if color && row.Highlight {
			colors := make([]tablewriter.Colors, len(record))
			for i := range colors {
				colors[i] = highlight
			}
			t.Rich(record, colors)
			continue
		}
		t.Append(record)
	}
	t.Render()
}

// RenderSummary prints a one-line digest of calc.
func RenderSummary(w io.Writer, calc *models.Calculation) {
	fmt.Fprintf(w, "f1=%s MHz f2=%s MHz: %d products (n<=%d, m<=%d), %d inside checked bands, %d repeated frequencies\n",
		models.FormatMHz(calc.F1), models.FormatMHz(calc.F2), calc.Count, calc.NMax, calc.MMax, calc.OverlapCount, calc.DuplicateFrequencies)
}
