package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/midbel/gridcalc/config"
	"github.com/midbel/gridcalc/csv"
	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
	"github.com/olekukonko/tablewriter"
)

func printGrid(w io.Writer, g *grid.Grid, cfg config.Config, vf format.Formatter) error {
	if cfg.Print.Format == config.FormatCSV {
		return csv.WriteGrid(w, g, cfg.Print.Separator[0], vf)
	}
	size := g.Bounds()

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	if cfg.Print.Header {
		header := []string{""}
		for col := 1; col <= size.Columns; col++ {
			header = append(header, layout.ColumnName(col))
		}
		table.SetHeader(header)
	}
	for col := 1; col <= size.Columns; col++ {
		table.SetColMinWidth(col, cfg.Print.Width)
	}

	var line int
	for row := range g.Rows() {
		line++
		values := []string{strconv.Itoa(line)}
		for _, c := range row {
			str, err := vf.Format(c.Value)
			if err != nil {
				str = c.Value
			}
			values = append(values, str)
		}
		table.Append(values)
	}
	table.Render()
	return nil
}

func printBuiltins(w io.Writer, reg *formula.Registry) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Function", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, b := range reg.Builtins() {
		table.Append([]string{b.Name, b.Help})
	}
	table.SetFooter([]string{fmt.Sprintf("%d functions", reg.Len()), ""})
	table.Render()
	return nil
}
