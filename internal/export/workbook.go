// Package export writes the rendered chart weights as a spreadsheet so the
// numbers behind the ring can be edited and fed back as content.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/seenimoa/smartcam/internal/chart"
)

// SheetName is the worksheet holding the weights table.
const SheetName = "Weights"

// Header is the first row of the weights table.
var Header = []string{"Label", "Value", "Display", "Percent", "Color", "Span (deg)"}

// WriteWorkbook writes one row per arc followed by a total row.
func WriteWorkbook(w io.Writer, c chart.Chart) error {
	f, err := Workbook(c)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Workbook builds the weights workbook in memory. The caller closes it.
func Workbook(c chart.Chart) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if err := fill(f, c); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fill(f *excelize.File, c chart.Chart) error {
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	percentSum := 0
	for i, a := range c.Arcs {
		row := i + 2
		entry := c.Legend[i]
		percentSum += entry.Percent

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			a.Label,
			a.Value,
			entry.Text,
			entry.Percent,
			a.Color,
			round2(a.SpanDegrees()),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}

		swatch, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(a.Color, "#")}},
		})
		if err != nil {
			return fmt.Errorf("creating swatch style: %w", err)
		}
		colorCell, _ := excelize.CoordinatesToCellName(5, row)
		if err := f.SetCellStyle(SheetName, colorCell, colorCell, swatch); err != nil {
			return fmt.Errorf("styling row %d: %w", row, err)
		}
	}

	totalRow := len(c.Arcs) + 2
	cell, _ := excelize.CoordinatesToCellName(1, totalRow)
	total := []interface{}{c.Caption, c.Total, "", percentSum}
	if err := f.SetSheetRow(SheetName, cell, &total); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}
	end, _ := excelize.CoordinatesToCellName(4, totalRow)
	if err := f.SetCellStyle(SheetName, cell, end, bold); err != nil {
		return fmt.Errorf("styling total row: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "C", 16); err != nil {
		return err
	}
	return f.SetColWidth(SheetName, "D", "F", 12)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
