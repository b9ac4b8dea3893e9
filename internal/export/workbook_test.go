package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/seenimoa/smartcam/internal/chart"
	"github.com/seenimoa/smartcam/internal/content"
)

func readBack(t *testing.T, c chart.Chart) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, c); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", cell, err)
	}
	return v
}

func TestWriteWorkbook_DefaultChart(t *testing.T) {
	f := readBack(t, chart.Render(content.Default().Chart))

	if got := f.GetSheetList(); len(got) != 1 || got[0] != SheetName {
		t.Fatalf("sheets: got %v, want [%s]", got, SheetName)
	}

	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if got := cellValue(t, f, cell); got != h {
			t.Errorf("header %s: got %q, want %q", cell, got, h)
		}
	}

	tests := []struct {
		cell, want string
	}{
		{"A2", "Accuracy"},
		{"B2", "55"},
		{"C2", "Ưu tiên"},
		{"D2", "55"},
		{"E2", "#34d399"},
		{"F2", "198"},
		{"A3", "FPS"},
		{"D3", "25"},
		{"F3", "90"},
		{"A4", "Latency"},
		{"C4", "Độ trễ"},
		{"F4", "72"},
		{"A5", "Tổng"},
		{"B5", "100"},
		{"D5", "100"},
	}
	for _, tt := range tests {
		if got := cellValue(t, f, tt.cell); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestWriteWorkbook_Empty(t *testing.T) {
	f := readBack(t, chart.Render(chart.Spec{Title: "Empty"}))

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want header and total", len(rows))
	}
	if rows[1][0] != chart.DefaultCaption || rows[1][1] != "0" {
		t.Errorf("total row: got %v", rows[1])
	}
}

func TestWorkbook_CustomCaption(t *testing.T) {
	c := chart.Render(chart.Spec{
		Caption:  "Total",
		Segments: []chart.Segment{{Label: "A", Value: 1}, {Label: "B", Value: 2}},
	})
	f, err := Workbook(c)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(SheetName, "A4"); got != "Total" {
		t.Errorf("caption: got %q", got)
	}
	if got, _ := f.GetCellValue(SheetName, "C2"); got != "1" {
		t.Errorf("display fallback: got %q, want value text", got)
	}
}
