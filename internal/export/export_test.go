package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleTable() *Table {
	return &Table{
		Relations:  "complex",
		WaterModel: "tabulated",
		Sweep:      "temperature",
		Columns:    []string{"temperature", "rho_liquid", "rho_gas"},
		Rows: [][]float64{
			{300, 996.5, 1.123},
			{310, 993.3, 1.087},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTable()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "temperature,rho_liquid,rho_gas" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "300,996.5,") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleTable()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got Table
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Relations != "complex" || got.WaterModel != "tabulated" {
		t.Errorf("metadata lost: %+v", got)
	}
	if len(got.Rows) != 2 || got.Rows[1][0] != 310 {
		t.Errorf("rows lost: %+v", got.Rows)
	}
}

func TestTableToSVG(t *testing.T) {
	svg := TableToSVG(sampleTable(), 800, 400)
	if !strings.HasPrefix(svg, "<?xml") {
		t.Fatalf("missing xml prolog: %q", svg[:20])
	}
	for _, want := range []string{"<svg", "<path", "rho_liquid", "rho_gas", "</svg>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	// One path per property column.
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("path count = %d, want 2", got)
	}
}

func TestCurveToSVGDegenerate(t *testing.T) {
	if got := CurveToSVG([]float64{1}, []float64{2}, 100, 100, "#fff"); got != "" {
		t.Errorf("single point should yield empty svg, got %q", got)
	}
	if got := CurveToSVG([]float64{1, 2}, []float64{3}, 100, 100, "#fff"); got != "" {
		t.Errorf("mismatched lengths should yield empty svg, got %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out.csv")
	if err := WriteFile(csvPath, "csv", sampleTable()); err != nil {
		t.Fatalf("WriteFile csv: %v", err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "rho_liquid") {
		t.Errorf("csv missing header: %q", data)
	}

	jsonPath := filepath.Join(dir, "out.json")
	if err := WriteFile(jsonPath, "json", sampleTable()); err != nil {
		t.Fatalf("WriteFile json: %v", err)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("not valid json: %q", data)
	}
}
