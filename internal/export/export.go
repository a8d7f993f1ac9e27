// Package export writes property tables to CSV and JSON, for plotting and
// for feeding property curves into external tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"
)

// Table is a property sweep: one independent variable column followed by
// one column per property.
type Table struct {
	Relations  string      `json:"relations"`
	WaterModel string      `json:"water_model"`
	Sweep      string      `json:"sweep"` // name of the independent variable
	Columns    []string    `json:"columns"`
	Rows       [][]float64 `json:"rows"`
}

// WriteCSV writes the table with a header row.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the table with metadata, indented.
func WriteJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteFile dispatches on format ("csv", "json" or "svg") and writes to
// path, or to stdout when path is empty.
func WriteFile(path, format string, t *Table) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		return WriteJSON(w, t)
	case "svg":
		_, err := io.WriteString(w, TableToSVG(t, 800, 400))
		return err
	}
	return WriteCSV(w, t)
}
