package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/flowshop/pkg/flowshop"
	"github.com/matzehuels/flowshop/pkg/solver"
)

// WriteJSON encodes an outcome as indented JSON and writes it to w.
func WriteJSON(out *solver.Outcome, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes an outcome to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(out *solver.Outcome, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(out, f)
}

// WriteMatrixCSV writes m as comma separated rows. The output reads back
// with [ReadMatrixCSV].
func WriteMatrixCSV(m flowshop.Matrix, w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, row := range m {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strconv.Itoa(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrixJSON writes m as {"matrix": [...]}.
func WriteMatrixJSON(m flowshop.Matrix, w io.Writer) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(struct {
		Matrix flowshop.Matrix `json:"matrix"`
	}{m}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
