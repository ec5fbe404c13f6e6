package io

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/flowshop/pkg/errors"
	"github.com/matzehuels/flowshop/pkg/flowshop"
)

// ReadMatrixCSV parses comma separated rows into a matrix.
func ReadMatrixCSV(r io.Reader) (flowshop.Matrix, error) {
	return readDelimited(r, ',')
}

// ReadMatrixTSV parses tab separated rows into a matrix.
func ReadMatrixTSV(r io.Reader) (flowshop.Matrix, error) {
	return readDelimited(r, '\t')
}

func readDelimited(r io.Reader, sep rune) (flowshop.Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var m flowshop.Matrix
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse table")
		}

		row := make([]int, 0, len(record))
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" && i == len(record)-1 && i > 0 {
				// trailing separator
				continue
			}
			v, err := strconv.Atoi(cell)
			if err != nil {
				line, col := cr.FieldPos(i)
				return nil, errors.Validation(errors.ErrCodeInvalidFormat,
					"line %d, column %d: %q is not an integer", line, col, cell)
			}
			row = append(row, v)
		}
		m = append(m, row)
	}
	return m, nil
}

// ReadMatrixJSON decodes a bare [][]int or an object with a "matrix" field.
func ReadMatrixJSON(r io.Reader) (flowshop.Matrix, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read json")
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var m flowshop.Matrix
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode matrix")
		}
		return m, nil
	}

	var doc struct {
		Matrix flowshop.Matrix `json:"matrix"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode matrix")
	}
	if doc.Matrix == nil {
		return nil, errors.Validation(errors.ErrCodeInvalidFormat, `json object has no "matrix" field`)
	}
	return doc.Matrix, nil
}

// ImportMatrix reads the matrix file at path, choosing the format by
// extension: .json, .tsv, or CSV for anything else.
func ImportMatrix(path string) (flowshop.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "matrix file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadMatrixJSON(f)
	case ".tsv":
		return ReadMatrixTSV(f)
	default:
		return ReadMatrixCSV(f)
	}
}
