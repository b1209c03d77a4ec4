package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// missing holds the cell spellings treated as null.
var missing = map[string]bool{"": true, "NA": true, "NaN": true, "nan": true, "NULL": true, "null": true}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// ReadCSV decodes a CSV document with a header row into a Table, inferring
// each column's type from its non-null cells.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return FromRecords(header, records), nil
}

// FromRecords builds a Table from string cells. Short records are padded
// with nulls; extra cells are dropped.
func FromRecords(header []string, records [][]string) *Table {
	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = inferColumn(name, records, i)
	}

	rows := make([]Row, len(records))
	for ri, rec := range records {
		row := make(Row, len(cols))
		for ci, col := range cols {
			row[col.Name] = convert(col, cell(rec, ci))
		}
		rows[ri] = row
	}
	return &Table{Columns: cols, Rows: rows}
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func inferColumn(name string, records [][]string, i int) Column {
	isInt, isFloat, isBool, isDate := true, true, true, true
	seen := 0
	for _, rec := range records {
		v := cell(rec, i)
		if missing[v] {
			continue
		}
		seen++
		if isInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			isBool = parseBool(v) != nil
		}
		if isDate {
			isDate = parseDate(v)
		}
		if !isInt && !isFloat && !isBool && !isDate {
			break
		}
	}

	switch {
	case seen == 0:
		return Column{Name: name, Type: TypeString, DType: "object"}
	case isInt:
		return Column{Name: name, Type: TypeInteger, DType: "int64"}
	case isFloat:
		return Column{Name: name, Type: TypeNumber, DType: "float64"}
	case isBool:
		return Column{Name: name, Type: TypeBoolean, DType: "bool"}
	case isDate:
		return Column{Name: name, Type: TypeDatetime, DType: "datetime64[ns]"}
	default:
		return Column{Name: name, Type: TypeString, DType: "object"}
	}
}

func convert(col Column, v string) any {
	if missing[v] {
		return nil
	}
	switch col.Type {
	case TypeInteger:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	case TypeNumber:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			// Inf and Infinity parse but have no JSON form.
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return nil
			}
			return f
		}
	case TypeBoolean:
		if b := parseBool(v); b != nil {
			return *b
		}
	}
	return v
}

func parseBool(v string) *bool {
	t, f := true, false
	switch strings.ToLower(v) {
	case "true":
		return &t
	case "false":
		return &f
	}
	return nil
}

func parseDate(v string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
