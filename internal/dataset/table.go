package dataset

import "encoding/json"

// Logical column types exposed by the schema endpoint.
const (
	TypeString   = "string"
	TypeNumber   = "number"
	TypeInteger  = "integer"
	TypeBoolean  = "boolean"
	TypeDatetime = "datetime"
)

// Column is one schema entry. DType mirrors the dataframe dtype names the
// explorer UI was built against.
type Column struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	DType string `json:"dtype"`
}

// Row maps column name to a value: nil, int64, float64, bool or string.
type Row map[string]any

// Table is an ordered set of columns with their rows.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Schema is the schema endpoint payload.
type Schema struct {
	DatasetID    string   `json:"dataset_id"`
	Columns      []Column `json:"columns"`
	TotalColumns int      `json:"total_columns"`
}

// Page is the data endpoint payload.
type Page struct {
	DatasetID string   `json:"dataset_id"`
	Columns   []string `json:"columns"`
	Data      []Row    `json:"data"`
	TotalRows int      `json:"total_rows"`
	Offset    int      `json:"offset"`
	Limit     int      `json:"limit"`
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Schema describes t as dataset id.
func (t *Table) Schema(id string) Schema {
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	return Schema{DatasetID: id, Columns: cols, TotalColumns: len(cols)}
}

// Filter returns a table sharing t's columns with only the rows keep accepts.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Columns: t.Columns, Rows: make([]Row, 0, len(t.Rows))}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Append adds other's rows to t. Columns only present in other are appended
// to the schema; a column typed differently by the two tables is widened.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	index := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		index[c.Name] = i
	}
	for _, c := range other.Columns {
		i, ok := index[c.Name]
		if !ok {
			index[c.Name] = len(t.Columns)
			t.Columns = append(t.Columns, c)
			continue
		}
		t.Columns[i] = widen(t.Columns[i], c)
	}
	t.Rows = append(t.Rows, other.Rows...)
}

func widen(a, b Column) Column {
	switch {
	case a.Type == b.Type:
		return a
	case isNumeric(a.Type) && isNumeric(b.Type):
		return Column{Name: a.Name, Type: TypeNumber, DType: "float64"}
	default:
		return Column{Name: a.Name, Type: TypeString, DType: "object"}
	}
}

func isNumeric(t string) bool { return t == TypeInteger || t == TypeNumber }

// Page projects t onto columns and slices rows [offset, offset+limit).
// Unknown column names are ignored; when none remain every column is kept.
func (t *Table) Page(id string, columns []string, limit, offset int) Page {
	selected := t.selectColumns(columns)

	total := len(t.Rows)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}

	data := make([]Row, 0, end-start)
	for _, r := range t.Rows[start:end] {
		projected := make(Row, len(selected))
		for _, name := range selected {
			projected[name] = r[name]
		}
		data = append(data, projected)
	}

	return Page{
		DatasetID: id,
		Columns:   selected,
		Data:      data,
		TotalRows: total,
		Offset:    offset,
		Limit:     limit,
	}
}

func (t *Table) selectColumns(requested []string) []string {
	if len(requested) == 0 {
		return t.ColumnNames()
	}
	seen := make(map[string]bool, len(requested))
	out := make([]string, 0, len(requested))
	for _, name := range requested {
		if seen[name] {
			continue
		}
		if _, ok := t.Column(name); ok {
			seen[name] = true
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return t.ColumnNames()
	}
	return out
}

// Normalize converts a decoded JSON value back to the Go type its column
// holds. Numbers must have been decoded with json.Decoder.UseNumber.
func (c Column) Normalize(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if c.Type == TypeInteger {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
