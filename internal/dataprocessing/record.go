package dataprocessing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	ierrors "enrichcli/internal/errors"
)

// Sentinel is the serialized form of a value that is undefined for a row.
const Sentinel = "-"

type cellKind int

const (
	cellText cellKind = iota
	cellNumeric
	cellNA
)

// Cell is a single value of a record: raw input text, a derived numeric
// value, or the not-applicable marker.
type Cell struct {
	kind cellKind
	text string
}

// TextCell creates a cell from raw input text. Input text equal to the
// sentinel is normalized to the not-applicable marker so it participates in
// marker propagation.
func TextCell(raw string) Cell {
	if strings.TrimSpace(raw) == Sentinel {
		return NACell()
	}
	return Cell{kind: cellText, text: raw}
}

// NumericCell creates a derived numeric cell. The value is serialized in the
// shortest form that parses back to the same float64, so enriched output
// round-trips exactly.
func NumericCell(v float64) Cell {
	return Cell{kind: cellNumeric, text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// CurrencyCell creates a derived numeric cell with exactly two decimal
// places, e.g. "30.00".
func CurrencyCell(d decimal.Decimal) Cell {
	return Cell{kind: cellNumeric, text: d.StringFixed(2)}
}

// NACell creates the not-applicable marker cell.
func NACell() Cell {
	return Cell{kind: cellNA}
}

// IsNA reports whether the cell carries the not-applicable marker.
func (c Cell) IsNA() bool {
	return c.kind == cellNA
}

// String returns the serialized form of the cell.
func (c Cell) String() string {
	if c.kind == cellNA {
		return Sentinel
	}
	return c.text
}

// Float parses the cell as a number. Thousands-separator commas are stripped
// before parsing. The second return value is false for the marker and for
// text that is not numeric.
func (c Cell) Float() (float64, bool) {
	if c.kind == cellNA {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleanNumeric(c.text), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Decimal parses the cell as an exact decimal, used where currency rounding
// must not go through binary floating point.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	if c.kind == cellNA {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleanNumeric(c.text))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func cleanNumeric(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}

// Record is one row of the dataset: an ordered name→cell mapping. Column
// insertion order is preserved for serialization.
type Record struct {
	columns []string
	cells   map[string]Cell
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{cells: make(map[string]Cell)}
}

// Set stores a cell under the given column, appending the column to the
// ordering if it is new.
func (r *Record) Set(column string, c Cell) {
	if _, exists := r.cells[column]; !exists {
		r.columns = append(r.columns, column)
	}
	r.cells[column] = c
}

// Get returns the cell stored under the given column.
func (r *Record) Get(column string) (Cell, bool) {
	c, ok := r.cells[column]
	return c, ok
}

// Columns returns the column names in insertion order.
func (r *Record) Columns() []string {
	cols := make([]string, len(r.columns))
	copy(cols, r.columns)
	return cols
}

// Values returns the serialized cell values in column order.
func (r *Record) Values() []string {
	values := make([]string, len(r.columns))
	for i, col := range r.columns {
		values[i] = r.cells[col].String()
	}
	return values
}

// MarshalJSON serializes the record as a JSON object whose keys appear in
// column insertion order. All values are strings; the marker stays "-".
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.cells[col].String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RecordsFromRows zips a header and raw rows into records, one per row, with
// header[i] naming the cell at row[i]. A row whose cell count differs from
// the header aborts with a structural error.
func RecordsFromRows(header []string, rows [][]string) ([]*Record, error) {
	if len(header) == 0 {
		return nil, ierrors.NewStructuralError("table has no header", nil)
	}

	records := make([]*Record, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, ierrors.NewStructuralError(
				fmt.Sprintf("row %d has %d cells, header has %d", i, len(row), len(header)), nil).
				WithContext("row_index", i)
		}
		record := NewRecord()
		for j, col := range header {
			record.Set(col, TextCell(row[j]))
		}
		records = append(records, record)
	}

	return records, nil
}
