package tabular

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"skillboard/internal/errors"
)

// CellKind tags what a parsed cell holds.
type CellKind int

const (
	CellMissing CellKind = iota
	CellNumber
	CellString
)

// Cell is a single tagged value. Raw always keeps the original text so
// exports reproduce the upload byte-for-byte; Number is only meaningful
// when Kind == CellNumber.
type Cell struct {
	Kind   CellKind
	Number float64
	Raw    string
}

// NumberValue returns the numeric value and whether the cell holds one.
// String cells read as missing here, matching coerce-to-numeric semantics.
func (c Cell) NumberValue() (float64, bool) {
	if c.Kind == CellNumber {
		return c.Number, true
	}
	return 0, false
}

// IsMissing reports whether the cell carries no value at all.
func (c Cell) IsMissing() bool {
	return c.Kind == CellMissing
}

// Display returns the cell as shown in tables. Missing cells render empty.
func (c Cell) Display() string {
	return c.Raw
}

// Row is one record, aligned to Dataset.Columns.
type Row []Cell

// Dataset is the single in-memory table the whole dashboard reads.
// Replaced wholesale on admin upload, never persisted.
type Dataset struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeColumnName trims a header and collapses internal whitespace
// runs to nothing ("Pre Score" -> "PreScore").
func NormalizeColumnName(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), "")
}

// ParseCell coerces one raw field into a tagged cell. Empty or
// whitespace-only fields are missing; numeric fields become numbers.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{Kind: CellMissing, Raw: raw}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Cell{Kind: CellNumber, Number: n, Raw: raw}
	}
	return Cell{Kind: CellString, Raw: raw}
}

// Parse reads a comma-delimited UTF-8 CSV with a required header row.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ParseError("malformed CSV"), err.Error())
	}
	if len(records) == 0 {
		return nil, errors.ParseError("empty file: header row required")
	}
	return FromRecords(records[0], records[1:])
}

// FromRecords builds a dataset from a header row plus raw string records.
// Shared by the CSV parser and the spreadsheet adapter.
func FromRecords(header []string, records [][]string) (*Dataset, error) {
	ds := &Dataset{
		Columns: make([]string, 0, len(header)),
		index:   make(map[string]int, len(header)),
	}
	for _, name := range header {
		normalized := NormalizeColumnName(name)
		if _, exists := ds.index[normalized]; exists {
			return nil, errors.ParseError("duplicate column name after normalization: " + normalized)
		}
		ds.index[normalized] = len(ds.Columns)
		ds.Columns = append(ds.Columns, normalized)
	}

	ds.Rows = make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(ds.Columns))
		for i := range ds.Columns {
			if i < len(record) {
				row[i] = ParseCell(record[i])
			} else {
				row[i] = Cell{Kind: CellMissing}
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

// ColumnIndex resolves a column by its normalized name.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	idx, ok := d.index[NormalizeColumnName(name)]
	return idx, ok
}

// ColumnValues returns every cell of the named column in row order.
// Unknown columns return nil.
func (d *Dataset) ColumnValues(name string) []Cell {
	idx, ok := d.ColumnIndex(name)
	if !ok {
		return nil
	}
	values := make([]Cell, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values
}

// Cell returns the cell at (row, column name). ok is false when either
// the row or the column does not exist.
func (d *Dataset) Cell(rowIdx int, name string) (Cell, bool) {
	if rowIdx < 0 || rowIdx >= len(d.Rows) {
		return Cell{}, false
	}
	colIdx, ok := d.ColumnIndex(name)
	if !ok {
		return Cell{}, false
	}
	return d.Rows[rowIdx][colIdx], true
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// NumericColumns returns, in dataset order, every column whose non-missing
// values are all numeric and which holds at least one number. Mixed
// string/number columns are excluded, matching numeric-dtype selection.
func (d *Dataset) NumericColumns() []string {
	var numeric []string
	for i, name := range d.Columns {
		hasNumber := false
		allNumeric := true
		for _, row := range d.Rows {
			switch row[i].Kind {
			case CellNumber:
				hasNumber = true
			case CellString:
				allNumeric = false
			}
			if !allNumeric {
				break
			}
		}
		if hasNumber && allNumeric {
			numeric = append(numeric, name)
		}
	}
	return numeric
}

// NumericValues returns the numeric values of a column, skipping missing
// and non-numeric cells.
func (d *Dataset) NumericValues(name string) []float64 {
	cells := d.ColumnValues(name)
	values := make([]float64, 0, len(cells))
	for _, c := range cells {
		if v, ok := c.NumberValue(); ok {
			values = append(values, v)
		}
	}
	return values
}

// WriteCSV serializes the dataset with a header row, emitting the raw
// values as uploaded. Derived columns are never part of the dataset, so
// round-tripping an export reproduces the upload.
func (d *Dataset) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(d.Columns); err != nil {
		return errors.Wrap(err, "failed to write CSV header")
	}
	record := make([]string, len(d.Columns))
	for _, row := range d.Rows {
		for i, cell := range row {
			record[i] = cell.Raw
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "failed to write CSV row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush CSV")
}
