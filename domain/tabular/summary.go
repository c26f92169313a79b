package tabular

// ColumnInfo describes one column for the admin inventory table.
type ColumnInfo struct {
	Name    string
	Type    string
	Missing int
	Unique  int
}

// Summary aggregates dataset-level statistics for the admin view.
type Summary struct {
	Records        int
	Columns        int
	MissingPercent float64
	ColumnInfos    []ColumnInfo
}

// UniqueCount returns the number of distinct non-missing raw values in
// the named column.
func (d *Dataset) UniqueCount(name string) int {
	idx, ok := d.ColumnIndex(name)
	if !ok {
		return 0
	}
	seen := make(map[string]struct{})
	for _, row := range d.Rows {
		cell := row[idx]
		if cell.IsMissing() {
			continue
		}
		seen[cell.Raw] = struct{}{}
	}
	return len(seen)
}

// columnType labels a column for the inventory: "numeric" when every
// non-missing value is a number, otherwise "text", or "empty".
func (d *Dataset) columnType(idx int) string {
	hasNumber := false
	hasString := false
	for _, row := range d.Rows {
		switch row[idx].Kind {
		case CellNumber:
			hasNumber = true
		case CellString:
			hasString = true
		}
	}
	switch {
	case hasString:
		return "text"
	case hasNumber:
		return "numeric"
	default:
		return "empty"
	}
}

// Summarize computes the dataset statistics shown on the admin dashboard.
func (d *Dataset) Summarize() Summary {
	s := Summary{
		Records:     len(d.Rows),
		Columns:     len(d.Columns),
		ColumnInfos: make([]ColumnInfo, 0, len(d.Columns)),
	}

	totalCells := len(d.Rows) * len(d.Columns)
	missingCells := 0
	for i, name := range d.Columns {
		missing := 0
		for _, row := range d.Rows {
			if row[i].IsMissing() {
				missing++
			}
		}
		missingCells += missing
		s.ColumnInfos = append(s.ColumnInfos, ColumnInfo{
			Name:    name,
			Type:    d.columnType(i),
			Missing: missing,
			Unique:  d.UniqueCount(name),
		})
	}
	if totalCells > 0 {
		s.MissingPercent = float64(missingCells) / float64(totalCells) * 100
	}
	return s
}
