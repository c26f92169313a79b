// Package excel bridges spreadsheet files and the tabular store: XLSX
// uploads are read through excelize into a dataset, and the teacher
// summary can be exported back out as a styled workbook.
package excel

import (
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"skillboard/domain/tabular"
	"skillboard/internal/errors"
)

// ReadWorkbook parses the first sheet of an XLSX stream into a dataset.
// The first row is the header; trailing short rows are padded with
// missing cells, same as the CSV path.
func ReadWorkbook(r io.Reader) (*tabular.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ParseError("malformed workbook"), err.Error())
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Printf("[ReadWorkbook] failed to close workbook: %v", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ParseError("failed to read sheet"), err.Error())
	}
	if len(rows) == 0 {
		return nil, errors.ParseError("empty sheet: header row required")
	}

	log.Printf("[ReadWorkbook] sheet %q: %d rows (including header)", sheets[0], len(rows))
	return tabular.FromRecords(rows[0], rows[1:])
}
