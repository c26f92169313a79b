package excel

import (
	"io"

	"github.com/xuri/excelize/v2"

	"skillboard/domain/columns"
	"skillboard/domain/metrics"
	"skillboard/domain/tabular"
	"skillboard/internal/errors"
)

const summarySheet = "Improvement Summary"

// WriteSummaryWorkbook streams the teacher summary (name, email, pre,
// post, improvement) as an XLSX workbook with a bold header row. Rows
// missing a score get an empty improvement cell.
func WriteSummaryWorkbook(w io.Writer, ds *tabular.Dataset, rm columns.RoleMap) error {
	improvements, ok := metrics.Improvements(ds, rm)
	if !ok {
		return errors.MissingRole("pre_score/post_score")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return errors.Wrap(err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "failed to drop default sheet")
	}

	nameCol, _ := rm.Column(columns.RoleName)
	emailCol, _ := rm.Column(columns.RoleEmail)
	preCol, _ := rm.Column(columns.RolePreScore)
	postCol, _ := rm.Column(columns.RolePostScore)

	header := []interface{}{"Name", "Email", "Pre-Test Score", "Post-Test Score", "Improvement"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(summarySheet, 1, 1, headerStyle)
	}

	rawOrEmpty := func(rowIdx int, column string) interface{} {
		if column == "" {
			return ""
		}
		if cell, ok := ds.Cell(rowIdx, column); ok {
			return cell.Raw
		}
		return ""
	}

	for i, imp := range improvements {
		row := []interface{}{
			rawOrEmpty(i, nameCol),
			rawOrEmpty(i, emailCol),
			rawOrEmpty(i, preCol),
			rawOrEmpty(i, postCol),
			"",
		}
		if imp.Valid {
			row[4] = imp.Value
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell reference")
		}
		if err := f.SetSheetRow(summarySheet, cellRef, &row); err != nil {
			return errors.Wrap(err, "failed to write summary row")
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to serialize workbook")
	}
	return nil
}
