package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"skillboard/domain/columns"
	"skillboard/domain/tabular"
	"skillboard/internal/errors"
)

func workbookBytes(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadWorkbook(t *testing.T) {
	buf := workbookBytes(t, [][]interface{}{
		{"Name", "Email", "Pre Test Score", "Post Test Score"},
		{"Alice", "alice@x.com", 40, 95},
		{"Bob", "bob@x.com", 60, nil},
	})

	ds, err := ReadWorkbook(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Email", "PreTestScore", "PostTestScore"}, ds.Columns)
	require.Equal(t, 2, ds.RowCount())

	cell, ok := ds.Cell(0, "PreTestScore")
	require.True(t, ok)
	v, isNum := cell.NumberValue()
	require.True(t, isNum)
	assert.Equal(t, 40.0, v)

	cell, ok = ds.Cell(1, "PostTestScore")
	require.True(t, ok)
	assert.True(t, cell.IsMissing())
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	_, err := ReadWorkbook(strings.NewReader("plain text"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
}

func TestWriteSummaryWorkbook(t *testing.T) {
	ds, err := tabular.Parse(strings.NewReader(
		"Name,Email,PreTestScore,PostTestScore\n" +
			"Alice,alice@x.com,40,95\n" +
			"Bob,bob@x.com,,70\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryWorkbook(&buf, ds, columns.Resolve(ds)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Improvement Summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Email", "Pre-Test Score", "Post-Test Score", "Improvement"}, rows[0])
	assert.Equal(t, "Alice", rows[1][0])
	assert.Equal(t, "55", rows[1][4])
	// Bob's pre score is missing: empty improvement cell.
	assert.Equal(t, "Bob", rows[2][0])
	assert.LessOrEqual(t, len(rows[2]), 5)
	if len(rows[2]) == 5 {
		assert.Equal(t, "", rows[2][4])
	}
}

func TestWriteSummaryWorkbook_RequiresScoreRoles(t *testing.T) {
	ds, err := tabular.Parse(strings.NewReader("Name,Email\nAlice,alice@x.com\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteSummaryWorkbook(&buf, ds, columns.Resolve(ds))
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingRole, errors.GetCode(err))
}
