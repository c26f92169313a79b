package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillboard/internal/errors"
)

func TestParse_NormalizesColumnNames(t *testing.T) {
	ds, err := Parse(strings.NewReader("  Pre Test Score , Post\tScore \nalpha,beta\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"PreTestScore", "PostScore"}, ds.Columns)
}

func TestParse_DuplicateColumnAfterNormalizationFails(t *testing.T) {
	_, err := Parse(strings.NewReader("Pre Score,PreScore\n1,2\n"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
}

func TestParse_MalformedCSVFails(t *testing.T) {
	_, err := Parse(strings.NewReader("a,\"b\n1"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
}

func TestParseCell_Coercion(t *testing.T) {
	tests := []struct {
		raw  string
		kind CellKind
	}{
		{"", CellMissing},
		{"   ", CellMissing},
		{"42", CellNumber},
		{" 3.5 ", CellNumber},
		{"-12.25", CellNumber},
		{"alice@x.com", CellString},
		{"N/A", CellString},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, ParseCell(tt.raw).Kind, "raw=%q", tt.raw)
	}
}

func TestParse_ShortRowsPadWithMissing(t *testing.T) {
	ds, err := Parse(strings.NewReader("A,B,C\n1,2\n"))
	require.NoError(t, err)

	cell, ok := ds.Cell(0, "C")
	require.True(t, ok)
	assert.True(t, cell.IsMissing())
}

func TestNumericColumns_ExcludesMixedAndText(t *testing.T) {
	ds, err := Parse(strings.NewReader(
		"Name,PreScore,PostScore,Notes,Mixed\n" +
			"Alice,40,95,good,1\n" +
			"Bob,50,,late,oops\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"PreScore", "PostScore"}, ds.NumericColumns())
}

func TestColumnValues_UnknownColumnIsNil(t *testing.T) {
	ds, err := Parse(strings.NewReader("A\n1\n"))
	require.NoError(t, err)
	assert.Nil(t, ds.ColumnValues("B"))
}

func TestColumnValues_FuzzyNameLookup(t *testing.T) {
	ds, err := Parse(strings.NewReader("Pre Score\n10\n"))
	require.NoError(t, err)

	values := ds.ColumnValues("Pre Score")
	require.Len(t, values, 1)
	v, ok := values[0].NumberValue()
	require.True(t, ok)
	assert.Equal(t, 10.0, v)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	input := "Name,Email,PreTestScore,PostTestScore\n" +
		"Alice,alice@x.com,40,95\n" +
		"Bob,bob@x.com,,60\n"
	ds, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))

	reparsed, err := Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, ds.Columns, reparsed.Columns)
	require.Equal(t, ds.RowCount(), reparsed.RowCount())
	for i := range ds.Rows {
		assert.Equal(t, ds.Rows[i], reparsed.Rows[i], "row %d", i)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	ds, err := Parse(strings.NewReader("Name,PreScore,PostScore\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, ds.RowCount())
	assert.Equal(t, 3, ds.ColumnCount())
	assert.Empty(t, ds.NumericColumns())
}

func TestSummarize(t *testing.T) {
	ds, err := Parse(strings.NewReader(
		"Name,Email,Score\n" +
			"Alice,alice@x.com,40\n" +
			"Bob,bob@x.com,\n" +
			"Alice,alice@x.com,50\n"))
	require.NoError(t, err)

	s := ds.Summarize()
	assert.Equal(t, 3, s.Records)
	assert.Equal(t, 3, s.Columns)
	assert.InDelta(t, 100.0/9.0, s.MissingPercent, 1e-9)

	require.Len(t, s.ColumnInfos, 3)
	assert.Equal(t, "text", s.ColumnInfos[0].Type)
	assert.Equal(t, 2, s.ColumnInfos[0].Unique)
	assert.Equal(t, "numeric", s.ColumnInfos[2].Type)
	assert.Equal(t, 1, s.ColumnInfos[2].Missing)
}
