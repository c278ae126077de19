package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportRow struct {
	Name  string
	Count int
}

func testResource() Resource[exportRow] {
	return Resource[exportRow]{
		Sheet:    "Rows",
		Filename: "rows.xlsx",
		Columns: []Column[exportRow]{
			{Header: "Name", Value: func(r exportRow) interface{} { return r.Name }},
			{Header: "Count", Value: func(r exportRow) interface{} { return r.Count }},
		},
	}
}

func TestResource_Build(t *testing.T) {
	rows := []exportRow{
		{Name: "first", Count: 1},
		{Name: "second", Count: 2},
	}

	f, err := testResource().Build(rows)
	require.NoError(t, err)

	// Header row
	name, err := f.GetCellValue("Rows", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", name)

	count, err := f.GetCellValue("Rows", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Count", count)

	// Data rows in input order
	v, err := f.GetCellValue("Rows", "A2")
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	v, err = f.GetCellValue("Rows", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestResource_Build_Empty(t *testing.T) {
	f, err := testResource().Build(nil)
	require.NoError(t, err)

	// Header only, no data rows
	name, err := f.GetCellValue("Rows", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", name)

	v, err := f.GetCellValue("Rows", "A2")
	require.NoError(t, err)
	assert.Empty(t, v)

	rowsInSheet, err := f.GetRows("Rows")
	require.NoError(t, err)
	assert.Len(t, rowsInSheet, 1)
}
