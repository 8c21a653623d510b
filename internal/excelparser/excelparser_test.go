package excelparser_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catalog-csv/internal/excelparser"
	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
)

// writeWorkbook builds a temporary workbook with the given sheets. Sheet
// order follows the map-free slice to stay deterministic.
func writeWorkbook(t *testing.T, sheets []string, rows map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range rows[sheet] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestParseFile(t *testing.T) {
	path := writeWorkbook(t, []string{"Products"}, map[string][][]interface{}{
		"Products": {
			{"SKU", "Product Name", "Price"},
			{"A1", "Widget", "10.50"},
			{"A2", "Gadget", "20.00"},
		},
	})

	table, err := excelparser.ParseFile(path, excelparser.Options{})
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, models.Text("SKU"), table[0][0])
	assert.Equal(t, models.Text("Widget"), table[1][1])
}

func TestParseFileSheetByName(t *testing.T) {
	path := writeWorkbook(t, []string{"Summary", "Data"}, map[string][][]interface{}{
		"Summary": {{"nothing here"}},
		"Data":    {{"SKU", "Name"}, {"A1", "Widget"}},
	})

	table, err := excelparser.ParseFile(path, excelparser.Options{SheetName: "Data"})
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, models.Text("SKU"), table[0][0])
}

func TestParseFileSheetByIndex(t *testing.T) {
	path := writeWorkbook(t, []string{"First", "Second"}, map[string][][]interface{}{
		"First":  {{"a"}},
		"Second": {{"b"}},
	})

	table, err := excelparser.ParseFile(path, excelparser.Options{SheetIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, models.Text("b"), table[0][0])
}

func TestParseFileSheetIndexOutOfBounds(t *testing.T) {
	path := writeWorkbook(t, []string{"Only"}, map[string][][]interface{}{
		"Only": {{"a"}},
	})

	table, err := excelparser.ParseFile(path, excelparser.Options{SheetIndex: 5})
	require.NoError(t, err)
	assert.Equal(t, models.Text("a"), table[0][0])
}

func TestParseFileUnknownSheetNameFallsBack(t *testing.T) {
	path := writeWorkbook(t, []string{"Only"}, map[string][][]interface{}{
		"Only": {{"a"}},
	})

	table, err := excelparser.ParseFile(path, excelparser.Options{SheetName: "Missing"})
	require.NoError(t, err)
	assert.Equal(t, models.Text("a"), table[0][0])
}

func TestParseFileMissing(t *testing.T) {
	_, err := excelparser.ParseFile(filepath.Join(t.TempDir(), "missing.xlsx"), excelparser.Options{})
	require.Error(t, err)
	var pe *parsererror.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "excel", pe.Parser)
}

func TestSheetNames(t *testing.T) {
	path := writeWorkbook(t, []string{"One", "Two"}, map[string][][]interface{}{
		"One": {{"a"}},
		"Two": {{"b"}},
	})

	names, err := excelparser.SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, names)
}
