package pdfparser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
	"catalog-csv/internal/pdfparser"
)

func TestParseFileWithExtractorDelimited(t *testing.T) {
	extractor := pdfparser.NewMockExtractor(
		"SKU,Name,Price\nA1,Widget,10.00\nA2,Gadget,20.00\n", nil)

	table, err := pdfparser.ParseFileWithExtractor("price-list.pdf", extractor)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, models.Text("Widget"), table[1][1])
}

func TestParseFileWithExtractorKeyValue(t *testing.T) {
	extractor := pdfparser.NewMockExtractor(
		"SKU: A1\nName: Widget\n\nSKU: A2\nName: Gadget\n", nil)

	table, err := pdfparser.ParseFileWithExtractor("catalog.pdf", extractor)
	require.NoError(t, err)
	require.Len(t, table, 3)
}

func TestParseFileWithExtractorEmptyText(t *testing.T) {
	extractor := pdfparser.NewMockExtractor("   \n \n", nil)

	_, err := pdfparser.ParseFileWithExtractor("scanned.pdf", extractor)
	require.Error(t, err)
	var ee *parsererror.ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "scanned.pdf", ee.FilePath)
	assert.Equal(t, "text", ee.Field)
	assert.Contains(t, ee.Error(), "scanned")
}

func TestParseFileWithExtractorError(t *testing.T) {
	extractor := pdfparser.NewMockExtractor("", errors.New("corrupt xref table"))

	_, err := pdfparser.ParseFileWithExtractor("broken.pdf", extractor)
	require.Error(t, err)
	var pe *parsererror.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "pdf", pe.Parser)
	assert.Contains(t, pe.Error(), "corrupt xref table")
}

func TestRealExtractorMissingFile(t *testing.T) {
	extractor := pdfparser.NewRealExtractor()
	_, err := extractor.ExtractText("/nonexistent/file.pdf")
	assert.Error(t, err)
}
