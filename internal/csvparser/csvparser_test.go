package csvparser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-csv/internal/csvparser"
	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
)

func TestParseBytesComma(t *testing.T) {
	data := []byte("SKU,Product Name,Price\nA1,Widget,10.00\nA2,Gadget,20.50\n")

	table, err := csvparser.ParseBytes(data)
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, models.Text("SKU"), table[0][0])
	assert.Equal(t, models.Text("Widget"), table[1][1])
	assert.Equal(t, models.Text("20.50"), table[2][2])
}

func TestParseBytesSemicolon(t *testing.T) {
	data := []byte("SKU;Product Name;Price\nA1;Widget;10,00\n")

	table, err := csvparser.ParseBytes(data)
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, models.Text("10,00"), table[1][2])
}

func TestParseBytesRaggedRows(t *testing.T) {
	data := []byte("SKU,Name,Price\nA1,Widget\nA2,Gadget,20.00,extra\n")

	table, err := csvparser.ParseBytes(data)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Len(t, table[1], 2)
	assert.Len(t, table[2], 4)
}

func TestParseBytesBOM(t *testing.T) {
	data := append([]byte{0xef, 0xbb, 0xbf}, []byte("SKU,Name\nA1,Widget\n")...)

	table, err := csvparser.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, models.Text("SKU"), table[0][0])
}

func TestParseBytesLatin1(t *testing.T) {
	// "Café" with a Latin-1 encoded é (0xe9).
	data := []byte("SKU,Name\nA1,Caf\xe9\n")

	table, err := csvparser.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, models.Text("Café"), table[1][1])
}

func TestParseBytesEmptyCellsAreAbsent(t *testing.T) {
	data := []byte("SKU,Name,Price\nA1,,10.00\n")

	table, err := csvparser.ParseBytes(data)
	require.NoError(t, err)
	assert.True(t, table[1][1].IsAbsent())
}

func TestParseBytesEmpty(t *testing.T) {
	_, err := csvparser.ParseBytes(nil)
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("SKU,Name\nA1,Widget\n"), 0600))

	table, err := csvparser.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestParseFileMissing(t *testing.T) {
	_, err := csvparser.ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	var pe *parsererror.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "csv", pe.Parser)
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name   string
		sample string
		want   rune
	}{
		{"Comma", "a,b,c\nd,e,f\n", ','},
		{"Semicolon", "a;b;c\nd;e;f\n", ';'},
		{"Pipe", "a|b|c\nd|e|f\n", '|'},
		{"Tab", "a\tb\tc\nd\te\tf\n", '\t'},
		{"TabWinsOverFewCommas", "a, x\tb\tc\nd\te, y\tf\n", '\t'},
		{"CommaWinsWhenDominant", "a,b,c,d,e\nf,g,h,i,j\tk\n", ','},
		{"DefaultComma", "plain text without separators", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, csvparser.DetectDelimiter(tt.sample))
		})
	}
}

func TestParseBytesQuotedFields(t *testing.T) {
	data := []byte(`SKU,Name
A1,"Widget, large"
`)
	table, err := csvparser.ParseBytes(data)
	require.NoError(t, err)
	assert.Equal(t, models.Text("Widget, large"), table[1][1])
}

func TestParseBytesLargeSampleOnlyAffectsDetection(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("SKU,Name\n")
	for i := 0; i < 500; i++ {
		sb.WriteString("A1,Widget\n")
	}
	table, err := csvparser.ParseBytes([]byte(sb.String()))
	require.NoError(t, err)
	assert.Len(t, table, 501)
}
