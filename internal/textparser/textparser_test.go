package textparser_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-csv/internal/models"
	"catalog-csv/internal/textparser"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "Delimited",
			content: "SKU,Name,Price\nA1,Widget,10\nA2,Gadget,20\n",
			want:    textparser.FormatDelimited,
		},
		{
			name:    "Piped",
			content: "SKU|Name|Price\nA1|Widget|10\nA2|Gadget|20\n",
			want:    textparser.FormatDelimited,
		},
		{
			name: "KeyValue",
			content: "SKU: A1\nName: Widget\nPrice: 10\n\n" +
				"SKU: A2\nName: Gadget\nPrice: 20\n",
			want: textparser.FormatKeyValue,
		},
		{
			name: "FixedWidth",
			content: "SKU        Name           Price     \n" +
				"A1         Widget         10.00     \n" +
				"A2         Gadget         20.00     \n",
			want: textparser.FormatFixedWidth,
		},
		{
			name:    "Unstructured",
			content: "Our product range\nhas many great items\nfor every need\n",
			want:    textparser.FormatUnstructured,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, _, _ := textparser.DetectFormat(tt.content)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestParseContentDelimited(t *testing.T) {
	table, err := textparser.ParseContent([]byte("SKU;Name\nA1;Widget\nA2;Gadget\n"))
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, models.Text("Widget"), table[1][1])
}

func TestParseContentKeyValue(t *testing.T) {
	content := "SKU: A1\nName: Widget\nPrice: 10.00\n\nSKU: A2\nName: Gadget\nPrice: 20.00\n"

	table, err := textparser.ParseContent([]byte(content))
	require.NoError(t, err)
	require.Len(t, table, 3)

	// Headers are the sorted union of keys.
	assert.Equal(t, models.Text("Name"), table[0][0])
	assert.Equal(t, models.Text("Price"), table[0][1])
	assert.Equal(t, models.Text("SKU"), table[0][2])
	assert.Equal(t, models.Text("A1"), table[1][2])
	assert.Equal(t, models.Text("Gadget"), table[2][0])
}

func TestParseContentKeyValueMissingKeys(t *testing.T) {
	content := "SKU: A1\nName: Widget\n\nSKU: A2\n"

	table, err := textparser.ParseContent([]byte(content))
	require.NoError(t, err)
	require.Len(t, table, 3)
	// The record without a Name has an absent cell there.
	assert.True(t, table[2][0].IsAbsent())
}

func TestParseContentFixedWidth(t *testing.T) {
	content := "SKU        Name           Price     \n" +
		"A1         Widget         10.00     \n" +
		"A2         Gadget         20.00     \n"

	table, err := textparser.ParseContent([]byte(content))
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, models.Text("SKU"), table[0][0])
	assert.Equal(t, models.Text("Widget"), table[1][1])
	assert.Equal(t, models.Text("20.00"), table[2][2])
}

func TestParseContentUnstructuredBlocks(t *testing.T) {
	content := strings.Join([]string{
		"SKU: AB-100",
		"Name: Compact Widget",
		"Manufacturer: Sony",
		"RRP GBP: 19.99",
		"",
		"SKU: AB-200",
		"Name: Large Widget",
		"Trade Price: 45.00",
		"",
		"random trailing text",
	}, "\n")

	// Force unstructured: the colon density is diluted below the key-value
	// threshold by blank and free-text lines plus this filler.
	filler := strings.Repeat("plain line without separator\n", 20)

	table, err := textparser.ParseContent([]byte(filler + content))
	require.NoError(t, err)
	require.True(t, len(table) >= 3)

	headers := make([]string, 0, len(table[0]))
	for _, v := range table[0] {
		headers = append(headers, v.String())
	}
	assert.Contains(t, headers, models.FieldSKU)
	assert.Contains(t, headers, models.FieldShortDescription)
	assert.Contains(t, headers, models.FieldMSRPGBP)
	assert.Contains(t, headers, models.FieldTradePrice)
}

func TestParseContentUnstructuredSingleRecord(t *testing.T) {
	content := "Heavy Duty Shelving Unit\nSteel frame, 200kg load\ncapacity per shelf\n"

	table, err := textparser.ParseContent([]byte(content))
	require.NoError(t, err)
	require.Len(t, table, 2)

	headers := make([]string, 0, len(table[0]))
	for _, v := range table[0] {
		headers = append(headers, v.String())
	}
	assert.Contains(t, headers, models.FieldShortDescription)
}

func TestParseContentEmpty(t *testing.T) {
	_, err := textparser.ParseContent([]byte("   \n  \n"))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")
	require.NoError(t, os.WriteFile(path, []byte("SKU,Name\nA1,Widget\n"), 0600))

	table, err := textparser.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestParseFileMissing(t *testing.T) {
	_, err := textparser.ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
