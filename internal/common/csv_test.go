package common_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-csv/internal/common"
	"catalog-csv/internal/models"
)

func sampleRecords() []models.CatalogRecord {
	return []models.CatalogRecord{
		{
			SKU:              "A1",
			ShortDescription: "Widget",
			Manufacturer:     "Acme",
			BuyCost:          models.NewPrice(9.5),
			MSRPGBP:          models.NewPrice(19.99),
		},
		{
			SKU:              "B2",
			ShortDescription: "Bolt",
			Discontinued:     true,
		},
	}
}

func restoreOutputSettings(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		common.SetDelimiter(',')
		common.SetWriteBOM(true)
	})
}

func TestWriteRecordsToCSVRoundTrip(t *testing.T) {
	restoreOutputSettings(t)
	common.SetWriteBOM(false)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, common.WriteRecordsToCSV(sampleRecords(), path))

	records, err := common.ReadCSVFile[models.CatalogRecord](path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "A1", records[0].SKU)
	assert.Equal(t, "9.50", records[0].BuyCost.String())
	assert.Equal(t, "19.99", records[0].MSRPGBP.String())
	assert.False(t, records[0].TradePrice.Valid)
	assert.True(t, records[1].Discontinued)
}

func TestWriteRecordsToCSVBOM(t *testing.T) {
	restoreOutputSettings(t)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, common.WriteRecordsToCSV(sampleRecords(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Contains(t, string(data), "SKU")
}

func TestWriteRecordsToCSVDelimiter(t *testing.T) {
	restoreOutputSettings(t)
	common.SetWriteBOM(false)
	common.SetDelimiter(';')

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, common.WriteRecordsToCSV(sampleRecords(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.Contains(t, header, "SKU;Short Description")
}

func TestWriteRecordsToCSVCreatesDirectories(t *testing.T) {
	restoreOutputSettings(t)

	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.csv")
	require.NoError(t, common.WriteRecordsToCSV(sampleRecords(), path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteRecordsToCSVNil(t *testing.T) {
	err := common.WriteRecordsToCSV(nil, filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}

func TestWriteRecordsToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, common.WriteRecordsToJSON(sampleRecords(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "A1", decoded[0]["SKU"])
	assert.Equal(t, 19.99, decoded[0]["MSRP GBP"])
	assert.Nil(t, decoded[0]["MSRP EUR"])
	assert.Equal(t, true, decoded[1]["Discontinued"])
}

func TestWriteRecordsToJSONNil(t *testing.T) {
	err := common.WriteRecordsToJSON(nil, filepath.Join(t.TempDir(), "out.json"))
	assert.Error(t, err)
}
