package manufacturer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-csv/internal/manufacturer"
	"catalog-csv/internal/models"
)

func TestDetectFromFilename(t *testing.T) {
	d := manufacturer.NewDetector([]string{"Texas Instruments"})

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"SimpleMatch", "samsung_catalog_2024.xlsx", "Samsung"},
		{"SeparatorMix", "pricelist-sony.(2024).csv", "Sony"},
		{"CaseInsensitive", "DELL-Q3.csv", "Dell"},
		{"WithDirectory", "/data/uploads/canon products.pdf", "Canon"},
		{"MultiWordSequence", "texas-instruments-components.txt", "Texas Instruments"},
		{"AdditionalName", "Texas Instruments 2024.csv", "Texas Instruments"},
		{"SubstringDoesNotMatch", "hplaser.csv", ""},
		{"NoMatch", "catalog_2024.csv", ""},
		{"Empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DetectFromFilename(tt.filename))
		})
	}
}

func TestDetectFromData(t *testing.T) {
	d := manufacturer.NewDetector(nil)

	rows := []models.Row{
		{models.FieldShortDescription: models.Text("Samsung 27in monitor")},
		{models.FieldShortDescription: models.Text("Samsung soundbar")},
		{models.FieldLongDescription: models.Text("Replacement stand for samsung displays")},
		{models.FieldManufacturer: models.Text("Sony")},
		{models.FieldShortDescription: models.Text("Generic HDMI cable")},
		// Numeric values are ignored.
		{models.FieldShortDescription: models.Number(42)},
	}

	candidates := d.DetectFromData(rows)
	assert.Len(t, candidates, 2)
	assert.Equal(t, manufacturer.Candidate{Name: "samsung", Count: 3}, candidates[0])
	assert.Equal(t, manufacturer.Candidate{Name: "sony", Count: 1}, candidates[1])
}

func TestDetectFromDataEmpty(t *testing.T) {
	d := manufacturer.NewDetector(nil)
	assert.Empty(t, d.DetectFromData(nil))
	assert.Empty(t, d.DetectFromData([]models.Row{
		{models.FieldSKU: models.Text("A1")},
	}))
}

func TestMostLikely(t *testing.T) {
	d := manufacturer.NewDetector(nil)

	rows := []models.Row{
		{models.FieldShortDescription: models.Text("nikon D850 body")},
		{models.FieldShortDescription: models.Text("nikon 50mm lens")},
	}

	t.Run("FilenameWins", func(t *testing.T) {
		assert.Equal(t, "Canon", d.MostLikely(rows, "canon_catalog.csv"))
	})
	t.Run("DataFallback", func(t *testing.T) {
		assert.Equal(t, "Nikon", d.MostLikely(rows, "catalog.csv"))
	})
	t.Run("NoSignal", func(t *testing.T) {
		assert.Equal(t, "", d.MostLikely(nil, "catalog.csv"))
	})
}
