// Package transform turns the raw cell grids the format parsers produce
// into standardized catalog rows: it locates the header row, maps source
// columns onto the target schema, cleans cell values, pulls labeled
// prices out of descriptions, backfills the manufacturer and validates
// the price fields.
package transform

import (
	"strings"

	"github.com/sirupsen/logrus"

	"catalog-csv/internal/columnmapper"
	"catalog-csv/internal/manufacturer"
	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
	"catalog-csv/internal/priceutils"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// defaultMaxHeaderRows bounds the header search when no limit is
// configured.
const defaultMaxHeaderRows = 10

// Transformer runs the table-to-rows pipeline.
type Transformer struct {
	maxHeaderRows int
	mapper        *columnmapper.Mapper
	detector      *manufacturer.Detector
}

// New creates a Transformer. The detector may be nil, in which case
// manufacturer backfill is skipped.
func New(maxHeaderRows int, mapper *columnmapper.Mapper, detector *manufacturer.Detector) *Transformer {
	if maxHeaderRows < 1 {
		maxHeaderRows = defaultMaxHeaderRows
	}
	return &Transformer{
		maxHeaderRows: maxHeaderRows,
		mapper:        mapper,
		detector:      detector,
	}
}

// Result is the outcome of transforming one table.
type Result struct {
	// Headers are the source headers, detected or synthesized.
	Headers []string
	// Mapping is keyed by target field name and holds the source header
	// each field was read from.
	Mapping map[string]string
	// Rows are the standardized rows, keyed by target field name.
	Rows []models.Row
}

// Records converts the transformed rows into output records.
func (r *Result) Records() []models.CatalogRecord {
	records := make([]models.CatalogRecord, len(r.Rows))
	for i, row := range r.Rows {
		records[i] = models.RecordFromRow(row)
	}
	return records
}

// Transform runs the pipeline over a parsed table. sourceName is the
// original file name; it seeds manufacturer backfill and error context.
func (t *Transformer) Transform(table models.Table, sourceName string) (*Result, error) {
	if len(table) == 0 {
		return nil, &parsererror.HeaderDetectionError{FilePath: sourceName, RowsScanned: 0}
	}

	dataStart := 0
	var headers []string
	if HasHeaders(table) {
		headerIdx := DetectHeaderRow(table, t.maxHeaderRows)
		headers = HeadersFromRow(table[headerIdx])
		dataStart = headerIdx + 1
		if headerIdx > 0 {
			log.WithField("row", headerIdx).Info("Header row found below the top of the file")
		}
	} else {
		headers = syntheticHeaders(tableWidth(table))
		log.Info("No header row detected, using synthetic column names")
	}

	mapping := t.mapper.MapColumns(headers)
	if len(mapping) == 0 {
		return nil, &parsererror.MappingError{
			FilePath: sourceName,
			Missing:  append([]string(nil), models.RequiredFields...),
		}
	}

	headerIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := headerIndex[h]; !ok {
			headerIndex[h] = i
		}
	}

	var rows []models.Row
	for i := dataStart; i < len(table); i++ {
		raw := table[i]
		if rowEmpty(raw) {
			continue
		}

		row := make(models.Row, len(mapping))
		for field, header := range mapping {
			idx, ok := headerIndex[header]
			if !ok || idx >= len(raw) {
				continue
			}
			if v := CleanValue(field, raw[idx]); !v.IsAbsent() {
				row[field] = v
			}
		}

		extractDescriptionPrices(row)
		rows = append(rows, row)
	}

	t.backfillManufacturer(rows, sourceName)

	for _, row := range rows {
		priceutils.ValidatePriceFields(row)
	}

	log.WithFields(logrus.Fields{
		"source": sourceName,
		"rows":   len(rows),
		"mapped": len(mapping),
	}).Info("Table transformed")

	return &Result{Headers: headers, Mapping: mapping, Rows: rows}, nil
}

// CleanValue normalizes one mapped cell for its target field. Price
// cells become numbers or go absent, text cells get trimmed, numeric
// cells landing in text fields are rendered as strings. Discontinued
// passes through untouched; it is coerced to a bool at record build
// time.
func CleanValue(field string, v models.Value) models.Value {
	if v.IsAbsent() {
		return models.Absent
	}

	if isPriceField(field) {
		if f, ok := priceutils.NormalizePrice(v); ok {
			return models.Number(f)
		}
		return models.Absent
	}

	if field == models.FieldDiscontinued {
		return v
	}

	if s, ok := v.Str(); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return models.Absent
		}
		return models.Text(s)
	}
	return models.Text(v.String())
}

// extractDescriptionPrices fills unset price fields from labeled prices
// found inside the descriptions. The long description is scanned first
// so its values win on conflict. A price without a currency label lands
// in the generic MSRP slot; ValidatePriceFields resolves it later.
func extractDescriptionPrices(row models.Row) {
	for _, field := range []string{models.FieldLongDescription, models.FieldShortDescription} {
		text, ok := row.Get(field).Str()
		if !ok {
			continue
		}
		for priceField, value := range priceutils.ExtractPricesFromDescription(text) {
			if row.Get(priceField).IsAbsent() {
				row[priceField] = models.Number(value)
			}
		}
	}
}

// backfillManufacturer fills the Manufacturer field on every row when no
// row in the table carries one.
func (t *Transformer) backfillManufacturer(rows []models.Row, sourceName string) {
	if t.detector == nil || len(rows) == 0 {
		return
	}
	for _, row := range rows {
		if !row.Get(models.FieldManufacturer).IsEmpty() {
			return
		}
	}

	name := t.detector.MostLikely(rows, sourceName)
	if name == "" {
		return
	}
	log.WithField("manufacturer", name).Info("Backfilled manufacturer from file context")
	for _, row := range rows {
		row[models.FieldManufacturer] = models.Text(name)
	}
}

func isPriceField(field string) bool {
	for _, f := range models.PriceFields {
		if f == field {
			return true
		}
	}
	return false
}

func rowEmpty(row []models.Value) bool {
	for _, v := range row {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

func tableWidth(table models.Table) int {
	width := 0
	for _, row := range table {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
