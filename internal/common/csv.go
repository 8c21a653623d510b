// Package common provides the shared output writers the converters and
// the server use to emit standardized catalog records.
package common

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"catalog-csv/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// utf8BOM is prepended to CSV output when BOM writing is enabled, so
// spreadsheet applications pick up the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Delimiter is the CSV output delimiter. Configured at startup from the
// application config.
var Delimiter rune = ','

// WriteBOM controls whether CSV output starts with a UTF-8 byte order
// mark.
var WriteBOM = true

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetWriteBOM controls BOM emission in CSV output.
func SetWriteBOM(enabled bool) {
	WriteBOM = enabled
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string) ([]TCSVRow, error) {
	log.WithField("file", filePath).Info("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteRecordsToCSV writes catalog records to a CSV file in the
// standardized column order. Every converter uses this function so the
// output format stays consistent.
func WriteRecordsToCSV(records []models.CatalogRecord, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(records),
	}).Info("Writing catalog records to CSV file")

	file, err := createOutputFile(csvFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if WriteBOM {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("error writing BOM: %w", err)
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(&records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(records),
	}).Info("Successfully wrote catalog records to CSV file")

	return nil
}

// WriteRecordsToJSON writes catalog records as a JSON array. Unset
// prices render as null.
func WriteRecordsToJSON(records []models.CatalogRecord, jsonFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to JSON")
	}

	log.WithFields(logrus.Fields{
		"file":  jsonFile,
		"count": len(records),
	}).Info("Writing catalog records to JSON file")

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling records to JSON: %w", err)
	}
	data = append(data, '\n')

	file, err := createOutputFile(jsonFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("error writing JSON data: %w", err)
	}
	return nil
}

// createOutputFile creates the output file, making parent directories
// as needed.
func createOutputFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, models.PermissionOutputFile)
	if err != nil {
		log.WithError(err).Error("Failed to create output file")
		return nil, fmt.Errorf("error creating output file: %w", err)
	}
	return file, nil
}
