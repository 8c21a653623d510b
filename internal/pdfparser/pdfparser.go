// Package pdfparser extracts catalog data from PDF price lists. The PDF is
// reduced to plain text and the text parser's structure inference takes it
// from there.
package pdfparser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
	"catalog-csv/internal/textparser"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var defaultExtractor Extractor = NewRealExtractor()

// ParseFile extracts text from a PDF and parses it into a value table using
// the default extractor.
func ParseFile(filePath string) (models.Table, error) {
	return ParseFileWithExtractor(filePath, defaultExtractor)
}

// ParseFileWithExtractor is ParseFile with an injectable extractor.
func ParseFileWithExtractor(filePath string, extractor Extractor) (models.Table, error) {
	log.WithField("file_path", filePath).Info("Reading PDF file")

	text, err := extractor.ExtractText(filePath)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "pdf", FilePath: filePath, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &parsererror.ExtractionError{
			FilePath: filePath,
			Field:    "text",
			Reason:   "no text could be extracted; the PDF may be scanned images",
		}
	}

	table, err := textparser.ParseContent([]byte(text))
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "pdf", FilePath: filePath, Err: err}
	}

	log.WithFields(logrus.Fields{
		"file_path": filePath,
		"row_count": len(table),
	}).Info("Successfully parsed PDF file")
	return table, nil
}
