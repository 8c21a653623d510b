// Package csvparser reads catalog CSV files into a raw value table. It
// detects the character encoding and the delimiter, so exports from
// spreadsheets and ERP systems parse without per-file configuration.
package csvparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"catalog-csv/internal/fileutils"
	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

const (
	sampleSize = 4096

	// minConfidence is the chardet confidence below which we fall back to
	// Latin-1, which decodes any byte sequence.
	minConfidence = 70
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// candidateDelimiters in the order the counts are compared.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// ParseFile reads a CSV file into a value table.
func ParseFile(filePath string) (models.Table, error) {
	log.WithField("file_path", filePath).Info("Reading CSV file")

	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "csv", FilePath: filePath, Err: err}
	}

	table, err := ParseBytes(data)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "csv", FilePath: filePath, Err: err}
	}

	log.WithFields(logrus.Fields{
		"file_path": filePath,
		"row_count": len(table),
	}).Info("Successfully read CSV file")
	return table, nil
}

// ParseBytes parses raw CSV bytes into a value table.
func ParseBytes(data []byte) (models.Table, error) {
	text, encodingName := DecodeText(data)
	log.WithField("encoding", encodingName).Debug("Decoded CSV content")

	delimiter := DetectDelimiter(sample(text))
	log.WithField("delimiter", string(delimiter)).Debug("Detected delimiter")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var table models.Table
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		table = append(table, models.TextRow(record))
	}

	if len(table) == 0 {
		return nil, errors.New("CSV file is empty")
	}
	return table, nil
}

// DetectEncoding names the character encoding of raw CSV bytes. Low
// detection confidence falls back to Latin-1.
func DetectEncoding(data []byte) string {
	head := data
	if len(head) > sampleSize {
		head = head[:sampleSize]
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil || result.Confidence < minConfidence || result.Charset == "" {
		if err != nil {
			log.WithError(err).Warning("Error detecting encoding, using fallback")
		} else {
			log.WithField("confidence", result.Confidence).Warning("Low confidence encoding detection, using fallback")
		}
		return "ISO-8859-1"
	}
	return result.Charset
}

// DecodeText converts raw bytes to a UTF-8 string, returning the encoding
// used. The text parser shares this for plain-text catalogs.
func DecodeText(data []byte) (string, string) {
	encodingName := DetectEncoding(data)

	switch strings.ToUpper(encodingName) {
	case "UTF-8", "ASCII", "US-ASCII":
		return string(bytes.TrimPrefix(data, utf8BOM)), encodingName
	case "UTF-16LE":
		if decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data); err == nil {
			return string(decoded), encodingName
		}
	case "UTF-16BE":
		if decoded, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(data); err == nil {
			return string(decoded), encodingName
		}
	default:
		if utf8.Valid(data) {
			return string(bytes.TrimPrefix(data, utf8BOM)), "UTF-8"
		}
	}

	// Latin-1 decodes every byte, so this cannot fail.
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(decoded), "ISO-8859-1"
}

// DetectDelimiter picks the most frequent candidate delimiter in the sample.
// Tabs win over commas when the comma count is less than twice the tab
// count, since tab-separated exports often contain commas in free text.
func DetectDelimiter(sample string) rune {
	counts := make(map[rune]int, len(candidateDelimiters))
	for _, d := range candidateDelimiters {
		counts[d] = strings.Count(sample, string(d))
	}

	detected := ','
	maxCount := 0
	for _, d := range candidateDelimiters {
		if counts[d] > maxCount {
			maxCount = counts[d]
			detected = d
		}
	}

	if counts['\t'] > 0 && float64(counts[','])/float64(counts['\t']) < 2 {
		detected = '\t'
	}
	return detected
}

func sample(text string) string {
	if len(text) > sampleSize {
		return text[:sampleSize]
	}
	return text
}
