// Package textparser reads plain-text catalogs into a raw value table. The
// structure is inferred from the content: delimited lines, fixed-width
// columns, key-value records or free-form product blocks.
package textparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"catalog-csv/internal/csvparser"
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

// Inferred content formats.
const (
	FormatDelimited    = "delimited"
	FormatFixedWidth   = "fixed-width"
	FormatKeyValue     = "key-value"
	FormatUnstructured = "unstructured"
)

const formatSampleLines = 50

var keyValueLine = regexp.MustCompile(`^\s*[\w\s]+[:|=]`)

// ParseFile reads a text file into a value table. The first row of the
// result holds the headers the parser derived for the content.
func ParseFile(filePath string) (models.Table, error) {
	log.WithField("file_path", filePath).Info("Reading text file")

	data, err := fileutils.ReadFile(filePath)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "text", FilePath: filePath, Err: err}
	}

	table, err := ParseContent(data)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "text", FilePath: filePath, Err: err}
	}

	log.WithFields(logrus.Fields{
		"file_path": filePath,
		"row_count": len(table),
	}).Info("Successfully parsed text file")
	return table, nil
}

// ParseContent parses raw text bytes into a value table.
func ParseContent(data []byte) (models.Table, error) {
	content, encodingName := csvparser.DecodeText(data)
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("text file is empty")
	}
	log.WithField("encoding", encodingName).Debug("Decoded text content")

	format, delimiter, separator := DetectFormat(content)
	log.WithField("format", format).Info("Detected text format")

	switch format {
	case FormatDelimited:
		return parseDelimited(content, delimiter)
	case FormatFixedWidth:
		return parseFixedWidth(content)
	case FormatKeyValue:
		return parseKeyValue(content, separator), nil
	default:
		return parseUnstructured(content), nil
	}
}

// DetectFormat infers the structure of text content from a sample of its
// lines. It returns the format plus the delimiter (for delimited content)
// and the key-value separator (for key-value content).
func DetectFormat(content string) (string, rune, rune) {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if len(lines) > formatSampleLines {
		lines = lines[:formatSampleLines]
	}
	if len(lines) == 0 {
		return FormatUnstructured, 0, 0
	}

	delimiters := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestCount := 0
	for _, d := range delimiters {
		count := 0
		for _, line := range lines {
			if strings.ContainsRune(line, d) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			bestDelimiter = d
		}
	}
	if float64(bestCount) >= float64(len(lines))*0.7 {
		return FormatDelimited, bestDelimiter, 0
	}

	if looksFixedWidth(lines) {
		return FormatFixedWidth, 0, 0
	}

	kvCount := 0
	colonCount := 0
	equalsCount := 0
	for _, line := range lines {
		if keyValueLine.MatchString(line) {
			kvCount++
		}
		if strings.Contains(line, ":") {
			colonCount++
		}
		if strings.Contains(line, "=") {
			equalsCount++
		}
	}
	if float64(kvCount) >= float64(len(lines))*0.7 {
		separator := ':'
		if equalsCount > colonCount {
			separator = '='
		}
		return FormatKeyValue, 0, separator
	}

	return FormatUnstructured, 0, 0
}

// looksFixedWidth reports whether the non-blank sample lines have nearly
// identical lengths, which suggests space-padded columns.
func looksFixedWidth(lines []string) bool {
	minLen, maxLen := -1, 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		l := len(line)
		if l <= 20 {
			return false
		}
		if minLen < 0 || l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}
	return minLen > 0 && maxLen-minLen < 5
}

func parseDelimited(content string, delimiter rune) (models.Table, error) {
	reader := csv.NewReader(strings.NewReader(content))
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
			return nil, fmt.Errorf("error reading delimited text: %w", err)
		}
		table = append(table, models.TextRow(record))
	}

	if len(table) == 0 {
		return nil, errors.New("no data could be parsed from delimited text")
	}
	return table, nil
}

func parseFixedWidth(content string) (models.Table, error) {
	lines := strings.Split(content, "\n")

	var sampleLines []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			sampleLines = append(sampleLines, line)
		}
		if len(sampleLines) == 10 {
			break
		}
	}
	if len(sampleLines) == 0 {
		return nil, errors.New("no data found in fixed-width text")
	}

	boundaries := detectColumnBoundaries(sampleLines)

	var table models.Table
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		row := make([]string, len(boundaries))
		for i, start := range boundaries {
			end := len(line)
			if i < len(boundaries)-1 {
				end = boundaries[i+1]
			}
			if start < len(line) {
				if end > len(line) {
					end = len(line)
				}
				row[i] = strings.TrimSpace(line[start:end])
			}
		}
		table = append(table, models.TextRow(row))
	}
	return table, nil
}

// detectColumnBoundaries finds positions where every sample line has a space
// run ending, which marks the start of the next column.
func detectColumnBoundaries(sampleLines []string) []int {
	lineLength := len(sampleLines[0])
	for _, line := range sampleLines[1:] {
		if len(line) < lineLength {
			lineLength = len(line)
		}
	}

	spaceCounts := make([]int, lineLength)
	for _, line := range sampleLines {
		for i := 0; i < lineLength; i++ {
			if line[i] == ' ' || line[i] == '\t' {
				spaceCounts[i]++
			}
		}
	}

	boundaries := []int{0}
	total := len(sampleLines)
	for i := 1; i < lineLength-1; i++ {
		if spaceCounts[i] == total && spaceCounts[i-1] == total && spaceCounts[i+1] < total {
			boundaries = append(boundaries, i+1)
		}
	}
	return boundaries
}

func parseKeyValue(content string, separator rune) models.Table {
	lines := strings.Split(content, "\n")

	var records []map[string]string
	current := make(map[string]string)

	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
			current = make(map[string]string)
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		key, value, found := strings.Cut(line, string(separator))
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key != "" {
			current[key] = strings.TrimSpace(value)
		}
	}
	flush()

	return recordsToTable(records)
}

// parseUnstructured scans free-form text for product blocks. When none are
// found, the whole content becomes a single record.
func parseUnstructured(content string) models.Table {
	lines := strings.Split(content, "\n")

	products := extractProductBlocks(lines)
	if len(products) > 0 {
		return recordsToTable(products)
	}

	log.Warning("No structured product data found, treating as a single record")
	product := extractProductAttributes(content)
	if len(product) > 0 {
		return recordsToTable([]map[string]string{product})
	}

	return models.Table{
		models.TextRow([]string{models.FieldLongDescription}),
		models.TextRow([]string{strings.TrimSpace(content)}),
	}
}

// recordsToTable converts key-value records into a table whose first row is
// the sorted union of all keys.
func recordsToTable(records []map[string]string) models.Table {
	if len(records) == 0 {
		return nil
	}

	keySet := make(map[string]bool)
	for _, record := range records {
		for key := range record {
			keySet[key] = true
		}
	}
	headers := make([]string, 0, len(keySet))
	for key := range keySet {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	table := models.Table{models.TextRow(headers)}
	for _, record := range records {
		row := make([]string, len(headers))
		for i, key := range headers {
			row[i] = record[key]
		}
		table = append(table, models.TextRow(row))
	}
	return table
}
