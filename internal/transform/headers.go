package transform

import (
	"fmt"
	"strconv"
	"strings"

	"catalog-csv/internal/models"
)

// headerKeywords are terms whose presence in a cell suggests the row is
// a header row rather than data.
var headerKeywords = []string{
	"id", "name", "price", "cost", "sku", "description", "category",
	"brand", "product", "model", "manufacturer", "image", "url",
}

// DetectHeaderRow scores the first maxRows rows of a table and returns
// the index of the most header-like one. Catalog exports often carry
// title or contact lines above the real header, so row 0 cannot be
// assumed. When no row scores positively the first row is used.
func DetectHeaderRow(table models.Table, maxRows int) int {
	limit := len(table)
	if maxRows < limit {
		limit = maxRows
	}

	bestIdx := 0
	bestScore := scoreHeaderRow(table[0])
	for i := 1; i < limit; i++ {
		if score := scoreHeaderRow(table[i]); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestScore < 0 {
		return 0
	}
	return bestIdx
}

// scoreHeaderRow rewards rows that are mostly short text with header
// keywords and penalizes empty cells.
func scoreHeaderRow(row []models.Value) float64 {
	if len(row) == 0 {
		return -3
	}

	var stringCells, emptyCells, keywordCells, textLen int
	for _, v := range row {
		if v.IsEmpty() {
			emptyCells++
			continue
		}
		s, ok := v.Str()
		if !ok {
			continue
		}
		stringCells++
		s = strings.TrimSpace(s)
		textLen += len([]rune(s))

		lowered := strings.ToLower(s)
		for _, kw := range headerKeywords {
			if strings.Contains(lowered, kw) {
				keywordCells++
				break
			}
		}
	}

	n := float64(len(row))
	score := float64(stringCells)/n*3 + float64(keywordCells)*2
	if stringCells > 0 {
		avg := float64(textLen) / float64(stringCells)
		if bonus := (30 - avg) / 10; bonus > 0 {
			score += bonus
		}
	}
	score -= float64(emptyCells) / n * 3
	return score
}

// HeadersFromRow renders a header row as strings, substituting ColumnN
// names for blank cells.
func HeadersFromRow(row []models.Value) []string {
	headers := make([]string, len(row))
	for i, v := range row {
		h := strings.TrimSpace(v.String())
		if h == "" {
			h = fmt.Sprintf("Column%d", i+1)
		}
		headers[i] = h
	}
	return headers
}

// HasHeaders reports whether the table's first row reads as headers
// rather than data. Delimited files carry no header marker, so this is
// a heuristic: a data-like second row or header keywords in the first
// row both argue for headers, while a mostly numeric first row argues
// against.
func HasHeaders(table models.Table) bool {
	if len(table) == 0 {
		return false
	}
	first := table[0]
	if len(table) == 1 {
		return true
	}

	if numericCount(table[1]) > numericCount(first)+2 {
		return true
	}

	keywords := 0
	for _, v := range first {
		s, ok := v.Str()
		if !ok {
			continue
		}
		lowered := strings.ToLower(s)
		for _, kw := range headerKeywords {
			if strings.Contains(lowered, kw) {
				keywords++
				break
			}
		}
	}
	if keywords >= 2 {
		return true
	}

	return numericCount(first) <= len(first)/2
}

// numericCount counts cells that are numbers or text that parses as a
// number, with a comma accepted as the decimal separator.
func numericCount(row []models.Value) int {
	count := 0
	for _, v := range row {
		if v.IsNumber() {
			count++
			continue
		}
		if s, ok := v.Str(); ok {
			s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				count++
			}
		}
	}
	return count
}

// syntheticHeaders generates ColumnN names for a headerless table.
func syntheticHeaders(width int) []string {
	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("Column%d", i+1)
	}
	return headers
}
