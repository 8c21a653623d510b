// Package priceutils normalizes price values and detects currencies
// across the loosely structured formats manufacturer catalogs use.
package priceutils

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"catalog-csv/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// currencyWindow is how many characters before a numeric token are
// inspected for a currency symbol.
const currencyWindow = 3

// priceSearchWindow is how many characters after a price label are
// scanned for the numeric value.
const priceSearchWindow = 50

// NormalizePrice converts a raw cell into a float price. Numeric cells
// pass through unchanged, text cells are parsed, absent cells stay
// absent. The second return is false when no price could be obtained.
func NormalizePrice(v models.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if s, ok := v.Str(); ok {
		return NormalizePriceString(s)
	}
	return 0, false
}

// NormalizePriceString parses a price string that may carry currency
// symbols, whitespace and mixed thousands/decimal separators.
// It handles formats like "1,234.56", "1.234,56", "£ 1234.56", "12,34".
func NormalizePriceString(value string) (float64, bool) {
	cleaned := nonPriceChars.ReplaceAllString(strings.TrimSpace(value), "")
	if cleaned == "" {
		if value != "" {
			log.WithField("value", value).Warning("Could not parse price value")
		}
		return 0, false
	}

	hasComma := strings.Contains(cleaned, ",")
	hasPeriod := strings.Contains(cleaned, ".")

	switch {
	case hasComma && hasPeriod:
		// Whichever separator occurs last is the decimal one.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			// Format like 1.234,56
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// Format like 1,234.56
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		// A lone comma is ambiguous. Up to three trailing digits reads as
		// a decimal separator, more reads as thousands grouping.
		if len(cleaned)-strings.LastIndex(cleaned, ",")-1 <= 3 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		log.WithField("value", value).Warning("Could not parse price value")
		return 0, false
	}
	return f, true
}

// DetectCurrency scans text for currency symbols and keywords. When
// several currencies match, the indicator table's order decides.
// Returns false when no indicator is found.
func DetectCurrency(value string) (string, bool) {
	if value == "" {
		return "", false
	}

	lowered := strings.ToLower(value)
	for _, ci := range models.CurrencyIndicators {
		for _, indicator := range ci.Indicators {
			if strings.Contains(lowered, indicator) {
				return ci.Code, true
			}
		}
	}
	return "", false
}

// ExtractPricesFromRow pulls labeled prices out of a row-based text
// block, e.g. "Widget X. Trade Price: $90.00, MSRP $120.00". For each
// known price label the numeric token within the next 50 characters is
// normalized; MSRP values get currency-qualified when a currency symbol
// sits just before the number.
func ExtractPricesFromRow(rowData string) map[string]float64 {
	prices := make(map[string]float64)
	if rowData == "" {
		return prices
	}

	for _, pt := range rowPricePatterns {
		for _, pattern := range pt.Patterns {
			for _, loc := range pattern.FindAllStringIndex(rowData, -1) {
				window := runePrefix(rowData[loc[1]:], priceSearchWindow)
				tokenLoc := numberToken.FindStringIndex(window)
				if tokenLoc == nil {
					continue
				}

				value, ok := NormalizePriceString(window[tokenLoc[0]:tokenLoc[1]])
				if !ok {
					continue
				}

				field := pt.Field
				if pt.Field == models.FieldMSRP {
					tokenStart := loc[1] + tokenLoc[0]
					if currency, found := DetectCurrency(runeSuffix(rowData[:tokenStart], currencyWindow)); found {
						field = pt.Field + " " + currency
					}
				}
				prices[field] = value

				// One value per pattern is enough.
				break
			}
		}
	}

	return prices
}

// ExtractPricesFromDescription extracts labeled prices from a product
// description. Descriptions use the same inline label format as
// row-based catalog text.
func ExtractPricesFromDescription(description string) map[string]float64 {
	if description == "" {
		return map[string]float64{}
	}
	return ExtractPricesFromRow(description)
}

// validatedPriceFields are normalized in place by ValidatePriceFields.
// The generic MSRP entry only exists transiently, between extraction and
// redistribution.
var validatedPriceFields = []string{
	models.FieldBuyCost,
	models.FieldTradePrice,
	models.FieldMSRP,
	models.FieldMSRPGBP,
	models.FieldMSRPUSD,
	models.FieldMSRPEUR,
}

// ValidatePriceFields normalizes every price field of a row and resolves
// a generic MSRP value into the currency-qualified MSRP fields whose
// currency is hinted anywhere in the row. The generic MSRP key never
// survives validation. The row is mutated and returned.
func ValidatePriceFields(row models.Row) models.Row {
	for _, field := range validatedPriceFields {
		if v, ok := row[field]; ok {
			if f, parsed := NormalizePrice(v); parsed {
				row[field] = models.Number(f)
			} else {
				row[field] = models.Absent
			}
		}
	}

	if generic, ok := row.Get(models.FieldMSRP).Float(); ok {
		for _, field := range models.CurrencyMSRPFields {
			if !row.Get(field).IsAbsent() {
				continue
			}
			currency := field[strings.LastIndex(field, " ")+1:]
			if rowHintsCurrency(row, currency) {
				row[field] = models.Number(generic)
			}
		}
	}
	delete(row, models.FieldMSRP)

	return row
}

// rowHintsCurrency reports whether any value in the row contains one of
// the currency's indicator substrings.
func rowHintsCurrency(row models.Row, currency string) bool {
	var indicators []string
	for _, ci := range models.CurrencyIndicators {
		if ci.Code == currency {
			indicators = ci.Indicators
			break
		}
	}

	for _, v := range row {
		lowered := strings.ToLower(v.String())
		if lowered == "" {
			continue
		}
		for _, indicator := range indicators {
			if strings.Contains(lowered, indicator) {
				return true
			}
		}
	}
	return false
}

// runePrefix returns the first n characters of s.
func runePrefix(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// runeSuffix returns the last n characters of s.
func runeSuffix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := len(s); i > 0; {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
		count++
		if count == n {
			return s[i:]
		}
	}
	return s
}
