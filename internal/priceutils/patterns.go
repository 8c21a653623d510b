package priceutils

import (
	"regexp"

	"catalog-csv/internal/models"
)

// pricePattern associates a price field with the label patterns that
// mark it inside row-based text.
type pricePattern struct {
	Field    string
	Patterns []*regexp.Regexp
}

// rowPricePatterns locate inline price labels in text where prices live
// inside a description block instead of their own columns. Order matters:
// a later pattern that also matches overwrites the earlier value for the
// same field.
var rowPricePatterns = []pricePattern{
	{
		Field: models.FieldBuyCost,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(buy|cost|wholesale|net|dealer|base)(?:\s|-)(?:cost|price)`),
			regexp.MustCompile(`(?i)(cost|price)(?:\s|-)(?:to|for)(?:\s|-)(?:buy|dealer|distributor|reseller)`),
			regexp.MustCompile(`(?i)\b(cost|landed\s*cost|purchase\s*price)\b`),
		},
	},
	{
		Field: models.FieldTradePrice,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(trade|dealer|distributor|reseller)(?:\s|-)(?:cost|price)`),
			regexp.MustCompile(`(?i)(price)(?:\s|-)(?:to|for)(?:\s|-)(?:trade|dealer|distributor|reseller)`),
			regexp.MustCompile(`(?i)\b(wholesale\s*price|b2b\s*price)\b`),
		},
	},
	{
		Field: models.FieldMSRP,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(msrp|srp|rrp|list|retail|resale|recommended|suggested)(?:\s|-)(?:price|cost)`),
			regexp.MustCompile(`(?i)\b(msrp|srp|rrp|public\s*price|consumer\s*price|retail)\b`),
		},
	},
}

// numberToken matches a price-shaped numeric token: optional sign, then
// digits possibly interleaved with spaces and separators.
var numberToken = regexp.MustCompile(`[-+]?\d[\d\s,.]*`)

// nonPriceChars strips everything that is not a digit or a separator.
var nonPriceChars = regexp.MustCompile(`[^\d.,]`)
