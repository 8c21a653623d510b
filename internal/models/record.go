package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a nullable monetary cell. Catalog sources leave most price
// columns empty, so absence is first-class rather than zero.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

// NewPrice creates a valid Price from a float amount.
func NewPrice(amount float64) Price {
	return Price{Amount: decimal.NewFromFloat(amount), Valid: true}
}

// PriceFromValue converts a row cell into a Price. Only numeric cells
// produce a valid price; text cells are expected to have been normalized
// upstream.
func PriceFromValue(v Value) Price {
	if f, ok := v.Float(); ok {
		return NewPrice(f)
	}
	return Price{}
}

// Float64 returns the amount as a float64 and whether the price is set.
func (p Price) Float64() (float64, bool) {
	if !p.Valid {
		return 0, false
	}
	f, _ := p.Amount.Float64()
	return f, true
}

// String renders the price with two decimal places, or empty when unset.
func (p Price) String() string {
	if !p.Valid {
		return ""
	}
	return p.Amount.StringFixed(2)
}

// MarshalCSV implements the gocsv field marshaller.
func (p Price) MarshalCSV() (string, error) {
	return p.String(), nil
}

// UnmarshalCSV implements the gocsv field unmarshaller.
func (p *Price) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*p = Price{}
		return nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*p = Price{Amount: amount, Valid: true}
	return nil
}

// MarshalJSON renders the price as a JSON number, or null when unset.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(p.Amount.StringFixed(2)), nil
}

// UnmarshalJSON implements the JSON unmarshaller.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*p = Price{}
		return nil
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*p = Price{Amount: amount, Valid: true}
	return nil
}

// CatalogRecord is one standardized output row.
type CatalogRecord struct {
	SKU              string `csv:"SKU" json:"SKU"`
	ShortDescription string `csv:"Short Description" json:"Short Description"`
	LongDescription  string `csv:"Long Description" json:"Long Description"`
	Model            string `csv:"Model" json:"Model"`
	CategoryGroup    string `csv:"Category Group" json:"Category Group"`
	Category         string `csv:"Category" json:"Category"`
	Manufacturer     string `csv:"Manufacturer" json:"Manufacturer"`
	ManufacturerSKU  string `csv:"Manufacturer SKU" json:"Manufacturer SKU"`
	ImageURL         string `csv:"Image URL" json:"Image URL"`
	DocumentName     string `csv:"Document Name" json:"Document Name"`
	DocumentURL      string `csv:"Document URL" json:"Document URL"`
	UnitOfMeasure    string `csv:"Unit Of Measure" json:"Unit Of Measure"`
	BuyCost          Price  `csv:"Buy Cost" json:"Buy Cost"`
	TradePrice       Price  `csv:"Trade Price" json:"Trade Price"`
	MSRPGBP          Price  `csv:"MSRP GBP" json:"MSRP GBP"`
	MSRPUSD          Price  `csv:"MSRP USD" json:"MSRP USD"`
	MSRPEUR          Price  `csv:"MSRP EUR" json:"MSRP EUR"`
	Discontinued     bool   `csv:"Discontinued" json:"Discontinued"`
}

// RecordFromRow builds a CatalogRecord from a mapped and validated row.
// Fields outside the target schema are dropped.
func RecordFromRow(row Row) CatalogRecord {
	return CatalogRecord{
		SKU:              row.Get(FieldSKU).String(),
		ShortDescription: row.Get(FieldShortDescription).String(),
		LongDescription:  row.Get(FieldLongDescription).String(),
		Model:            row.Get(FieldModel).String(),
		CategoryGroup:    row.Get(FieldCategoryGroup).String(),
		Category:         row.Get(FieldCategory).String(),
		Manufacturer:     row.Get(FieldManufacturer).String(),
		ManufacturerSKU:  row.Get(FieldManufacturerSKU).String(),
		ImageURL:         row.Get(FieldImageURL).String(),
		DocumentName:     row.Get(FieldDocumentName).String(),
		DocumentURL:      row.Get(FieldDocumentURL).String(),
		UnitOfMeasure:    row.Get(FieldUnitOfMeasure).String(),
		BuyCost:          PriceFromValue(row.Get(FieldBuyCost)),
		TradePrice:       PriceFromValue(row.Get(FieldTradePrice)),
		MSRPGBP:          PriceFromValue(row.Get(FieldMSRPGBP)),
		MSRPUSD:          PriceFromValue(row.Get(FieldMSRPUSD)),
		MSRPEUR:          PriceFromValue(row.Get(FieldMSRPEUR)),
		Discontinued:     ParseDiscontinued(row.Get(FieldDiscontinued)),
	}
}

// discontinuedMarkers are the textual forms that mean a product is no
// longer available.
var discontinuedMarkers = []string{
	"true", "yes", "y", "1", "discontinued", "obsolete", "eol", "end of life", "inactive",
}

// ParseDiscontinued coerces a loosely typed availability cell to a bool.
// Unknown or absent values mean the product is still active.
func ParseDiscontinued(v Value) bool {
	if f, ok := v.Float(); ok {
		return f != 0
	}
	s, ok := v.Str()
	if !ok {
		return false
	}
	s = strings.ToLower(strings.TrimSpace(s))
	for _, marker := range discontinuedMarkers {
		if s == marker {
			return true
		}
	}
	return false
}
