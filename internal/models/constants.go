package models

import "strings"

// Target field names
const (
	FieldSKU              = "SKU"
	FieldShortDescription = "Short Description"
	FieldLongDescription  = "Long Description"
	FieldModel            = "Model"
	FieldCategoryGroup    = "Category Group"
	FieldCategory         = "Category"
	FieldManufacturer     = "Manufacturer"
	FieldManufacturerSKU  = "Manufacturer SKU"
	FieldImageURL         = "Image URL"
	FieldDocumentName     = "Document Name"
	FieldDocumentURL      = "Document URL"
	FieldUnitOfMeasure    = "Unit Of Measure"
	FieldBuyCost          = "Buy Cost"
	FieldTradePrice       = "Trade Price"
	FieldMSRP             = "MSRP"
	FieldMSRPGBP          = "MSRP GBP"
	FieldMSRPUSD          = "MSRP USD"
	FieldMSRPEUR          = "MSRP EUR"
	FieldDiscontinued     = "Discontinued"
)

// TargetFields is the output schema, in column order.
var TargetFields = []string{
	FieldSKU,
	FieldShortDescription,
	FieldLongDescription,
	FieldModel,
	FieldCategoryGroup,
	FieldCategory,
	FieldManufacturer,
	FieldManufacturerSKU,
	FieldImageURL,
	FieldDocumentName,
	FieldDocumentURL,
	FieldUnitOfMeasure,
	FieldBuyCost,
	FieldTradePrice,
	FieldMSRPGBP,
	FieldMSRPUSD,
	FieldMSRPEUR,
	FieldDiscontinued,
}

// PriceFields are the output fields that hold normalized prices.
var PriceFields = []string{
	FieldBuyCost,
	FieldTradePrice,
	FieldMSRPGBP,
	FieldMSRPUSD,
	FieldMSRPEUR,
}

// CurrencyMSRPFields are the currency-qualified MSRP fields, in the same
// priority order as CurrencyIndicators.
var CurrencyMSRPFields = []string{
	FieldMSRPGBP,
	FieldMSRPUSD,
	FieldMSRPEUR,
}

// RequiredFields must be populated for a row to count as a usable record.
var RequiredFields = []string{
	FieldSKU,
	FieldShortDescription,
	FieldManufacturer,
}

// CurrencyIndicator associates a currency code with the substrings whose
// presence in text implies that currency.
type CurrencyIndicator struct {
	Code       string
	Indicators []string
}

// CurrencyIndicators is ordered: when several currencies match the same
// text, the first entry wins.
var CurrencyIndicators = []CurrencyIndicator{
	{Code: "GBP", Indicators: []string{"£", "gbp", "pounds", "pound", "uk", "british"}},
	{Code: "USD", Indicators: []string{"$", "usd", "dollars", "dollar", "us", "american"}},
	{Code: "EUR", Indicators: []string{"€", "eur", "euros", "euro", "eu", "european"}},
}

// CommonManufacturers seeds filename and data based manufacturer detection.
var CommonManufacturers = []string{
	"apple", "samsung", "sony", "lg", "dell", "hp", "lenovo", "asus",
	"acer", "toshiba", "microsoft", "philips", "panasonic", "bosch",
	"siemens", "canon", "nikon", "intel", "amd", "nvidia",
}

// File types
const (
	FileTypeCSV   = "csv"
	FileTypeExcel = "excel"
	FileTypeText  = "text"
	FileTypePDF   = "pdf"
)

// SupportedExtensions maps file types to the extensions they cover.
var SupportedExtensions = map[string][]string{
	FileTypeExcel: {".xlsx", ".xls", ".xlsm"},
	FileTypeCSV:   {".csv"},
	FileTypeText:  {".txt", ".text"},
	FileTypePDF:   {".pdf"},
}

// FileTypeForExtension returns the file type covering the given extension.
// The extension is matched case-insensitively and must include the dot.
func FileTypeForExtension(ext string) (string, bool) {
	ext = strings.ToLower(ext)
	for fileType, exts := range SupportedExtensions {
		for _, e := range exts {
			if e == ext {
				return fileType, true
			}
		}
	}
	return "", false
}

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
