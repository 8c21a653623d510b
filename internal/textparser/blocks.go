package textparser

import (
	"regexp"
	"strings"

	"catalog-csv/internal/models"
)

// productStartPatterns mark lines that open a new product block.
var productStartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*product\s*:\s*`),
	regexp.MustCompile(`(?i)^\s*item\s*:\s*`),
	regexp.MustCompile(`(?i)^\s*sku\s*:\s*`),
	regexp.MustCompile(`^\s*#\d+\s*`),
	regexp.MustCompile(`^\s*\d+\.\s+`),
	regexp.MustCompile(`^\s*-{3,}\s*`),
}

type attributePattern struct {
	field   string
	pattern *regexp.Regexp
}

// attributePatterns match "label: value" lines inside a product block.
// Order matters: the first matching pattern claims the line.
var attributePatterns = []attributePattern{
	{models.FieldSKU, regexp.MustCompile(`(?i)(?:sku|item\s*(?:code|number|#)|product\s*(?:code|number|#)|part\s*(?:number|#))\s*:\s*(.*)`)},
	{models.FieldShortDescription, regexp.MustCompile(`(?i)(?:name|title|short\s*desc|product\s*name)\s*:\s*(.*)`)},
	{models.FieldLongDescription, regexp.MustCompile(`(?i)(?:description|details|features|specs|specification)\s*:\s*(.*)`)},
	{models.FieldModel, regexp.MustCompile(`(?i)(?:model|model\s*(?:number|#))\s*:\s*(.*)`)},
	{models.FieldCategory, regexp.MustCompile(`(?i)(?:category|product\s*type|group)\s*:\s*(.*)`)},
	{models.FieldManufacturer, regexp.MustCompile(`(?i)(?:manufacturer|brand|maker|vendor)\s*:\s*(.*)`)},
	{models.FieldBuyCost, regexp.MustCompile(`(?i)(?:cost|buy\s*(?:cost|price)|wholesale\s*price)\s*:\s*(.*)`)},
	{models.FieldMSRPGBP, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)(?:\s*gbp|\s*£|\s*pounds)\s*:\s*(.*)`)},
	{models.FieldMSRPUSD, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)(?:\s*usd|\s*\$|\s*dollars)\s*:\s*(.*)`)},
	{models.FieldMSRPEUR, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)(?:\s*eur|\s*€|\s*euros)\s*:\s*(.*)`)},
	// A retail price with no currency suffix stays generic; the price
	// validation step assigns it a currency from hints elsewhere in the row.
	{models.FieldMSRP, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)\s*:\s*(.*)`)},
	{models.FieldTradePrice, regexp.MustCompile(`(?i)(?:trade\s*price|dealer\s*price|distributor\s*price)\s*:\s*(.*)`)},
}

// singleRecordPatterns extract attributes when the whole file is treated as
// one record. Identifier-like fields only accept token values here.
var singleRecordPatterns = []attributePattern{
	{models.FieldSKU, regexp.MustCompile(`(?i)(?:sku|item\s*(?:code|number|#)|product\s*(?:code|number|#)|part\s*(?:number|#))\s*:\s*([\w\-]+)`)},
	{models.FieldShortDescription, regexp.MustCompile(`(?i)(?:name|title|short\s*desc|product\s*name)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldLongDescription, regexp.MustCompile(`(?i)(?:description|details|features|specs|specification)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldModel, regexp.MustCompile(`(?i)(?:model|model\s*(?:number|#))\s*:\s*([\w\-]+)`)},
	{models.FieldCategory, regexp.MustCompile(`(?i)(?:category|product\s*type|group)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldManufacturer, regexp.MustCompile(`(?i)(?:manufacturer|brand|maker|vendor)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldBuyCost, regexp.MustCompile(`(?i)(?:cost|buy\s*(?:cost|price)|wholesale\s*price)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldMSRPGBP, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)(?:\s*gbp|\s*£|\s*pounds)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldMSRPUSD, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)(?:\s*usd|\s*\$|\s*dollars)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldMSRPEUR, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)(?:\s*eur|\s*€|\s*euros)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldMSRP, regexp.MustCompile(`(?i)(?:msrp|rrp|retail\s*price|list\s*price)\s*:\s*([^` + "\n\r" + `]+)`)},
	{models.FieldTradePrice, regexp.MustCompile(`(?i)(?:trade\s*price|dealer\s*price|distributor\s*price)\s*:\s*([^` + "\n\r" + `]+)`)},
}

var skuToken = regexp.MustCompile(`\b([A-Z0-9]{5,20})\b`)

// extractProductBlocks splits free-form lines into product records. Blocks
// end at blank lines or at lines matching a product-start pattern, and only
// blocks carrying a SKU or a name are kept.
func extractProductBlocks(lines []string) []map[string]string {
	var products []map[string]string
	current := make(map[string]string)

	keep := func() {
		if _, ok := current[models.FieldSKU]; ok {
			products = append(products, current)
		} else if _, ok := current[models.FieldShortDescription]; ok {
			products = append(products, current)
		}
		current = make(map[string]string)
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				keep()
			}
			continue
		}

		for _, p := range productStartPatterns {
			if p.MatchString(line) {
				if len(current) > 0 {
					keep()
				}
				break
			}
		}

		// A start line can itself carry an attribute ("SKU: AB-100"
		// both opens a block and names its SKU), so it still runs
		// through the attribute patterns.
		for _, ap := range attributePatterns {
			if m := ap.pattern.FindStringSubmatch(line); m != nil {
				current[ap.field] = strings.TrimSpace(m[1])
				break
			}
		}
	}
	if len(current) > 0 {
		keep()
	}

	return products
}

// extractProductAttributes pulls whatever attributes it can from the whole
// content, falling back to a SKU-looking token plus first-line description.
func extractProductAttributes(content string) map[string]string {
	product := make(map[string]string)

	for _, ap := range singleRecordPatterns {
		if _, ok := product[ap.field]; ok {
			continue
		}
		if m := ap.pattern.FindStringSubmatch(content); m != nil {
			product[ap.field] = strings.TrimSpace(m[1])
		}
	}
	if len(product) > 0 {
		return product
	}

	if m := skuToken.FindStringSubmatch(content); m != nil {
		product[models.FieldSKU] = m[1]
	}

	trimmed := strings.TrimSpace(content)
	contentLines := strings.Split(trimmed, "\n")
	firstLine := strings.TrimSpace(contentLines[0])
	if firstLine != "" && len(firstLine) < 200 {
		product[models.FieldShortDescription] = firstLine
	}
	if len(contentLines) > 1 {
		product[models.FieldLongDescription] = strings.Join(contentLines[1:], "\n")
	}

	return product
}
