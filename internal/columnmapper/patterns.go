package columnmapper

import (
	"regexp"

	"catalog-csv/internal/models"
)

// fieldPatterns match cleaned headers (lowercased, punctuation collapsed to
// spaces) against each target field's known naming conventions. Order
// matters: earlier patterns are the more specific ones.
var fieldPatterns = map[string][]*regexp.Regexp{
	models.FieldSKU: {
		regexp.MustCompile(`(?i)^(sku|item\s*(?:code|number|#|no)|product\s*(?:code|number|#|no)|part\s*(?:code|number|#|no)|stock\s*(?:code|number))$`),
		regexp.MustCompile(`(?i)^(article\s*(?:number|code|#|no)|catalog\s*(?:number|code|#|no)|reference\s*(?:number|code))$`),
		regexp.MustCompile(`(?i)^(inventory\s*(?:number|code|id))$`),
	},
	models.FieldShortDescription: {
		regexp.MustCompile(`(?i)^(short\s*desc|brief\s*desc|title|product\s*name|item\s*name|name|description\s*\(short\))$`),
		regexp.MustCompile(`(?i)^(product\s*title|item\s*title|short\s*title|short\s*text|headline)$`),
	},
	models.FieldLongDescription: {
		regexp.MustCompile(`(?i)^(long\s*desc|detailed\s*desc|full\s*desc|product\s*desc|item\s*desc|description|product\s*description|item\s*description|desc|details|full\s*description)$`),
		regexp.MustCompile(`(?i)^(features|specifications|product\s*details|extended\s*description|product\s*information)$`),
		regexp.MustCompile(`(?i)^(tech\s*specs|technical\s*description|full\s*text|product\s*specs)$`),
	},
	models.FieldModel: {
		regexp.MustCompile(`(?i)^(model|model\s*(?:code|number|#|no))$`),
		regexp.MustCompile(`(?i)^(version|product\s*model|device\s*model)$`),
	},
	models.FieldCategoryGroup: {
		regexp.MustCompile(`(?i)^(category\s*group|main\s*category|top\s*category|product\s*group|dept|department|division)$`),
		regexp.MustCompile(`(?i)^(product\s*line|major\s*category|product\s*class|primary\s*category)$`),
	},
	models.FieldCategory: {
		regexp.MustCompile(`(?i)^(category|sub\s*category|product\s*category|product\s*type|group|family)$`),
		regexp.MustCompile(`(?i)^(class|classification|segment|product\s*segment|section)$`),
	},
	models.FieldManufacturer: {
		regexp.MustCompile(`(?i)^(manufacturer|brand|maker|vendor|supplier|producer|company)$`),
		regexp.MustCompile(`(?i)^(oem|original\s*manufacturer|provider|source|origin)$`),
	},
	models.FieldManufacturerSKU: {
		regexp.MustCompile(`(?i)^(mfr\s*(?:part|#|number|code|sku)|manufacturer\s*(?:part|#|number|code|sku)|vendor\s*(?:part|#|number|code|sku)|oem\s*(?:part|#|number|code))$`),
		regexp.MustCompile(`(?i)^(brand\s*(?:sku|number|code)|maker\s*(?:part|#|number|code)|external\s*(?:sku|id))$`),
	},
	models.FieldImageURL: {
		regexp.MustCompile(`(?i)^(image\s*(?:url|link|path)|photo\s*(?:url|link|path)|picture\s*(?:url|link|path)|img\s*(?:url|link|path)|product\s*(?:image|photo|picture))$`),
		regexp.MustCompile(`(?i)^(image|photo|picture|img|thumbnail|main\s*image)$`),
	},
	models.FieldDocumentName: {
		regexp.MustCompile(`(?i)^(document\s*name|doc\s*name|file\s*name|manual\s*name|spec\s*sheet\s*name)$`),
		regexp.MustCompile(`(?i)^(pdf\s*name|attachment\s*name|documentation\s*name)$`),
	},
	models.FieldDocumentURL: {
		regexp.MustCompile(`(?i)^(document\s*(?:url|link|path)|doc\s*(?:url|link|path)|manual\s*(?:url|link|path)|spec\s*(?:url|link|path)|pdf\s*(?:url|link|path))$`),
		regexp.MustCompile(`(?i)^(documentation\s*(?:url|link)|attachment\s*(?:url|link)|data\s*sheet\s*(?:url|link))$`),
	},
	models.FieldUnitOfMeasure: {
		regexp.MustCompile(`(?i)^(uom|unit\s*(?:of\s*measure|measure|type)|sell\s*unit|packaging|pack\s*size|quantity\s*unit)$`),
		regexp.MustCompile(`(?i)^(measurement\s*unit|sales\s*unit|unit\s*size|package\s*type|qty\s*unit)$`),
	},
	models.FieldBuyCost: {
		regexp.MustCompile(`(?i)^((?:buy|cost|wholesale|net|dealer|base)\s*(?:cost|price)|(?:cost|price)\s*(?:to|for)\s*(?:buy|dealer|distributor|reseller)|cost|price|unit\s*cost)$`),
		regexp.MustCompile(`(?i)^(landed\s*cost|purchase\s*price|acquisition\s*cost|inventory\s*cost|stock\s*cost)$`),
		regexp.MustCompile(`(?i)^(direct\s*cost|factory\s*price|ex works\s*price|supply\s*price)$`),
	},
	models.FieldTradePrice: {
		regexp.MustCompile(`(?i)^((?:trade|dealer|distributor|reseller)\s*(?:cost|price)|price\s*(?:to|for)\s*(?:trade|dealer|distributor|reseller))$`),
		regexp.MustCompile(`(?i)^(wholesale\s*price|b2b\s*price|commercial\s*price|partner\s*price|channel\s*price)$`),
		regexp.MustCompile(`(?i)^(net\s*price|discount\s*price|special\s*price|contractor\s*price)$`),
	},
	models.FieldMSRPGBP: {
		regexp.MustCompile(`(?i)^((?:msrp|srp|rrp|list|retail|resale|recommended|suggested)\s*(?:price|cost)\s*(?:gbp|£|pounds?))$`),
		regexp.MustCompile(`(?i)^((?:price|cost)\s*(?:gbp|£|pounds?))$`),
		regexp.MustCompile(`(?i)^(uk\s*(?:price|retail|msrp|rrp))$`),
		regexp.MustCompile(`(?i)^(gbp|£|pounds?)$`),
	},
	models.FieldMSRPUSD: {
		regexp.MustCompile(`(?i)^((?:msrp|srp|rrp|list|retail|resale|recommended|suggested)\s*(?:price|cost)\s*(?:usd|dollars?))$`),
		regexp.MustCompile(`(?i)^((?:price|cost)\s*(?:usd|dollars?))$`),
		regexp.MustCompile(`(?i)^(us\s*(?:price|retail|msrp|rrp))$`),
		regexp.MustCompile(`(?i)^(usd|dollars?)$`),
	},
	models.FieldMSRPEUR: {
		regexp.MustCompile(`(?i)^((?:msrp|srp|rrp|list|retail|resale|recommended|suggested)\s*(?:price|cost)\s*(?:eur|€|euros?))$`),
		regexp.MustCompile(`(?i)^((?:price|cost)\s*(?:eur|€|euros?))$`),
		regexp.MustCompile(`(?i)^(eu\s*(?:price|retail|msrp|rrp))$`),
		regexp.MustCompile(`(?i)^(eur|€|euros?)$`),
	},
	models.FieldDiscontinued: {
		regexp.MustCompile(`(?i)^(discontinued|obsolete|eol|end\s*of\s*life|inactive|status)$`),
		regexp.MustCompile(`(?i)^(available|in\s*stock|active|discontinued\s*(?:flag|indicator))$`),
	},
}

// genericMSRPPatterns match retail-price headers that carry no currency of
// their own; the currency is then detected from the original header text.
var genericMSRPPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(msrp|srp|rrp|list\s*price|retail\s*price|resale\s*price|recommended\s*price|suggested\s*price)$`),
	regexp.MustCompile(`(?i)^(public\s*price|consumer\s*price|end\s*user\s*price|advertised\s*price|catalog\s*price)$`),
}
