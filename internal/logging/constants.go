package logging

// Standardized field names for structured logging. Keeping the keys in
// one place keeps log output consistent and filterable.
const (
	FieldFile         = "file_path"
	FieldFileType     = "file_type"
	FieldSheet        = "sheet"
	FieldManufacturer = "manufacturer"
	FieldTargetField  = "target_field"
	FieldHeader       = "header"
	FieldConfidence   = "confidence"
	FieldRowCount     = "row_count"
	FieldRecordCount  = "record_count"
	FieldDelimiter    = "delimiter"
	FieldEncoding     = "encoding"
	FieldCurrency     = "currency"
	FieldValue        = "value"
	FieldOperation    = "operation"
	FieldStatus       = "status"
	FieldError        = "error"
	FieldUploadID     = "upload_id"
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
)
