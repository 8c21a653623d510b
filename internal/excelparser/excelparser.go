// Package excelparser reads catalog workbooks (xlsx, xls, xlsm) into a raw
// value table.
package excelparser

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

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

// Options select the worksheet to parse. A non-empty SheetName overrides
// SheetIndex; an out-of-range index falls back to the first sheet.
type Options struct {
	SheetName  string
	SheetIndex int
}

// SheetNames lists the worksheets in a workbook.
func SheetNames(filePath string) ([]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "excel", FilePath: filePath, Err: err}
	}
	defer closeFile(f)

	return f.GetSheetList(), nil
}

// ParseFile reads the selected worksheet into a value table.
func ParseFile(filePath string, opts Options) (models.Table, error) {
	log.WithField("file_path", filePath).Info("Reading Excel file")

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "excel", FilePath: filePath, Err: err}
	}
	defer closeFile(f)

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &parsererror.ParseError{
			Parser: "excel", FilePath: filePath, Err: errors.New("workbook has no sheets"),
		}
	}

	sheet := selectSheet(sheets, opts)
	log.WithField("sheet", sheet).Info("Selected sheet")

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "excel", FilePath: filePath, Err: err}
	}
	if len(rows) == 0 {
		return nil, &parsererror.ParseError{
			Parser: "excel", FilePath: filePath, Err: errors.New("sheet is empty"),
		}
	}

	table := make(models.Table, 0, len(rows))
	for _, row := range rows {
		table = append(table, models.TextRow(row))
	}

	log.WithFields(logrus.Fields{
		"file_path": filePath,
		"sheet":     sheet,
		"row_count": len(table),
	}).Info("Successfully read Excel file")
	return table, nil
}

func selectSheet(sheets []string, opts Options) string {
	if opts.SheetName != "" {
		for _, s := range sheets {
			if s == opts.SheetName {
				return s
			}
		}
		log.WithField("sheet", opts.SheetName).Warning("Sheet name not found, falling back to index")
	}

	index := opts.SheetIndex
	if index < 0 || index >= len(sheets) {
		log.WithField("sheet_index", index).Warning("Sheet index out of bounds, using first sheet")
		index = 0
	}
	return sheets[index]
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.WithError(err).Warning("Failed to close workbook")
	}
}
