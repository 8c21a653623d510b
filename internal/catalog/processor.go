// Package catalog orchestrates catalog file conversion end to end:
// detect the format, parse it into a raw table, transform the table
// into standardized records and write them out.
package catalog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-csv/internal/columnmapper"
	"catalog-csv/internal/common"
	"catalog-csv/internal/config"
	"catalog-csv/internal/csvparser"
	"catalog-csv/internal/excelparser"
	"catalog-csv/internal/filetype"
	"catalog-csv/internal/fileutils"
	"catalog-csv/internal/logging"
	"catalog-csv/internal/manufacturer"
	"catalog-csv/internal/mappingstore"
	"catalog-csv/internal/models"
	"catalog-csv/internal/parsererror"
	"catalog-csv/internal/pdfparser"
	"catalog-csv/internal/textparser"
	"catalog-csv/internal/transform"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseOptions carry per-file parsing knobs. Sheet selection only
// applies to workbook input.
type ParseOptions struct {
	SheetName  string
	SheetIndex int
}

// Result is the outcome of processing one catalog file.
type Result struct {
	InputFile   string                 `json:"input_file"`
	FileType    string                 `json:"file_type"`
	Headers     []string               `json:"headers"`
	RecordCount int                    `json:"record_count"`
	Records     []models.CatalogRecord `json:"records,omitempty"`
}

// SaveCSV writes the result's records to a CSV file.
func (r *Result) SaveCSV(path string) error {
	return common.WriteRecordsToCSV(r.Records, path)
}

// SaveJSON writes the result's records to a JSON file.
func (r *Result) SaveJSON(path string) error {
	return common.WriteRecordsToJSON(r.Records, path)
}

// Processor converts catalog files into standardized records. It holds
// the configured mapping pipeline, the learned-mapping store and the
// optional AI client, so one Processor can serve many files.
type Processor struct {
	cfg         *config.Config
	transformer *transform.Transformer
	store       *mappingstore.Store
	suggester   *columnmapper.GeminiSuggester
}

// NewProcessor wires a Processor from the application config.
func NewProcessor(cfg *config.Config) *Processor {
	mapper := columnmapper.NewMapper(cfg.Parser.ConfidenceThreshold)

	var store *mappingstore.Store
	if cfg.Mapping.StorePath != "" {
		store = mappingstore.NewStore(cfg.Mapping.StorePath)
		if err := store.Load(); err != nil {
			log.WithError(err).Warning("Could not load learned header mappings")
		}
		mapper.SetStore(store)
	}

	var suggester *columnmapper.GeminiSuggester
	if cfg.AI.Enabled {
		suggester = columnmapper.NewGeminiSuggester(
			cfg.AI.APIKey,
			cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
			logging.NewLogrusAdapterFromLogger(log),
		)
		mapper.SetSuggester(suggester)
	}

	detector := manufacturer.NewDetector(cfg.Manufacturers)

	return &Processor{
		cfg:         cfg,
		transformer: transform.New(cfg.Parser.MaxHeaderRows, mapper, detector),
		store:       store,
		suggester:   suggester,
	}
}

// ProcessFile converts one catalog file into standardized records.
func (p *Processor) ProcessFile(filePath string, opts ParseOptions) (*Result, error) {
	if !fileutils.FileExists(filePath) {
		return nil, &parsererror.ValidationError{
			FilePath: filePath,
			Reason:   "file does not exist or is not a regular file",
		}
	}

	fileType, err := filetype.Detect(filePath)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"file_path": filePath,
		"file_type": fileType,
	}).Info("Processing catalog file")

	table, err := parseTable(filePath, fileType, opts)
	if err != nil {
		return nil, err
	}

	transformed, err := p.transformer.Transform(table, filepath.Base(filePath))
	if err != nil {
		return nil, err
	}

	records := transformed.Records()
	log.WithFields(logrus.Fields{
		"file_path":    filePath,
		"record_count": len(records),
	}).Info("Catalog file processed")

	return &Result{
		InputFile:   filePath,
		FileType:    fileType,
		Headers:     transformed.Headers,
		RecordCount: len(records),
		Records:     records,
	}, nil
}

// Close persists learned mappings and releases the AI client. When
// auto-learn is disabled, mappings picked up during this run are
// discarded instead of saved.
func (p *Processor) Close() error {
	var firstErr error
	if p.store != nil && p.cfg.Mapping.AutoLearn {
		if err := p.store.Save(); err != nil {
			firstErr = err
		}
	}
	if p.suggester != nil {
		if err := p.suggester.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// parseTable dispatches a file to the parser for its detected type.
func parseTable(filePath, fileType string, opts ParseOptions) (models.Table, error) {
	switch fileType {
	case models.FileTypeCSV:
		return csvparser.ParseFile(filePath)
	case models.FileTypeExcel:
		return excelparser.ParseFile(filePath, excelparser.Options{
			SheetName:  opts.SheetName,
			SheetIndex: opts.SheetIndex,
		})
	case models.FileTypeText:
		return textparser.ParseFile(filePath)
	case models.FileTypePDF:
		return pdfparser.ParseFile(filePath)
	default:
		return nil, fmt.Errorf("no parser for file type: %s", fileType)
	}
}
