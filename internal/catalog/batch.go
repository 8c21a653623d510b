package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"catalog-csv/internal/fileutils"
)

// BatchOptions control directory processing.
type BatchOptions struct {
	ParseOptions

	// Recursive walks subdirectories too.
	Recursive bool
	// JSON writes .json output instead of .csv.
	JSON bool
}

// BatchSummary accounts for one directory run.
type BatchSummary struct {
	Processed int
	Failed    int
	Skipped   int
	Outputs   []string
}

// BatchProcess converts every supported catalog file in a directory,
// writing one output file per input into outputDir. Unsupported files
// are skipped, failing files are counted and logged but do not stop
// the run.
func (p *Processor) BatchProcess(inputDir, outputDir string, opts BatchOptions) (*BatchSummary, error) {
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	outExt := ".csv"
	if opts.JSON {
		outExt = ".json"
	}

	summary := &BatchSummary{}
	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !opts.Recursive && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutils.HasSupportedExtension(path) {
			log.WithField("file_path", path).Debug("Skipping unsupported file")
			summary.Skipped++
			return nil
		}

		result, err := p.ProcessFile(path, opts.ParseOptions)
		if err != nil {
			log.WithError(err).WithField("file_path", path).Error("Failed to process catalog file")
			summary.Failed++
			return nil
		}

		outPath := fileutils.OutputPath(path, outputDir, outExt)
		if opts.JSON {
			err = result.SaveJSON(outPath)
		} else {
			err = result.SaveCSV(outPath)
		}
		if err != nil {
			log.WithError(err).WithField("file_path", path).Error("Failed to write output file")
			summary.Failed++
			return nil
		}

		summary.Processed++
		summary.Outputs = append(summary.Outputs, outPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch processing failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"processed": summary.Processed,
		"failed":    summary.Failed,
		"skipped":   summary.Skipped,
	}).Info("Batch processing complete")

	return summary, nil
}
