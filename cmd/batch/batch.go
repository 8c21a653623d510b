// Package batch handles batch processing of catalog directories.
package batch

import (
	"github.com/spf13/cobra"

	"catalog-csv/cmd/root"
	"catalog-csv/internal/catalog"
)

var (
	inputDir  string
	recursive bool
	jsonOut   bool
	sheetName string
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every catalog file in a directory",
	Long: `Convert all supported catalog files found in a directory, writing one
output file per input into the output directory. Files that fail to
convert are logged and skipped without stopping the run.

Example:
  catalog-csv batch -d catalogs/ -o converted/ -r`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "", "Input directory containing catalog files (required)")
	Cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recurse into subdirectories")
	Cmd.Flags().BoolVar(&jsonOut, "json", false, "Write JSON output instead of CSV")
	Cmd.Flags().StringVar(&sheetName, "sheet-name", "", "Excel sheet to parse, by name")
	_ = Cmd.MarkFlagRequired("dir")
}

func batchFunc(cmd *cobra.Command, args []string) {
	outputDir := root.SharedFlags.Output
	if outputDir == "" {
		root.Log.Fatal("An output directory is required (-o)")
	}

	root.Log.Infof("Batch converting catalog files from %s to %s", inputDir, outputDir)

	processor := catalog.NewProcessor(root.Config())
	defer func() {
		if err := processor.Close(); err != nil {
			root.Log.Warnf("Failed to save learned mappings: %v", err)
		}
	}()

	summary, err := processor.BatchProcess(inputDir, outputDir, catalog.BatchOptions{
		ParseOptions: catalog.ParseOptions{SheetName: sheetName},
		Recursive:    recursive,
		JSON:         jsonOut,
	})
	if err != nil {
		root.Log.Fatalf("Error during batch conversion: %v", err)
	}

	root.Log.Infof("Batch conversion completed: %d processed, %d failed, %d skipped",
		summary.Processed, summary.Failed, summary.Skipped)
}
