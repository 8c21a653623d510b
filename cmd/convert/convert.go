// Package convert implements single-file catalog conversion.
package convert

import (
	"github.com/spf13/cobra"

	"catalog-csv/cmd/root"
	"catalog-csv/internal/catalog"
	"catalog-csv/internal/fileutils"
)

var (
	inputFile  string
	sheetName  string
	sheetIndex int
	jsonOut    bool
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a catalog file to the standardized format",
	Long: `Convert one catalog file (CSV, Excel, text or PDF) into the standardized
product schema. The output file lands next to the input unless -o is given.

Example:
  catalog-csv convert -f supplier_catalog.xlsx -o out/catalog.csv`,
	Run: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Input catalog file (required)")
	Cmd.Flags().StringVar(&sheetName, "sheet-name", "", "Excel sheet to parse, by name")
	Cmd.Flags().IntVar(&sheetIndex, "sheet-index", 0, "Excel sheet to parse, by position")
	Cmd.Flags().BoolVar(&jsonOut, "json", false, "Write JSON output instead of CSV")
	_ = Cmd.MarkFlagRequired("file")
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Infof("Converting catalog file: %s", inputFile)

	processor := catalog.NewProcessor(root.Config())
	defer func() {
		if err := processor.Close(); err != nil {
			root.Log.Warnf("Failed to save learned mappings: %v", err)
		}
	}()

	result, err := processor.ProcessFile(inputFile, catalog.ParseOptions{
		SheetName:  sheetName,
		SheetIndex: sheetIndex,
	})
	if err != nil {
		root.Log.Fatalf("Error converting catalog file: %v", err)
	}

	outPath := outputPath()
	if jsonOut {
		err = result.SaveJSON(outPath)
	} else {
		err = result.SaveCSV(outPath)
	}
	if err != nil {
		root.Log.Fatalf("Error writing output: %v", err)
	}

	root.Log.Infof("Converted %d records from %s to %s", result.RecordCount, inputFile, outPath)
}

// outputPath resolves the output location: an explicit file path wins,
// an explicit directory gets the derived file name, and by default the
// output sits next to the input.
func outputPath() string {
	ext := ".csv"
	if jsonOut {
		ext = ".json"
	}

	out := root.SharedFlags.Output
	switch {
	case out == "":
		return fileutils.OutputPath(inputFile, "", ext)
	case fileutils.DirectoryExists(out):
		return fileutils.OutputPath(inputFile, out, ext)
	default:
		return out
	}
}
