// Package detect inspects catalog files without converting them.
package detect

import (
	"github.com/spf13/cobra"

	"catalog-csv/cmd/root"
	"catalog-csv/internal/excelparser"
	"catalog-csv/internal/filetype"
	"catalog-csv/internal/manufacturer"
	"catalog-csv/internal/models"
)

var inputFile string

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the format of a catalog file",
	Long: `Detect the format of a catalog file from its content and extension,
and report any extra information available for that format, such as the
sheet names of an Excel workbook or a manufacturer hint taken from the
filename.

Example:
  catalog-csv detect -f pricelist.xlsx`,
	Run: detectFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Catalog file to inspect (required)")
	_ = Cmd.MarkFlagRequired("file")
}

func detectFunc(cmd *cobra.Command, args []string) {
	fileType, err := filetype.Detect(inputFile)
	if err != nil {
		root.Log.Fatalf("Error detecting file type: %v", err)
	}
	root.Log.Infof("Detected file type: %s", fileType)

	if fileType == models.FileTypeExcel {
		sheets, err := excelparser.SheetNames(inputFile)
		if err != nil {
			root.Log.Warnf("Failed to list sheets: %v", err)
		} else {
			for i, name := range sheets {
				root.Log.Infof("Sheet %d: %s", i, name)
			}
		}
	}

	detector := manufacturer.NewDetector(root.Config().Manufacturers)
	if name := detector.DetectFromFilename(inputFile); name != "" {
		root.Log.Infof("Manufacturer hint from filename: %s", name)
	}
}
