// catalog-csv is a command line tool that converts supplier catalog and
// price list files (CSV, Excel, text, PDF) into a normalized CSV or JSON
// product schema.
package main

import (
	"fmt"
	"os"

	"catalog-csv/cmd/batch"
	"catalog-csv/cmd/convert"
	"catalog-csv/cmd/detect"
	"catalog-csv/cmd/root"
	"catalog-csv/cmd/serve"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
	root.Cmd.AddCommand(detect.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
