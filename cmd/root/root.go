// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"catalog-csv/internal/catalog"
	"catalog-csv/internal/columnmapper"
	"catalog-csv/internal/common"
	"catalog-csv/internal/config"
	"catalog-csv/internal/csvparser"
	"catalog-csv/internal/excelparser"
	"catalog-csv/internal/filetype"
	"catalog-csv/internal/fileutils"
	"catalog-csv/internal/manufacturer"
	"catalog-csv/internal/mappingstore"
	"catalog-csv/internal/pdfparser"
	"catalog-csv/internal/priceutils"
	"catalog-csv/internal/server"
	"catalog-csv/internal/textparser"
	"catalog-csv/internal/transform"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Output string
	Debug  bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "catalog-csv",
		Short: "A CLI tool to convert manufacturer catalog files to a standardized CSV format.",
		Long: `catalog-csv converts manufacturer catalog files (CSV, Excel, text and PDF)
into a standardized product CSV, mapping vendor columns onto a fixed schema
and normalizing prices along the way.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to catalog-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			cfg := config.GetGlobalConfig()
			Log = config.Logger
			if SharedFlags.Debug {
				Log.SetLevel(logrus.DebugLevel)
			}

			if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
			common.SetWriteBOM(cfg.CSV.WriteBOM)

			setAllLoggers(Log)
		},
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (or directory for batch)")
	Cmd.PersistentFlags().BoolVar(&SharedFlags.Debug, "debug", false, "Enable debug logging")
}

// Config returns the loaded application configuration.
func Config() *config.Config {
	return config.GetGlobalConfig()
}

// setAllLoggers fans the configured logger out to every package that
// logs.
func setAllLoggers(logger *logrus.Logger) {
	catalog.SetLogger(logger)
	columnmapper.SetLogger(logger)
	common.SetLogger(logger)
	csvparser.SetLogger(logger)
	excelparser.SetLogger(logger)
	filetype.SetLogger(logger)
	fileutils.SetLogger(logger)
	manufacturer.SetLogger(logger)
	mappingstore.SetLogger(logger)
	pdfparser.SetLogger(logger)
	priceutils.SetLogger(logger)
	server.SetLogger(logger)
	textparser.SetLogger(logger)
	transform.SetLogger(logger)
}
