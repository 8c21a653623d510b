package root_test

import (
	"testing"

	"catalog-csv/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "catalog-csv", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "convert manufacturer catalog files")
	assert.Contains(t, root.Cmd.Long, "standardized product CSV")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()

	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	if assert.NotNil(t, outputFlag) {
		assert.Equal(t, "o", outputFlag.Shorthand)
	}

	debugFlag := root.Cmd.PersistentFlags().Lookup("debug")
	assert.NotNil(t, debugFlag)
}
