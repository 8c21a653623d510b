package batch_test

import (
	"testing"

	"catalog-csv/cmd/batch"

	"github.com/stretchr/testify/assert"
)

func TestBatchCommand_Metadata(t *testing.T) {
	assert.Equal(t, "batch", batch.Cmd.Use)
	assert.Contains(t, batch.Cmd.Short, "every catalog file")
	assert.NotNil(t, batch.Cmd.Run)
}

func TestBatchCommand_Flags(t *testing.T) {
	dirFlag := batch.Cmd.Flags().Lookup("dir")
	if assert.NotNil(t, dirFlag) {
		assert.Equal(t, "d", dirFlag.Shorthand)
	}

	recursiveFlag := batch.Cmd.Flags().Lookup("recursive")
	if assert.NotNil(t, recursiveFlag) {
		assert.Equal(t, "r", recursiveFlag.Shorthand)
	}

	assert.NotNil(t, batch.Cmd.Flags().Lookup("json"))
	assert.NotNil(t, batch.Cmd.Flags().Lookup("sheet-name"))
}

func TestBatchCommand_Example(t *testing.T) {
	assert.Contains(t, batch.Cmd.Long, "Example")
	assert.Contains(t, batch.Cmd.Long, "batch -d")
}
