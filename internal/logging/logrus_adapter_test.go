package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{name: "DebugText", level: "debug", format: "text"},
		{name: "InfoJSON", level: "info", format: "json"},
		{name: "InvalidLevelFallsBack", level: "nope", format: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			assert.NotNil(t, logger)

			// Chained loggers must be independently usable.
			derived := logger.WithField(FieldFile, "catalog.csv").WithError(assert.AnError)
			assert.NotNil(t, derived)
			derived.Debug("parsed file")
		})
	}
}

func TestNewLogrusAdapterFromLoggerNil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	assert.NotNil(t, logger)
	logger.Info("still works")
}

func TestMockLoggerCapturesChainedFields(t *testing.T) {
	mock := NewMockLogger()

	mock.WithField(FieldHeader, "Item Code").
		WithField(FieldTargetField, "SKU").
		Info("mapped header")

	entries := mock.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "mapped header", entries[0].Message)
	assert.Len(t, entries[0].Fields, 2)
	assert.True(t, mock.HasEntry("INFO", "mapped header"))
}

func TestMockLoggerEntriesByLevel(t *testing.T) {
	mock := NewMockLogger()
	mock.Info("one")
	mock.Warn("two")
	mock.Warn("three")

	assert.Len(t, mock.EntriesByLevel("WARN"), 2)
	assert.Len(t, mock.EntriesByLevel("ERROR"), 0)
}

func TestMockLoggerWithError(t *testing.T) {
	mock := NewMockLogger()
	mock.WithError(assert.AnError).Error("extraction failed")

	entries := mock.EntriesByLevel("ERROR")
	assert.Len(t, entries, 1)
	assert.Equal(t, assert.AnError, entries[0].Error)
}
