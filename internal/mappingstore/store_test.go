package mappingstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-csv/internal/mappingstore"
)

func TestLoadMissingFile(t *testing.T) {
	s := mappingstore.NewStore(filepath.Join(t.TempDir(), "mappings.yaml"))
	assert.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())
}

func TestLearnLookupSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mappings.yaml")
	s := mappingstore.NewStore(path)
	require.NoError(t, s.Load())

	s.Learn("Artikelnummer", "SKU")
	s.Learn("  Preis  ", "MSRP EUR")

	field, ok := s.Lookup("artikelnummer")
	assert.True(t, ok)
	assert.Equal(t, "SKU", field)

	_, ok = s.Lookup("unknown header")
	assert.False(t, ok)

	require.NoError(t, s.Save())

	// A fresh store should read the same mappings back.
	reloaded := mappingstore.NewStore(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Len())
	field, ok = reloaded.Lookup("preis")
	assert.True(t, ok)
	assert.Equal(t, "MSRP EUR", field)
}

func TestSaveSkipsWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	s := mappingstore.NewStore(path)
	require.NoError(t, s.Save())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadDirectFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("item code: SKU\nprice gbp: MSRP GBP\n"), 0600))

	s := mappingstore.NewStore(path)
	require.NoError(t, s.Load())
	field, ok := s.Lookup("item code")
	assert.True(t, ok)
	assert.Equal(t, "SKU", field)
}

func TestLoadWrappedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	content := "mappings:\n  item code: SKU\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s := mappingstore.NewStore(path)
	require.NoError(t, s.Load())
	assert.Equal(t, 1, s.Len())
}

func TestLearnIgnoresEmpty(t *testing.T) {
	s := mappingstore.NewStore(filepath.Join(t.TempDir(), "mappings.yaml"))
	s.Learn("", "SKU")
	s.Learn("header", "")
	assert.Equal(t, 0, s.Len())
}
