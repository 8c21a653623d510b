package columnmapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"catalog-csv/internal/logging"
)

func TestParseSuggestion(t *testing.T) {
	candidates := []string{"SKU", "Short Description", "MSRP GBP"}

	tests := []struct {
		name       string
		response   string
		wantField  string
		wantConfid float64
	}{
		{
			name:       "WellFormed",
			response:   "Field: SKU\nConfidence: 0.92",
			wantField:  "SKU",
			wantConfid: 0.92,
		},
		{
			name:       "CaseInsensitiveField",
			response:   "Field: msrp gbp\nConfidence: 0.8",
			wantField:  "MSRP GBP",
			wantConfid: 0.8,
		},
		{
			name:      "None",
			response:  "Field: NONE\nConfidence: 0.9",
			wantField: "",
		},
		{
			name:      "NotACandidate",
			response:  "Field: Trade Price\nConfidence: 0.9",
			wantField: "",
		},
		{
			name:      "MissingFieldLine",
			response:  "I think this is probably a product code.",
			wantField: "",
		},
		{
			name:       "UnparseableConfidence",
			response:   "Field: SKU\nConfidence: high",
			wantField:  "SKU",
			wantConfid: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, confidence := parseSuggestion(tt.response, candidates)
			assert.Equal(t, tt.wantField, field)
			assert.InDelta(t, tt.wantConfid, confidence, 1e-9)
		})
	}
}

func TestSuggestFieldWithoutAPIKey(t *testing.T) {
	mock := logging.NewMockLogger()
	sg := NewGeminiSuggester("", "gemini-2.0-flash", time.Second, mock)

	_, _, err := sg.SuggestField("Art.Nr.", []string{"SKU"})
	assert.Error(t, err)
	assert.True(t, mock.HasEntry("WARN", "AI suggester unavailable"))

	entries := mock.EntriesByLevel("WARN")
	assert.Len(t, entries, 1)
	assert.Error(t, entries[0].Error)
}

func TestGeminiSuggesterDefaultLogger(t *testing.T) {
	sg := NewGeminiSuggester("key", "gemini-2.0-flash", time.Second, nil)
	assert.NotNil(t, sg.logger)
	assert.NoError(t, sg.Close())
}
