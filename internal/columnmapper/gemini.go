package columnmapper

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"catalog-csv/internal/logging"
)

// GeminiSuggester asks the Gemini API to place a header into the catalog
// schema when every deterministic pass has failed. The client is created
// lazily on first use.
type GeminiSuggester struct {
	apiKey    string
	modelName string
	timeout   time.Duration
	logger    logging.Logger

	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSuggester creates a suggester for the given API key and model.
// A nil logger falls back to the package logger.
func NewGeminiSuggester(apiKey, modelName string, timeout time.Duration, logger logging.Logger) *GeminiSuggester {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(log)
	}
	return &GeminiSuggester{
		apiKey:    apiKey,
		modelName: modelName,
		timeout:   timeout,
		logger:    logger,
	}
}

func (g *GeminiSuggester) ensureClient() error {
	if g.client != nil {
		return nil
	}
	if g.apiKey == "" {
		return fmt.Errorf("gemini API key not set")
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(g.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g.client = client
	g.model = client.GenerativeModel(g.modelName)
	return nil
}

// Close releases the underlying API client.
func (g *GeminiSuggester) Close() error {
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	g.model = nil
	return err
}

// SuggestField implements Suggester.
func (g *GeminiSuggester) SuggestField(header string, candidates []string) (string, float64, error) {
	if err := g.ensureClient(); err != nil {
		g.logger.WithError(err).Warn("AI suggester unavailable",
			logging.Field{Key: logging.FieldHeader, Value: header})
		return "", 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`A product catalog spreadsheet has a column named: %q

Assign this column to exactly one of the following catalog fields, or NONE
if it fits none of them:
%s

Respond in this format:
Field: [the chosen field name or NONE]
Confidence: [a number between 0 and 1]`,
		header,
		strings.Join(candidates, ", "))

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", 0, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", 0, fmt.Errorf("no response from Gemini API")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	field, confidence := parseSuggestion(text, candidates)
	if field != "" {
		g.logger.Info("AI suggested a field mapping",
			logging.Field{Key: logging.FieldHeader, Value: header},
			logging.Field{Key: logging.FieldTargetField, Value: field},
			logging.Field{Key: logging.FieldConfidence, Value: confidence})
	}
	return field, confidence, nil
}

// parseSuggestion extracts the field and confidence lines from the model's
// response. Only answers naming one of the offered candidates are accepted.
func parseSuggestion(response string, candidates []string) (string, float64) {
	var field string
	confidence := 0.0

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Field:"):
			field = strings.TrimSpace(strings.TrimPrefix(line, "Field:"))
		case strings.HasPrefix(line, "Confidence:"):
			if v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "Confidence:")), 64); err == nil {
				confidence = v
			}
		}
	}

	if field == "" || strings.EqualFold(field, "NONE") {
		return "", 0
	}
	for _, c := range candidates {
		if strings.EqualFold(field, c) {
			return c, confidence
		}
	}
	return "", 0
}
