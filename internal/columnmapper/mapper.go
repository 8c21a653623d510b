// Package columnmapper maps source spreadsheet headers onto the canonical
// catalog schema. Matching runs in passes of decreasing confidence: exact
// pattern matches, generic retail-price headers resolved by currency, fuzzy
// similarity, previously learned mappings and finally an optional AI
// suggester.
package columnmapper

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sirupsen/logrus"

	"catalog-csv/internal/models"
	"catalog-csv/internal/priceutils"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	headerSpecials    = regexp.MustCompile(`[_\-.\[\](){}*+?^$|]`)
)

// LearnedStore resolves headers that were mapped in previous runs and
// records new resolutions for the next one.
type LearnedStore interface {
	Lookup(header string) (string, bool)
	Learn(header, field string)
}

// Suggester proposes a target field for a header that no other pass could
// place. Implementations return the chosen field, a confidence in [0,1] and
// an error; an empty field means no suggestion.
type Suggester interface {
	SuggestField(header string, candidates []string) (string, float64, error)
}

type match struct {
	header string
	score  float64
}

// Mapper maps source headers to target fields.
type Mapper struct {
	threshold float64
	store     LearnedStore
	suggester Suggester
}

// NewMapper creates a mapper that accepts matches scoring at or above the
// given confidence threshold.
func NewMapper(threshold float64) *Mapper {
	return &Mapper{threshold: threshold}
}

// SetStore attaches a learned-mapping store. Mappings produced by the
// suggester are recorded in it.
func (m *Mapper) SetStore(store LearnedStore) {
	m.store = store
}

// SetSuggester attaches an AI fallback for headers no other pass can place.
func (m *Mapper) SetSuggester(s Suggester) {
	m.suggester = s
}

// CleanHeader normalizes a header for matching: whitespace is collapsed,
// punctuation commonly found in export headers becomes spaces and the result
// is lowercased.
func CleanHeader(header string) string {
	header = strings.TrimSpace(header)
	header = whitespacePattern.ReplaceAllString(header, " ")
	header = headerSpecials.ReplaceAllString(header, " ")
	header = whitespacePattern.ReplaceAllString(header, " ")
	return strings.TrimSpace(strings.ToLower(header))
}

// MapColumns maps source headers to target fields and returns the mapping
// keyed by target field name. Unmatched target fields are simply absent.
func (m *Mapper) MapColumns(headers []string) map[string]string {
	log.WithField("count", len(headers)).Info("Mapping headers to target fields")

	cleaned := make([]string, len(headers))
	for i, h := range headers {
		cleaned[i] = CleanHeader(h)
	}

	results := make(map[string]match)

	m.applyPatternMatching(cleaned, headers, results)
	m.handleGenericMSRP(cleaned, headers, results)
	m.applyFuzzyMatching(cleaned, headers, results)
	m.applyLearnedMappings(cleaned, headers, results)
	m.applySuggester(cleaned, headers, results)

	mapping := make(map[string]string, len(results))
	for field, mt := range results {
		mapping[field] = mt.header
	}

	log.WithFields(logrus.Fields{
		"mapped": len(mapping),
		"total":  len(models.TargetFields),
	}).Info("Header mapping complete")
	return mapping
}

func (m *Mapper) applyPatternMatching(cleaned, original []string, results map[string]match) {
	for _, field := range models.TargetFields {
		if _, ok := results[field]; ok {
			continue
		}
		for i, header := range cleaned {
			if matchesAny(fieldPatterns[field], header) {
				results[field] = match{header: original[i], score: 1.0}
				break
			}
		}
	}
}

// handleGenericMSRP assigns retail-price headers without an explicit
// currency suffix to the currency-specific MSRP fields, reading the currency
// from the original header text.
func (m *Mapper) handleGenericMSRP(cleaned, original []string, results map[string]match) {
	allMapped := true
	for _, field := range models.CurrencyMSRPFields {
		if _, ok := results[field]; !ok {
			allMapped = false
			break
		}
	}
	if allMapped {
		return
	}

	for i, header := range cleaned {
		if !matchesAny(genericMSRPPatterns, header) {
			continue
		}
		currency, ok := priceutils.DetectCurrency(original[i])
		if !ok {
			continue
		}
		field := models.FieldMSRP + " " + currency
		if _, ok := results[field]; !ok && isTargetField(field) {
			results[field] = match{header: original[i], score: 0.9}
		}
	}
}

// applyFuzzyMatching scores unmapped headers against unmapped fields using
// edit-distance similarity boosted by keyword presence.
func (m *Mapper) applyFuzzyMatching(cleaned, original []string, results map[string]match) {
	for _, field := range models.TargetFields {
		if _, ok := results[field]; ok {
			continue
		}

		keywords := strings.Fields(strings.ToLower(field))
		var best match
		for i, header := range cleaned {
			if header == "" || headerUsed(results, original[i]) {
				continue
			}

			score := similarity(strings.ToLower(field), header)
			for _, kw := range keywords {
				if strings.Contains(header, kw) {
					score += 0.2
				}
			}
			if score > 1.0 {
				score = 1.0
			}
			if score > best.score {
				best = match{header: original[i], score: score}
			}
		}

		if best.header != "" && best.score >= m.threshold {
			results[field] = best
		}
	}
}

func (m *Mapper) applyLearnedMappings(cleaned, original []string, results map[string]match) {
	if m.store == nil {
		return
	}
	for i, header := range cleaned {
		if header == "" || headerUsed(results, original[i]) {
			continue
		}
		field, ok := m.store.Lookup(header)
		if !ok || !isTargetField(field) {
			continue
		}
		if _, taken := results[field]; !taken {
			log.WithFields(logrus.Fields{
				"header":       original[i],
				"target_field": field,
			}).Debug("Mapped header from learned store")
			results[field] = match{header: original[i], score: 1.0}
		}
	}
}

func (m *Mapper) applySuggester(cleaned, original []string, results map[string]match) {
	if m.suggester == nil {
		return
	}

	var unmatched []string
	for _, field := range models.TargetFields {
		if _, ok := results[field]; !ok {
			unmatched = append(unmatched, field)
		}
	}
	if len(unmatched) == 0 {
		return
	}

	for i, header := range cleaned {
		if header == "" || headerUsed(results, original[i]) {
			continue
		}

		field, confidence, err := m.suggester.SuggestField(header, unmatched)
		if err != nil {
			log.WithError(err).WithField("header", original[i]).Warning("AI field suggestion failed")
			continue
		}
		if field == "" || confidence < m.threshold {
			continue
		}
		if _, taken := results[field]; taken || !isTargetField(field) {
			continue
		}

		log.WithFields(logrus.Fields{
			"header":       original[i],
			"target_field": field,
			"confidence":   confidence,
		}).Info("AI fallback mapped header")
		results[field] = match{header: original[i], score: confidence}
		if m.store != nil {
			m.store.Learn(header, field)
		}
	}
}

// similarity is 1 minus the normalized edit distance between two strings.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func headerUsed(results map[string]match, header string) bool {
	for _, mt := range results {
		if mt.header == header {
			return true
		}
	}
	return false
}

func isTargetField(field string) bool {
	for _, f := range models.TargetFields {
		if f == field {
			return true
		}
	}
	return false
}
