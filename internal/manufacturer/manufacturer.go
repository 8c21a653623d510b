// Package manufacturer detects manufacturer names from catalog filenames and
// row data. Filename matches are the strongest signal; data matches are
// counted by frequency and used as a fallback.
package manufacturer

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"catalog-csv/internal/models"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var separatorPattern = regexp.MustCompile(`[_\-.()]`)

var titleCaser = cases.Title(language.English)

// Candidate is a manufacturer name found in row data with its occurrence
// count.
type Candidate struct {
	Name  string
	Count int
}

// Detector matches a configurable list of manufacturer names against
// filenames and catalog rows.
type Detector struct {
	manufacturers []string
	wordPatterns  map[string]*regexp.Regexp
}

// NewDetector builds a detector seeded with the common manufacturer list
// plus any additional names from configuration. Names are matched
// case-insensitively.
func NewDetector(additional []string) *Detector {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, m := range models.CommonManufacturers {
		add(m)
	}
	for _, m := range additional {
		add(m)
	}

	patterns := make(map[string]*regexp.Regexp, len(names))
	for _, name := range names {
		patterns[name] = regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(name) + `(\s|$)`)
	}

	log.WithField("count", len(names)).Debug("Initialized manufacturer detector")
	return &Detector{manufacturers: names, wordPatterns: patterns}
}

// DetectFromFilename returns the manufacturer named in the file's base name,
// or "" when none matches. Separators in the name are treated as spaces and
// matches must cover whole words.
func (d *Detector) DetectFromFilename(filename string) string {
	if filename == "" {
		return ""
	}

	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	normalized := separatorPattern.ReplaceAllString(strings.ToLower(base), " ")

	for _, name := range d.manufacturers {
		if d.wordPatterns[name].MatchString(normalized) {
			log.WithField("manufacturer", name).Info("Detected manufacturer from filename")
			return titleCaser.String(name)
		}
	}

	// Multi-word names may be split across separators in the filename.
	words := strings.Fields(normalized)
	for _, name := range d.manufacturers {
		parts := strings.Fields(name)
		if len(parts) < 2 {
			continue
		}
		for i := 0; i+len(parts) <= len(words); i++ {
			if equalSlices(words[i:i+len(parts)], parts) {
				log.WithField("manufacturer", name).Info("Detected multi-word manufacturer from filename")
				return titleCaser.String(name)
			}
		}
	}

	log.WithField("file", filename).Debug("No manufacturer detected from filename")
	return ""
}

// DetectFromData scans the Manufacturer and description fields of each row
// and returns the candidates ordered by how often they appear.
func (d *Detector) DetectFromData(rows []models.Row) []Candidate {
	counts := make(map[string]int)

	fields := []string{
		models.FieldManufacturer,
		models.FieldShortDescription,
		models.FieldLongDescription,
	}
	for _, row := range rows {
		for _, field := range fields {
			text, ok := row.Get(field).Str()
			if !ok || text == "" {
				continue
			}
			lower := strings.ToLower(text)
			for _, name := range d.manufacturers {
				if strings.Contains(lower, name) {
					counts[name]++
				}
			}
		}
	}

	candidates := make([]Candidate, 0, len(counts))
	for name, count := range counts {
		candidates = append(candidates, Candidate{Name: name, Count: count})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Count != candidates[j].Count {
			return candidates[i].Count > candidates[j].Count
		}
		return candidates[i].Name < candidates[j].Name
	})

	if len(candidates) > 0 {
		log.WithField("candidates", len(candidates)).Info("Detected manufacturers from data")
	}
	return candidates
}

// MostLikely combines both signals: a filename match wins outright, otherwise
// the most frequent data candidate is returned. Empty string means no match.
func (d *Detector) MostLikely(rows []models.Row, filename string) string {
	if name := d.DetectFromFilename(filename); name != "" {
		return name
	}
	if candidates := d.DetectFromData(rows); len(candidates) > 0 {
		return titleCaser.String(candidates[0].Name)
	}
	return ""
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
