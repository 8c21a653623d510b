// Package mappingstore persists learned header-to-field mappings so that a
// header resolved once, by whatever means, maps instantly on the next run.
package mappingstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"catalog-csv/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// mappingsFile is the on-disk YAML shape.
type mappingsFile struct {
	Mappings map[string]string `yaml:"mappings"`
}

// Store holds learned mappings from cleaned header text to target field
// names, backed by a YAML file. All methods are safe for concurrent use.
type Store struct {
	filePath string

	mu       sync.RWMutex
	mappings map[string]string
	dirty    bool
}

// NewStore creates a store backed by the given YAML file. The file does not
// need to exist yet.
func NewStore(filePath string) *Store {
	return &Store{
		filePath: filePath,
		mappings: make(map[string]string),
	}
}

// Load reads the mappings file. A missing file is not an error; the store
// simply starts empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file_path", s.filePath).Debug("Mappings file not found, starting empty")
			return nil
		}
		return fmt.Errorf("error reading mappings file: %w", err)
	}

	var wrapped mappingsFile
	if err := yaml.Unmarshal(data, &wrapped); err == nil && wrapped.Mappings != nil {
		s.replace(wrapped.Mappings)
		log.WithField("count", len(wrapped.Mappings)).Debug("Loaded learned mappings")
		return nil
	}

	// Older files store the map directly without the top-level key.
	direct := make(map[string]string)
	if err := yaml.Unmarshal(data, &direct); err != nil {
		return fmt.Errorf("error parsing mappings file: %w", err)
	}
	s.replace(direct)
	log.WithField("count", len(direct)).Debug("Loaded learned mappings (direct format)")
	return nil
}

func (s *Store) replace(m map[string]string) {
	cleaned := make(map[string]string, len(m))
	for header, field := range m {
		cleaned[strings.ToLower(strings.TrimSpace(header))] = field
	}
	s.mu.Lock()
	s.mappings = cleaned
	s.dirty = false
	s.mu.Unlock()
}

// Lookup returns the target field learned for a cleaned header, if any.
func (s *Store) Lookup(header string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	field, ok := s.mappings[strings.ToLower(strings.TrimSpace(header))]
	return field, ok
}

// Learn records a header-to-field mapping. The store is marked dirty until
// the next Save.
func (s *Store) Learn(header, field string) {
	key := strings.ToLower(strings.TrimSpace(header))
	if key == "" || field == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.mappings[key]; ok && existing == field {
		return
	}
	s.mappings[key] = field
	s.dirty = true
}

// Len returns the number of learned mappings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}

// Save writes the mappings to disk if anything changed since the last
// Load or Save.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(mappingsFile{Mappings: s.mappings})
	if err != nil {
		return fmt.Errorf("error marshaling mappings: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing mappings file: %w", err)
	}

	s.dirty = false
	log.WithFields(logrus.Fields{
		"count":     len(s.mappings),
		"file_path": s.filePath,
	}).Debug("Saved learned mappings")
	return nil
}
