package core

import (
	"github.com/EmundoT/gate-check/internal/types"
)

// ConfigStore handles gates.yml I/O operations
type ConfigStore interface {
	Load() (types.Config, error)
	Save(cfg types.Config) error
	Path() string
	Exists() bool
}

// FileConfigStore implements ConfigStore using the filesystem
type FileConfigStore struct {
	store *YAMLStore[types.Config]
}

// Compile-time interface satisfaction check.
var _ ConfigStore = (*FileConfigStore)(nil)

// NewFileConfigStore creates a ConfigStore rooted at the project
// directory. A missing gates.yml loads as the zero config, in which
// every registered gate defaults to enabled.
func NewFileConfigStore(rootDir string) *FileConfigStore {
	return &FileConfigStore{
		store: NewYAMLStore[types.Config](rootDir, ConfigFile, true),
	}
}

// Path returns the config file path
func (s *FileConfigStore) Path() string {
	return s.store.Path()
}

// Exists reports whether gates.yml is present.
func (s *FileConfigStore) Exists() bool {
	return s.store.Exists()
}

// Load reads and parses gates.yml
func (s *FileConfigStore) Load() (types.Config, error) {
	return s.store.Load()
}

// Save writes gates.yml
func (s *FileConfigStore) Save(cfg types.Config) error {
	return s.store.Save(cfg)
}
