package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/nikbrunner/bmdash/internal/model"
)

// Storage defines the interface for persisting profiles.
type Storage interface {
	Load() (*model.Store, error)
	Save(store *model.Store) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the store from the JSON file.
// Returns a store with a default profile if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, err
	}

	store.Normalize()
	return &store, nil
}

// Save writes the store to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// ConfigDir returns the application directory: ~/.config/bmdash
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmdash"), nil
}

// OpenStorage opens the storage backend selected by cfg.
// SQLite is used when configured or when its database file already exists,
// otherwise the JSON file.
func OpenStorage(cfg *Config, logger *log.Logger) (Storage, error) {
	dir := cfg.DataDir
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return nil, err
		}
	}
	sqlitePath := filepath.Join(dir, "profiles.db")

	useSQLite := cfg.Backend == BackendSQLite
	if !useSQLite {
		if _, err := os.Stat(sqlitePath); err == nil {
			useSQLite = true
		}
	}

	if useSQLite {
		logger.Debug("opening storage", "backend", BackendSQLite, "path", sqlitePath)
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath := filepath.Join(dir, "profiles.json")
	logger.Debug("opening storage", "backend", BackendJSON, "path", jsonPath)
	return NewJSONStorage(jsonPath), nil
}
