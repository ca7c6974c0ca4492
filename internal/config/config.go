// Package config persists the small amount of local state the portal keeps
// between runs: the database URL and the last username. Anything else in the
// file is ignored; a file that cannot be parsed is deleted so the portal
// falls back to first-run provisioning instead of crashing.
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const fileName = "ftc_portal_config.json"

type Config struct {
	DBURL    string `json:"db_url"`
	Username string `json:"username,omitempty"`
}

// Store reads and writes the portal config file.
type Store struct {
	path string
}

// NewStore creates a store at an explicit path, or the default location
// (FTCPORTAL_CONFIG, else ~/.ftcportal/ftc_portal_config.json) when empty.
func NewStore(path string) *Store {
	if path == "" {
		path = defaultPath()
	}
	return &Store{path: path}
}

func defaultPath() string {
	if p := os.Getenv("FTCPORTAL_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fileName
	}
	return filepath.Join(home, ".ftcportal", fileName)
}

// Path returns the location of the config file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config. A missing file yields a zero Config; a corrupt file
// is removed and likewise yields a zero Config.
func (s *Store) Load() (Config, error) {
	var cfg Config
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Warn("discarding corrupt config file", "path", s.path, "err", err)
		os.Remove(s.path)
		return Config{}, nil
	}
	return cfg, nil
}

// Save writes the config, creating the parent directory if needed.
func (s *Store) Save(cfg Config) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
