package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kndndrj/go-arango/core"
)

const (
	DefaultURL      = "http://localhost:8529"
	DefaultLogLevel = "info"

	historyDirName  = "arangoq"
	historyFileName = "history.db"
)

var ErrNoURL = errors.New("connection url is empty")

// Config is the client configuration file.
type Config struct {
	Connection Connection `koanf:"connection"`
	Logging    Logging    `koanf:"logging"`
	History    History    `koanf:"history"`
}

// Connection values may use the {{ env }}, {{ file }} and {{ exec }}
// template functions. They are expanded when the connection is opened.
type Connection struct {
	Name         string `koanf:"name"`
	URL          string `koanf:"url"`
	Database     string `koanf:"database"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	DebugHeaders bool   `koanf:"debug_headers"`
}

type Logging struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type History struct {
	Disabled bool   `koanf:"disabled"`
	Path     string `koanf:"path"`
}

func defaults() map[string]any {
	return map[string]any{
		"connection.url":      DefaultURL,
		"connection.database": core.DefaultDatabase,
		"logging.level":       DefaultLogLevel,
		"history.path":        defaultHistoryPath(),
	}
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, historyDirName, historyFileName)
}

// Load reads the TOML file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("k.Set: %w", err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("k.Load: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("k.Unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Connection.URL == "" {
		return ErrNoURL
	}
	return nil
}

// ConnectionParams converts the connection section. Templates are left
// unexpanded.
func (c *Config) ConnectionParams() *core.ConnectionParams {
	return &core.ConnectionParams{
		Name:         c.Connection.Name,
		URL:          c.Connection.URL,
		Database:     c.Connection.Database,
		Username:     c.Connection.Username,
		Password:     c.Connection.Password,
		DebugHeaders: c.Connection.DebugHeaders,
	}
}
