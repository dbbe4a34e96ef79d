// Package config loads the YAML application config.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"sketchnotes/internal/logger"
	"sketchnotes/internal/storage"
	"sketchnotes/internal/validate"
)

// AppConfig is the whole application config.
type AppConfig struct {
	File    string         `yaml:"-"`
	DataDir string         `yaml:"data-dir"`
	Storage storage.Config `yaml:"storage"`
	Log     logger.Config  `yaml:"log"`
	Watch   WatchConfig    `yaml:"watch"`
}

// WatchConfig controls refreshing the note list on external changes.
// Only the fs storage type is watched.
type WatchConfig struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// DefaultDataDir is ~/.local/share/sketchnotes.
func DefaultDataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", "sketchnotes")
}

// DefaultFile is the config path used when none is given.
func DefaultFile() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load reads the config at f. A missing file yields the defaults.
// Defaults are applied before decoding only, so explicit false values in
// the file are kept.
func Load(f string) (*AppConfig, error) {
	if f == "" {
		f = DefaultFile()
	}
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, err
	}

	c := &AppConfig{File: filepath.Clean(realpath)}
	if err := defaults.Set(c); err != nil {
		return nil, pkgerrors.Wrap(err, "set default config failed")
	}

	file, err := os.ReadFile(c.File)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, pkgerrors.Wrap(err, "read config file failed")
	default:
		if err := yaml.Unmarshal(file, c); err != nil {
			return nil, pkgerrors.Wrap(err, "parse config file failed")
		}
	}

	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.Storage.Type == "" {
		c.Storage.Type = storage.TypeDir
	}
	if err := validate.Struct(c); err != nil {
		return nil, pkgerrors.Wrap(err, "invalid config")
	}
	return c, nil
}

// Save writes the config back to its file.
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(err, "marshal config failed")
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0755); err != nil {
		return pkgerrors.Wrap(err, "create config dir failed")
	}
	if err := os.WriteFile(c.File, data, 0644); err != nil {
		return pkgerrors.Wrap(err, "write config file failed")
	}
	return nil
}
