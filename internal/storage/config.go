package storage

import (
	"fmt"
	"path/filepath"

	"sketchnotes/internal/domain"
)

// Type selects the driver behind the storage backend.
type Type = string

const (
	TypeDir      Type = "fs"
	TypeSQLite   Type = "sqlite"
	TypeMySQL    Type = "mysql"
	TypePostgres Type = "postgres"
	TypeMongoDB  Type = "mongodb"
	TypeMemory   Type = "memory"
)

// Config is the storage section of the application config.
type Config struct {
	Type Type `yaml:"type" default:"fs" validate:"oneof=fs sqlite mysql postgres mongodb memory"`

	// fs: notes root directory; sqlite: database file.
	Path string `yaml:"path"`

	// mysql / postgres / mongodb
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	SSLMode  string `yaml:"ssl-mode"`
	// PasswordSource is "env" or "keychain"; the password itself never lives in the file.
	PasswordSource string `yaml:"password-source" default:"env" validate:"oneof=env keychain"`
}

// Open builds the driver selected by cfg. dataDir resolves relative or
// empty paths for the embedded drivers.
func Open(cfg Config, dataDir, password string) (domain.NoteStore, error) {
	switch cfg.Type {
	case TypeDir, "":
		return NewDirStore(resolvePath(dataDir, cfg.Path, "notes"))
	case TypeSQLite:
		return OpenSQLite(resolvePath(dataDir, cfg.Path, "notes.db"))
	case TypeMySQL:
		return OpenMySQL(cfg, password)
	case TypePostgres:
		return OpenPostgres(cfg, password)
	case TypeMongoDB:
		return OpenMongo(cfg, password)
	case TypeMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// NeedsPassword reports whether the driver authenticates against a server.
func NeedsPassword(t Type) bool {
	return t == TypeMySQL || t == TypePostgres || t == TypeMongoDB
}

func resolvePath(dataDir, p, fallback string) string {
	if p == "" {
		return filepath.Join(dataDir, fallback)
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dataDir, p)
}
