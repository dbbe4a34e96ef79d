package secret

import (
	"fmt"
	"os"
	"strings"
)

const envPrefix = "SKETCHNOTES_"

// EnvStore reads secrets from SKETCHNOTES_<KEY> environment variables,
// with the key upper-cased and dashes turned into underscores.
// PasswordKey maps to SKETCHNOTES_STORAGE_PASSWORD.
type EnvStore struct {
	lookup func(string) (string, bool)
}

func NewEnvStore() *EnvStore {
	return &EnvStore{lookup: os.LookupEnv}
}

func envName(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Set only affects the current process.
func (e *EnvStore) Set(key string, value []byte) error {
	if err := os.Setenv(envName(key), string(value)); err != nil {
		return fmt.Errorf("env set: %w", err)
	}
	return nil
}

// Get returns an empty slice and nil error when the variable is unset.
func (e *EnvStore) Get(key string) ([]byte, error) {
	v, ok := e.lookup(envName(key))
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (e *EnvStore) Delete(key string) error {
	return os.Unsetenv(envName(key))
}
