package secret

import "fmt"

// SecretStore provides a pluggable interface for storing sensitive data
// such as the storage server password. Implementations: macOS Keychain and
// environment variables.
type SecretStore interface {
	// Set stores a secret value under the given key.
	Set(key string, value []byte) error

	// Get retrieves the secret value for the given key.
	// Returns empty slice and nil error if key does not exist.
	Get(key string) ([]byte, error)

	// Delete removes the secret for the given key.
	Delete(key string) error
}

// PasswordKey is the key the storage password is stored under.
const PasswordKey = "storage-password"

// New returns the store for a configured password source.
func New(source string) (SecretStore, error) {
	switch source {
	case "", "env":
		return NewEnvStore(), nil
	case "keychain":
		return NewKeychainStore(), nil
	default:
		return nil, fmt.Errorf("unknown password source: %s", source)
	}
}
