// Package keystore provides encrypted storage for API keys.
package keystore

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// Keystore defines the interface for secure key storage.
type Keystore interface {
	// Set stores a key-value pair.
	Set(name, value string) error
	// Get retrieves a value by name. Returns *ErrKeyNotFound if absent.
	Get(name string) (string, error)
	// Delete removes a key by name.
	Delete(name string) error
	// List returns all stored key names.
	List() ([]string, error)
}

// ErrKeyNotFound is returned when a requested key does not exist.
type ErrKeyNotFound struct {
	Name string
}

func (e *ErrKeyNotFound) Error() string {
	return "key not found: " + e.Name
}

// MasterKeyEnvVar names the environment variable holding the master key.
const MasterKeyEnvVar = "CHATSTREAM_MASTER_KEY"

// MasterKeySource supplies the secret that keystore encryption keys are
// derived from.
type MasterKeySource interface {
	GetMasterKey() ([]byte, error)
}

// ErrNoMasterKey is returned by EnvMasterKey when the variable is unset.
var ErrNoMasterKey = errors.New("keystore: " + MasterKeyEnvVar + " not set")

// EnvMasterKey reads the master key from CHATSTREAM_MASTER_KEY.
type EnvMasterKey struct{}

// GetMasterKey implements MasterKeySource.
func (EnvMasterKey) GetMasterKey() ([]byte, error) {
	v := os.Getenv(MasterKeyEnvVar)
	if v == "" {
		return nil, ErrNoMasterKey
	}
	return []byte(v), nil
}

// MachineMasterKey derives a master key from the host and user names.
// It is predictable; set CHATSTREAM_MASTER_KEY for real protection.
type MachineMasterKey struct{}

// GetMasterKey implements MasterKeySource.
func (MachineMasterKey) GetMasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	sum := sha256.Sum256([]byte(hostname + ":" + username + ":chatstream-keystore"))
	return sum[:], nil
}

// DefaultMasterKeySource prefers the environment and falls back to the
// machine-derived key.
func DefaultMasterKeySource() MasterKeySource {
	if os.Getenv(MasterKeyEnvVar) != "" {
		return EnvMasterKey{}
	}
	return MachineMasterKey{}
}

// DefaultKeystorePath returns the default keystore file path.
// - macOS/Linux: ~/.chatstream/keys.enc
// - Windows: %USERPROFILE%\.chatstream\keys.enc
func DefaultKeystorePath() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "keys.enc"
	}

	return filepath.Join(homeDir, ".chatstream", "keys.enc")
}

// NewKeystore opens the default keystore with the default master key source.
func NewKeystore() (Keystore, error) {
	return NewFileKeystore(DefaultKeystorePath(), DefaultMasterKeySource())
}
