// ABOUTME: Bearer token storage for the phishguard CLI
// ABOUTME: Mirrors the credential in memory and in a config-dir file

package token

import (
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed name of the durable token file
const tokenFileName = "phishguard_token"

// Store holds the current bearer credential. Implementations must treat
// an empty token as absent and make Clear a no-op when nothing is stored.
type Store interface {
	// Set stores the token in memory and, when available, durable storage.
	Set(token string)
	// Get returns the current token. The boolean is false when no token
	// is held in either memory or durable storage.
	Get() (string, bool)
	// Clear removes the token from memory and durable storage.
	Clear()
}

// FileStore is a Store backed by a file in the user config directory.
// An empty config dir disables durable storage and the store becomes
// memory-only, which keeps it usable in restricted environments.
type FileStore struct {
	configDir string
	token     string
}

// NewFileStore creates a store persisting under the given config directory
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "phishguard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "phishguard")
}

// tokenFile returns the path to the durable token file
func (s *FileStore) tokenFile() string {
	return filepath.Join(s.configDir, tokenFileName)
}

// Set stores the token in memory and mirrors it to disk.
// Disk write failures are ignored: the in-memory copy still serves the
// current process, it just will not survive a restart.
func (s *FileStore) Set(token string) {
	s.token = token
	if s.configDir == "" {
		return
	}
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return
	}
	os.WriteFile(s.tokenFile(), []byte(token), 0600)
}

// Get returns the in-memory token if set, otherwise reads the durable
// file. The durable value is not promoted back into memory.
func (s *FileStore) Get() (string, bool) {
	if s.token != "" {
		return s.token, true
	}
	if s.configDir == "" {
		return "", false
	}
	data, err := os.ReadFile(s.tokenFile())
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", false
	}
	return tok, true
}

// Clear removes the token from memory and disk. Idempotent.
func (s *FileStore) Clear() {
	s.token = ""
	if s.configDir == "" {
		return
	}
	os.Remove(s.tokenFile())
}
