// Package crypto stores the CLI's API key in the system keyring, with a
// plain-file fallback for headless machines.
package crypto

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "snipit-cli"
	keyringUser    = "api-key"
)

var (
	// fallbackMode indicates if we're using file-based fallback (headless systems)
	fallbackMode    bool
	fallbackModeMu  sync.RWMutex
	fallbackChecked bool
)

// checkKeyringAvailable tests if system keyring is available
func checkKeyringAvailable() bool {
	fallbackModeMu.Lock()
	defer fallbackModeMu.Unlock()

	if fallbackChecked {
		return !fallbackMode
	}

	testKey := "snipit-keyring-test"
	err := keyring.Set(keyringService, testKey, "test")
	if err != nil {
		fallbackMode = true
		fallbackChecked = true
		return false
	}

	// Clean up test key
	_ = keyring.Delete(keyringService, testKey)
	fallbackChecked = true
	return true
}

// getFallbackPath returns the path for fallback key storage
func getFallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".snipit")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials"), nil
}

// StoreAPIKey persists the API key for later CLI invocations.
func StoreAPIKey(key string) error {
	if checkKeyringAvailable() {
		if err := keyring.Set(keyringService, keyringUser, key); err == nil {
			return nil
		}
	}

	path, err := getFallbackPath()
	if err != nil {
		return fmt.Errorf("failed to resolve fallback path: %w", err)
	}
	return os.WriteFile(path, []byte(key), 0600)
}

// LoadAPIKey returns the stored API key, or "" when none is stored.
func LoadAPIKey() string {
	if checkKeyringAvailable() {
		if key, err := keyring.Get(keyringService, keyringUser); err == nil && key != "" {
			return key
		}
	}

	path, err := getFallbackPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// ClearAPIKey removes the stored API key from both backends.
func ClearAPIKey() error {
	_ = keyring.Delete(keyringService, keyringUser)
	path, err := getFallbackPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
