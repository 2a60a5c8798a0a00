// Package auth stores the Dappier API key saved by `dappier login`.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quocvuong92/dappier-go/internal/constants"
)

// ErrNoStoredKey is returned when no key has been saved yet
var ErrNoStoredKey = errors.New("no stored API key, please run 'dappier login' first")

// GetKeyPath returns the path where the API key is stored
func GetKeyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", constants.AppName, "api-key"), nil
}

// SaveAPIKey writes the key to disk, readable only by the current user
func SaveAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("refusing to store an empty API key")
	}

	keyPath, err := GetKeyPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(keyPath, []byte(key), 0600); err != nil {
		return fmt.Errorf("failed to write API key: %w", err)
	}

	return nil
}

// LoadAPIKey reads the stored key
func LoadAPIKey() (string, error) {
	keyPath, err := GetKeyPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoStoredKey
		}
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("API key file %s is empty, please run 'dappier login' again", keyPath)
	}

	return key, nil
}

// DeleteAPIKey removes the stored key. Missing files are not an error.
func DeleteAPIKey() error {
	keyPath, err := GetKeyPath()
	if err != nil {
		return err
	}

	if err := os.Remove(keyPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete API key: %w", err)
	}

	return nil
}

// HasStoredKey reports whether a usable key is on disk
func HasStoredKey() bool {
	key, err := LoadAPIKey()
	return err == nil && key != ""
}

// MaskKey keeps the first four characters of a key and hides the rest
func MaskKey(key string) string {
	if len(key) <= 4 {
		return key + "..."
	}
	return key[:4] + "..."
}
