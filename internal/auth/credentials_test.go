package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return dir
}

func TestGetKeyPath(t *testing.T) {
	home := useTempHome(t)

	path, err := GetKeyPath()
	if err != nil {
		t.Fatalf("GetKeyPath() unexpected error: %v", err)
	}

	want := filepath.Join(home, ".local", "share", "dappier", "api-key")
	if path != want {
		t.Errorf("GetKeyPath() = %q, want %q", path, want)
	}
}

func TestSaveAndLoadAPIKey(t *testing.T) {
	useTempHome(t)

	if err := SaveAPIKey("  ak_test_123\n"); err != nil {
		t.Fatalf("SaveAPIKey() unexpected error: %v", err)
	}

	loaded, err := LoadAPIKey()
	if err != nil {
		t.Fatalf("LoadAPIKey() unexpected error: %v", err)
	}
	if loaded != "ak_test_123" {
		t.Errorf("LoadAPIKey() = %q, want %q", loaded, "ak_test_123")
	}
	if !HasStoredKey() {
		t.Error("HasStoredKey() = false after save")
	}

	path, _ := GetKeyPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("key file permissions = %o, want 600", perm)
	}
}

func TestSaveAPIKey_Empty(t *testing.T) {
	useTempHome(t)

	if err := SaveAPIKey("   "); err == nil {
		t.Error("SaveAPIKey() should reject an empty key")
	}
}

func TestLoadAPIKey_NotExists(t *testing.T) {
	useTempHome(t)

	_, err := LoadAPIKey()
	if !errors.Is(err, ErrNoStoredKey) {
		t.Errorf("LoadAPIKey() error = %v, want ErrNoStoredKey", err)
	}
	if HasStoredKey() {
		t.Error("HasStoredKey() = true with no key file")
	}
}

func TestLoadAPIKey_EmptyFile(t *testing.T) {
	useTempHome(t)

	path, _ := GetKeyPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAPIKey()
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("LoadAPIKey() error = %v, want empty file error", err)
	}
}

func TestDeleteAPIKey(t *testing.T) {
	useTempHome(t)

	if err := SaveAPIKey("ak_test"); err != nil {
		t.Fatalf("SaveAPIKey() setup error: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey() unexpected error: %v", err)
	}
	if HasStoredKey() {
		t.Error("key still present after DeleteAPIKey()")
	}

	// Deleting twice is fine
	if err := DeleteAPIKey(); err != nil {
		t.Errorf("second DeleteAPIKey() error = %v", err)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"test_api_key", "test..."},
		{"abcd", "abcd..."},
		{"ab", "ab..."},
		{"", "..."},
	}
	for _, tt := range tests {
		if got := MaskKey(tt.key); got != tt.want {
			t.Errorf("MaskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
