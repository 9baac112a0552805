package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVaultRoundTrip(t *testing.T) {
	v := Open(t.TempDir())
	if err := v.Remember("profile-123"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	got, err := v.Remembered()
	if err != nil {
		t.Fatalf("remembered: %v", err)
	}
	if got != "profile-123" {
		t.Fatalf("remembered = %q, want profile-123", got)
	}
}

func TestVaultEmpty(t *testing.T) {
	v := Open(t.TempDir())
	if _, err := v.Remembered(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err = %v, want ErrNoSession", err)
	}
}

func TestVaultForget(t *testing.T) {
	v := Open(t.TempDir())
	if err := v.Remember("profile-123"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if err := v.Forget(); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if _, err := v.Remembered(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("err after forget = %v, want ErrNoSession", err)
	}
	// forgetting twice is fine
	if err := v.Forget(); err != nil {
		t.Fatalf("second forget: %v", err)
	}
}

func TestVaultCiphertextOnDisk(t *testing.T) {
	dir := t.TempDir()
	v := Open(dir)
	if err := v.Remember("profile-123"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty vault file")
	}
	if strings.Contains(string(data), "profile-123") {
		t.Fatal("profile id stored in plain text")
	}
}
