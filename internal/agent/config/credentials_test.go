package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/IvanChernomyrdin/go-places/internal/agent/config"
)

func TestDefaultPath_ReturnsPathInHomeDir(t *testing.T) {
	p, err := config.DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath returned error: %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir returned error: %v", err)
	}

	want := filepath.Join(home, ".places", "credentials.json")
	if p != want {
		t.Fatalf("expected %q, got %q", want, p)
	}
}

func TestLoad_FileNotExists_ReturnsEmptyCredentials(t *testing.T) {
	creds, err := config.Load(filepath.Join(t.TempDir(), "no-such-file.json"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if creds.LoggedIn() {
		t.Fatalf("expected empty creds, got %+v", *creds)
	}
}

func TestSaveLoadClear(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "credentials.json") // вложенная директория

	want := &config.Credentials{Token: "tok", UserID: "u1", Email: "max@example.com", Server: "http://localhost:5000"}
	if err := config.Save(p, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := config.Load(p)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *got != *want {
		t.Fatalf("expected %+v, got %+v", *want, *got)
	}

	if runtime.GOOS != "windows" {
		st, err := os.Stat(p)
		if err != nil {
			t.Fatal(err)
		}
		if st.Mode().Perm() != 0o600 {
			t.Fatalf("expected mode 0600, got %v", st.Mode().Perm())
		}
	}

	if err := config.Clear(p); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	// повторно — тоже без ошибки
	if err := config.Clear(p); err != nil {
		t.Fatalf("second Clear returned error: %v", err)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(p, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(p); err == nil {
		t.Fatalf("expected error for broken json")
	}
}
