package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Priority(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	fromEnv := filepath.Join(dir, "env.yaml")
	if err := os.WriteFile(explicit, []byte("backend:\n  base_url: http://explicit:1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fromEnv, []byte("backend:\n  base_url: http://env:2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAREERFORGE_CONFIG", fromEnv)

	cfg, err := loadConfig(explicit)
	if err != nil {
		t.Fatalf("loadConfig(explicit) error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://explicit:1" {
		t.Errorf("explicit path: base_url = %q", cfg.Backend.BaseURL)
	}

	cfg, err = loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(env) error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://env:2" {
		t.Errorf("env path: base_url = %q", cfg.Backend.BaseURL)
	}
}

func TestLoadConfig_MissingExplicitFileFails(t *testing.T) {
	t.Setenv("CAREERFORGE_CONFIG", "")
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadConfig_MissingDefaultUsesDefaults(t *testing.T) {
	t.Setenv("CAREERFORGE_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("base_url = %q, want default", cfg.Backend.BaseURL)
	}
}

func TestReadJobDescription(t *testing.T) {
	got, err := readJobDescription("", strings.NewReader("Go engineer"))
	if err != nil || got != "Go engineer" {
		t.Fatalf("stdin: got %q, %v", got, err)
	}

	path := filepath.Join(t.TempDir(), "jd.txt")
	if err := os.WriteFile(path, []byte("Platform engineer"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = readJobDescription(path, strings.NewReader("ignored"))
	if err != nil || got != "Platform engineer" {
		t.Fatalf("file: got %q, %v", got, err)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"line one\nline two", 20, "line one line two"},
		{"abcdefghij", 5, "abcd…"},
	}
	for _, tt := range tests {
		if got := excerpt(tt.in, tt.n); got != tt.want {
			t.Errorf("excerpt(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
