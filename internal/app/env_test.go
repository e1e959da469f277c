package app

import (
	"os"
	"path/filepath"
	"testing"
)

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		old, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	unsetForTest(t, "TEXTCRAWL_URL", "TEXTCRAWL_WIDTH")

	path := filepath.Join(t.TempDir(), ".env")
	content := "\n# sample dotenv file\nexport TEXTCRAWL_URL=\"https://example.com/a\"\nTEXTCRAWL_WIDTH=60\nmalformed\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	if err := LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}

	cfg := DefaultConfig()
	ApplyEnvToConfig(&cfg)
	if cfg.URL != "https://example.com/a" || cfg.Width != 60 {
		t.Fatalf("dotenv values not applied: %+v", cfg)
	}
}

func TestLoadEnvFiles_ProcessEnvWins(t *testing.T) {
	t.Setenv("TEXTCRAWL_MODE", "content")
	unsetForTest(t, "TEXTCRAWL_SELECTOR")

	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("TEXTCRAWL_MODE=full\nTEXTCRAWL_SELECTOR=#first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("TEXTCRAWL_SELECTOR=#second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}
	if err := LoadEnvFiles(a, b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("TEXTCRAWL_MODE"); got != "content" {
		t.Fatalf("process env should win, got %q", got)
	}
	if got := os.Getenv("TEXTCRAWL_SELECTOR"); got != "#first" {
		t.Fatalf("first file should win, got %q", got)
	}
}
