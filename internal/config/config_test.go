package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestGetEnvReturnsValueWhenSet(t *testing.T) {
	t.Setenv("TEST_GETENV_SET", "custom-value")

	if got := getEnv("TEST_GETENV_SET", "fallback"); got != "custom-value" {
		t.Errorf("expected %q, got %q", "custom-value", got)
	}
}

func TestGetEnvReturnsFallbackWhenEmpty(t *testing.T) {
	t.Setenv("TEST_GETENV_EMPTY", "")

	if got := getEnv("TEST_GETENV_EMPTY", "default-value"); got != "default-value" {
		t.Errorf("expected fallback for empty env var, got %q", got)
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("TEST_INT_VALID", "7")
	t.Setenv("TEST_INT_INVALID", "seven")

	if got := getEnvInt64("TEST_INT_VALID", 1); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
	if got := getEnvInt64("TEST_INT_INVALID", 1); got != 1 {
		t.Errorf("expected fallback 1 for invalid value, got %d", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "250ms")
	t.Setenv("TEST_DURATION_BAD", "soon")

	if got := getEnvDuration("TEST_DURATION", time.Second); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}
	if got := getEnvDuration("TEST_DURATION_BAD", time.Second); got != time.Second {
		t.Errorf("expected fallback, got %v", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if splitList("") != nil {
		t.Error("expected nil for empty list")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SLOT_BACKEND", "")
	t.Setenv("PORT", "")
	t.Setenv("LOGIN_LATENCY", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.SlotBackend != SlotFile {
		t.Errorf("expected default slot backend %q, got %q", SlotFile, cfg.SlotBackend)
	}
	if cfg.LoginLatency != time.Second {
		t.Errorf("expected default latency 1s, got %v", cfg.LoginLatency)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("VIDEOSHARE_TEST_FROM_FILE=yes\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("VIDEOSHARE_TEST_FROM_FILE") })
	t.Setenv("SLOT_BACKEND", SlotMemory)

	if _, err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("VIDEOSHARE_TEST_FROM_FILE"); got != "yes" {
		t.Errorf("expected value from .env file, got %q", got)
	}
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("SLOT_BACKEND", SlotMemory)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestLoadRejectsUnknownSlotBackend(t *testing.T) {
	t.Setenv("SLOT_BACKEND", "floppy")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("SLOT_BACKEND", SlotPostgres)
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoadCatalogObjectNeedsPersistentSlot(t *testing.T) {
	t.Setenv("SLOT_BACKEND", SlotMemory)
	t.Setenv("CATALOG_OBJECT", "catalog.json")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for catalog object with memory slot")
	}
}
