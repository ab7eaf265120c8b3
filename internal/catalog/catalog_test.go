package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsValidateKnownEntries(t *testing.T) {
	c := Load(nil)

	if err := c.ValidateSpecialty("Dermatology"); err != nil {
		t.Fatalf("expected Dermatology in defaults: %v", err)
	}
	if err := c.ValidateSpecialty("dermatology"); err != nil {
		t.Fatalf("matching should be case-insensitive: %v", err)
	}
	if err := c.ValidateSpecialty("Underwater Basket Weaving"); err == nil {
		t.Fatalf("expected unknown specialty to fail")
	}

	if err := c.ValidateState("CA"); err != nil {
		t.Fatalf("expected CA in defaults: %v", err)
	}
	if err := c.ValidateState("ca"); err != nil {
		t.Fatalf("state matching should be case-insensitive: %v", err)
	}
	if err := c.ValidateState("XX"); err == nil {
		t.Fatalf("expected unknown state to fail")
	}
}

func TestCanonical_ReturnsCatalogSpelling(t *testing.T) {
	c := Load(nil)
	got, ok := c.Canonical("  internal medicine ")
	if !ok {
		t.Fatalf("expected match")
	}
	if got != "Internal Medicine" {
		t.Fatalf("expected canonical spelling, got %q", got)
	}
}

func TestLoad_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := "specialties:\n  - Space Medicine\nstates:\n  - ca\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("SPECIALTY_CATALOG_PATH", path)

	c := Load(nil)
	if err := c.ValidateSpecialty("space medicine"); err != nil {
		t.Fatalf("override specialty missing: %v", err)
	}
	if err := c.ValidateSpecialty("Dermatology"); err == nil {
		t.Fatalf("override should replace defaults")
	}
	if err := c.ValidateState("CA"); err != nil {
		t.Fatalf("override state should be upcased: %v", err)
	}
}

func TestLoad_BrokenFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte(":{not yaml"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	t.Setenv("SPECIALTY_CATALOG_PATH", path)

	c := Load(nil)
	if err := c.ValidateSpecialty("Dermatology"); err != nil {
		t.Fatalf("expected fallback to defaults: %v", err)
	}
}
