package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFillsDefaultsForOmittedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(path, []byte("fair: true\nsteps: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !opts.Fair || opts.Steps != 10 {
		t.Errorf("expected overridden fields to load, got %+v", opts)
	}
	if opts.Backend != BackendLNT {
		t.Errorf("expected default backend to survive, got %q", opts.Backend)
	}
	if opts.Cores != 1 {
		t.Errorf("expected default cores=1 to survive, got %d", opts.Cores)
	}
}

func TestValidateRejectsUnsupportedBackend(t *testing.T) {
	opts := Default()
	opts.Backend = "ghost"
	if err := opts.Validate(); err == nil {
		t.Error("expected an error for an unsupported backend")
	}
}

func TestValidateRejectsPropertyAndNoProperties(t *testing.T) {
	opts := Default()
	opts.NoProps = true
	opts.Property = []string{"always forall A a, x of a = 0"}
	if err := opts.Validate(); err == nil {
		t.Error("expected an error when property and no_properties are both set")
	}
}

func TestValidateRejectsInvertedPartition(t *testing.T) {
	opts := Default()
	opts.From = 5
	opts.To = 2
	if err := opts.Validate(); err == nil {
		t.Error("expected an error for from > to")
	}
}
