package parser

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labs-lang/sliver/internal/ast"
)

// update controls whether golden files are rewritten or compared.
// Usage: go test -update ./internal/parser
var update = flag.Bool("update", false, "update golden files")

// goldenCompare compares got against a golden file, or rewrites it
// when -update is passed.
func goldenCompare(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			t.Fatalf("failed to write golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nrun with -update to create it", path, err)
	}

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s (-want +got):\n%s", name, diff)
	}
}

// mustParse parses src and fails the test if parsing produced errors.
func mustParse(t *testing.T, src string) *ast.Prop {
	t.Helper()
	prop, errs := ParseProperty(src, "test://unit")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prop
}

// mustParseError parses src and fails the test unless it produced errors.
func mustParseError(t *testing.T, src string) []error {
	t.Helper()
	_, errs := ParseProperty(src, "test://unit")
	if len(errs) == 0 {
		t.Fatalf("expected parse errors for %q, got none", src)
	}
	return errs
}
