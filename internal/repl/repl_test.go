package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/labs-lang/sliver/internal/descriptor"
)

func TestCompileOneWithoutDescriptorWarns(t *testing.T) {
	r := New("")
	var out bytes.Buffer
	r.compileOne("always forall A a, x of a = 0", &out)
	if !strings.Contains(out.String(), "No descriptor loaded") {
		t.Errorf("expected a warning about the missing descriptor, got: %s", out.String())
	}
}

func TestCompileOneProducesMCL(t *testing.T) {
	info, err := descriptor.Parse("|A 0,1|0=x=0||always forall A a, x of a = 0")
	if err != nil {
		t.Fatalf("descriptor.Parse failed: %v", err)
	}
	r := New("")
	r.info = info
	var out bytes.Buffer
	r.compileOne("always forall A a, x of a = 0", &out)
	if !strings.Contains(out.String(), "macro Predicate") {
		t.Errorf("expected compiled MCL output, got: %s", out.String())
	}
	if r.lastMCL == "" {
		t.Error("expected lastMCL to be recorded for :mcl")
	}
}

func TestShowPropertiesListsDescriptorProperties(t *testing.T) {
	info, err := descriptor.Parse("|A 0,1|0=x=0||always forall A a, x of a = 0;finally forall A a, x of a = 1")
	if err != nil {
		t.Fatalf("descriptor.Parse failed: %v", err)
	}
	r := New("")
	r.info = info
	var out bytes.Buffer
	r.showProperties(&out)
	if strings.Count(out.String(), "\n") != 2 {
		t.Errorf("expected 2 listed properties, got: %q", out.String())
	}
}
