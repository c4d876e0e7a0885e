package driver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/labs-lang/sliver/internal/descriptor"
)

// Modality names the temporal modalities a given backend accepts for
// verification; CADP's monitor workflow only supports two of the four
// the property compiler itself can emit for.
type Modality string

// ModelChecker runs an MCL query against a compiled model through
// CADP's lnt.open/evaluator4 toolchain.
type ModelChecker struct {
	// Modalities this backend accepts; verification is refused for any
	// property whose leading token is not in this set.
	Modalities []Modality
	Verbose    bool
}

// CheckPropertySupport mirrors Backend.check_property_support: every
// property's modality (its first whitespace-delimited token) must be
// one this checker accepts.
func (m ModelChecker) CheckPropertySupport(info *descriptor.Info) error {
	accepted := map[string]bool{}
	for _, mo := range m.Modalities {
		accepted[string(mo)] = true
	}
	for _, p := range info.Properties {
		modality := firstToken(p)
		if !accepted[modality] {
			return fmt.Errorf("backend does not support %q modality", modality)
		}
	}
	return nil
}

func firstToken(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' {
			return s[:i]
		}
	}
	return s
}

// Verify invokes lnt.open on the generated model, passing the MCL
// file to its evaluator tool, and classifies the subprocess outcome into
// an ExitStatus. A zero timeout disables the wall-clock limit.
func (m ModelChecker) Verify(ctx context.Context, modelFile, mclFile string, timeoutSeconds int, debug bool) (ExitStatus, string, error) {
	args := []string{"evaluator", "-diag"}
	if debug {
		args = []string{"evaluator", "-verbose", "-diag"}
	}
	args = append(args, mclFile)

	runCtx, cancel := WithTimeout(ctx, timeoutSeconds)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "lnt.open", append([]string{modelFile}, args...)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return Timeout, out.String(), nil
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return classifyExit(exitErr.ExitCode()), out.String(), nil
		}
		return BackendError, out.String(), err
	}
	return Success, out.String(), nil
}

func classifyExit(code int) ExitStatus {
	if code == int(Timeout) {
		return Timeout
	}
	return BackendError
}
