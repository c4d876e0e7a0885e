// Package driver wraps the external collaborators the property
// compiler depends on but does not implement itself: the LabsTranslate
// code generator and the CADP toolbox, both invoked as subprocesses.
package driver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"time"
)

// invalidFilenameChar mirrors the reference translator's filename
// sanitizer: anything that is not a valid Go identifier byte, or a
// leading digit, becomes an underscore.
var invalidFilenameChar = regexp.MustCompile(`\W|^[0-9]`)

// Translator runs the external LabsTranslate binary against a LAbS
// source file, producing both the target-language source and the
// textual system descriptor the property compiler consumes.
type Translator struct {
	BinPath string
	Bound   int
	Fair    bool
	Sync    bool
	Bitvector bool
}

// Encoding names LabsTranslate's --enc values.
type Encoding string

const (
	EncodingC          Encoding = "c"
	EncodingLNT        Encoding = "lnt"
	EncodingLNTMonitor Encoding = "lnt-monitor"
)

func (t Translator) baseArgs(file string, enc Encoding) []string {
	args := []string{
		"--file", file,
		"--bound", fmt.Sprintf("%d", t.Bound),
		"--enc", string(enc),
	}
	if t.Fair {
		args = append(args, "--fair")
	}
	if t.Sync {
		args = append(args, "--sync")
	}
	if !t.Bitvector {
		args = append(args, "--no-bitvector")
	}
	return args
}

// Descriptor runs LabsTranslate with --info and returns the raw
// descriptor blob on stdout, ready for internal/descriptor.Parse.
func (t Translator) Descriptor(ctx context.Context, file string, enc Encoding) (string, error) {
	args := append(t.baseArgs(file, enc), "--info")
	out, err := t.run(ctx, args)
	if err != nil {
		return "", fmt.Errorf("gathering descriptor for %s: %w", file, err)
	}
	return out, nil
}

// Generate runs LabsTranslate and returns the generated source code
// plus a filename derived from the input file and verification bound,
// matching the reference translator's naming scheme.
func (t Translator) Generate(ctx context.Context, file string, enc Encoding) (code, filename string, err error) {
	out, err := t.run(ctx, t.baseArgs(file, enc))
	if err != nil {
		return "", "", fmt.Errorf("generating code for %s: %w", file, err)
	}
	return out, t.outputFilename(file, enc), nil
}

func (t Translator) outputFilename(file string, enc Encoding) string {
	stem := invalidFilenameChar.ReplaceAllString(filepath.Base(file[:len(file)-len(filepath.Ext(file))]), "_")
	mode := "unfair"
	if t.Fair {
		mode = "fair"
	}
	ext := "lnt"
	if enc == EncodingC {
		ext = "c"
	}
	return fmt.Sprintf("%s_%d_%s.%s", stem, t.Bound, mode, ext)
}

func (t Translator) run(ctx context.Context, args []string) (string, error) {
	bin := t.BinPath
	if bin == "" {
		bin = "LabsTranslate"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

// WithTimeout wraps ctx with a deadline when seconds > 0, mirroring
// the reference driver's optional wall-clock timeout wrapper; a
// seconds value of 0 disables the timeout entirely.
func WithTimeout(ctx context.Context, seconds int) (context.Context, context.CancelFunc) {
	if seconds <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
}
