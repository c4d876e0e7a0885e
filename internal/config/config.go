// Package config describes the driver's command-line/YAML-configurable
// options, mirroring the option surface of the reference translator's
// command-line interface. None of these options affect the property
// compiler itself; they configure the surrounding driver (backend
// selection, code generation flags, verification bounds) that the
// compiler's output eventually feeds.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names a supported verification/simulation backend.
type Backend string

const (
	BackendLNT     Backend = "lnt"
	BackendLNTFair Backend = "lnt-monitor"
	BackendC       Backend = "c"
)

// Options mirrors the reference CLI's flag set one-to-one; field names
// match cli.py's HELPMSG keys so the generated --help text and any
// saved YAML profile read the same vocabulary.
type Options struct {
	Backend     Backend  `yaml:"backend"`
	Bitvector   bool     `yaml:"bitvector"`
	Cores       int      `yaml:"cores"`
	Debug       bool     `yaml:"debug"`
	Lang        string   `yaml:"lang"`
	Fair        bool     `yaml:"fair"`
	From        int      `yaml:"from"`
	KeepFiles   bool     `yaml:"keep_files"`
	Property    []string `yaml:"property"`
	NoProps     bool     `yaml:"no_properties"`
	Show        bool     `yaml:"show"`
	Simulate    int      `yaml:"simulate"`
	Steps       int      `yaml:"steps"`
	Sync        bool     `yaml:"sync"`
	Timeout     int      `yaml:"timeout"`
	To          int      `yaml:"to"`
	Verbose     bool     `yaml:"verbose"`
}

// Default returns the option set the reference CLI ships as defaults:
// verification mode (simulate=0), unbounded steps, no timeout.
func Default() Options {
	return Options{
		Backend: BackendLNT,
		Cores:   1,
		Timeout: 0,
		Steps:   0,
	}
}

// Load reads a YAML options profile from path, starting from Default()
// so an incomplete file still yields sane values for omitted keys.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return opts, nil
}

// Validate applies the cross-field constraints the reference CLI
// enforces implicitly through argparse choices and range checks.
func (o Options) Validate() error {
	switch o.Backend {
	case BackendLNT, BackendLNTFair, BackendC:
	default:
		return fmt.Errorf("unsupported backend %q", o.Backend)
	}
	if o.Cores < 1 {
		return fmt.Errorf("cores must be >= 1, got %d", o.Cores)
	}
	if o.NoProps && len(o.Property) > 0 {
		return fmt.Errorf("no_properties and property are mutually exclusive")
	}
	if o.From > 0 && o.To > 0 && o.From > o.To {
		return fmt.Errorf("partition start %d must not exceed end %d", o.From, o.To)
	}
	return nil
}
