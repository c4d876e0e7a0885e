// Package compiler orchestrates the four-stage property-compilation
// pipeline: descriptor loading, property parsing, quantifier
// elimination, and MCL emission.
package compiler

import (
	"fmt"

	"github.com/labs-lang/sliver/internal/descriptor"
	"github.com/labs-lang/sliver/internal/elim"
	"github.com/labs-lang/sliver/internal/errors"
	"github.com/labs-lang/sliver/internal/mcl"
	"github.com/labs-lang/sliver/internal/parser"
)

// Result holds every intermediate artifact of one property's
// compilation, not just the final MCL text, so that callers (the CLI,
// the REPL, tests) can inspect or print any stage on demand.
type Result struct {
	Info     *descriptor.Info
	Property string
	Elim     *elim.Result
	MCL      string
}

// CompileAll parses descBlob once and compiles every property it
// declares (or, when props is non-empty, only those) into MCL text,
// stopping at the first error.
func CompileAll(descBlob string, props []string) ([]Result, error) {
	info, err := descriptor.Parse(descBlob)
	if err != nil {
		return nil, err
	}

	if len(props) == 0 {
		props = info.Properties
	}
	if len(props) == 0 {
		return nil, errors.WrapReport(errors.New(errors.DSC001, "descriptor declares no properties to compile", nil))
	}

	results := make([]Result, 0, len(props))
	for _, p := range props {
		r, err := CompileOne(info, p)
		if err != nil {
			return nil, fmt.Errorf("compiling property %q: %w", p, err)
		}
		results = append(results, *r)
	}
	return results, nil
}

// CompileOne runs one property string through parsing, elimination,
// and emission against an already-loaded descriptor.
func CompileOne(info *descriptor.Info, property string) (*Result, error) {
	prop, errs := parser.ParseProperty(property, "<property>")
	if len(errs) != 0 {
		return nil, errs[0]
	}

	elimRes, err := elim.Eliminate(prop, info.Spawn)
	if err != nil {
		return nil, err
	}

	text, err := mcl.Emit(elimRes, info)
	if err != nil {
		return nil, err
	}

	return &Result{Info: info, Property: property, Elim: elimRes, MCL: text}, nil
}
