// Command sliver is the LAbS property compiler's command-line entry
// point: it loads a system descriptor, compiles the properties it (or
// the user) names into modal mu-calculus, prints the result and, unless
// --show is set, checks that each property's modality is one the CADP
// model checker accepts, mirroring the reference CLI's subcommand
// surface. It does not run the model checker.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/labs-lang/sliver/internal/compiler"
	"github.com/labs-lang/sliver/internal/config"
	"github.com/labs-lang/sliver/internal/driver"
	"github.com/labs-lang/sliver/internal/repl"
)

var (
	// Version is set by ldflags during release builds.
	Version = "dev"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("error:"), err)
		os.Exit(int(driver.BackendError))
	}
}

func newRootCmd() *cobra.Command {
	opts := config.Default()
	var configPath string

	root := &cobra.Command{
		Use:     "sliver [descriptor-file]",
		Short:   "Compile and verify LAbS system properties",
		Version: Version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				opts = loaded
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			if len(args) == 0 {
				repl.New(Version).Start(os.Stdin, os.Stdout)
				return nil
			}
			return runCompile(cmd, args[0], opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&configPath, "config", "", "YAML options profile (overrides other flags)")
	flags.StringVar((*string)(&opts.Backend), "backend", string(opts.Backend), "verification backend: lnt, lnt-monitor, or c")
	flags.BoolVar(&opts.Bitvector, "bitvector", opts.Bitvector, "use bitvector encoding for integer variables")
	flags.IntVar(&opts.Cores, "cores", opts.Cores, "number of cores to use for state-space exploration")
	flags.BoolVar(&opts.Debug, "debug", opts.Debug, "keep intermediate files and enable verbose backend output")
	flags.StringVar(&opts.Lang, "lang", opts.Lang, "LAbS dialect to parse (default autodetected)")
	flags.BoolVar(&opts.Fair, "fair", opts.Fair, "assume weakly fair scheduling among agents")
	flags.IntVar(&opts.From, "from", opts.From, "first step bound to try when searching for a counterexample")
	flags.BoolVar(&opts.KeepFiles, "keep-files", opts.KeepFiles, "keep generated intermediate files after running")
	flags.StringArrayVar(&opts.Property, "property", opts.Property, "compile only this property (repeatable)")
	flags.BoolVar(&opts.NoProps, "no-properties", opts.NoProps, "skip property compilation, generate code only")
	flags.BoolVar(&opts.Show, "show", opts.Show, "print generated MCL instead of invoking the backend")
	flags.IntVar(&opts.Simulate, "simulate", opts.Simulate, "run a random simulation of this many steps instead of verifying")
	flags.IntVar(&opts.Steps, "steps", opts.Steps, "step bound for bounded model checking")
	flags.BoolVar(&opts.Sync, "sync", opts.Sync, "assume synchronous composition")
	flags.IntVar(&opts.Timeout, "timeout", opts.Timeout, "wall-clock timeout in seconds (0 disables)")
	flags.IntVar(&opts.To, "to", opts.To, "last step bound to try when searching for a counterexample")
	flags.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "print extra diagnostic information")

	root.AddCommand(newCompileCmd(), newReplCmd())
	return root
}

// newCompileCmd exposes the same compile-only behavior as the root
// command's default action, for scripting contexts that want an
// explicit subcommand name rather than positional-arg dispatch.
func newCompileCmd() *cobra.Command {
	var propFlags []string
	cmd := &cobra.Command{
		Use:   "compile <descriptor-file>",
		Short: "Compile a system descriptor's properties to MCL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := config.Default()
			opts.Property = propFlags
			return runCompile(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringArrayVar(&propFlags, "property", nil, "compile only this property (repeatable)")
	return cmd
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive property-compilation shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl.New(Version).Start(os.Stdin, os.Stdout)
			return nil
		},
	}
}

func runCompile(cmd *cobra.Command, path string, opts config.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if opts.NoProps {
		fmt.Fprintln(cmd.OutOrStdout(), yellow("no-properties set: skipping property compilation"))
		return nil
	}

	results, err := compiler.CompileAll(string(data), opts.Property)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, res := range results {
		fmt.Fprintf(out, "%s %s\n", bold(fmt.Sprintf("[%d/%d]", i+1, len(results))), res.Property)
		if opts.Verbose {
			fmt.Fprintf(out, "  fresh vars: %s\n", strings.Join(res.Elim.FreshVars, ", "))
		}
		fmt.Fprintln(out, res.MCL)
	}

	if opts.Show {
		return nil
	}
	return verify(cmd.Context(), results, opts)
}

// verify checks that the modality of every property in the descriptor
// is one of the four the CADP model checker accepts; it does not read
// opts.Backend and does not invoke any backend, so the compiler has no
// dependency on CADP being installed.
func verify(ctx context.Context, results []compiler.Result, opts config.Options) error {
	if len(results) == 0 {
		return nil
	}
	mc := driver.ModelChecker{
		Modalities: []driver.Modality{"always", "finally", "fairly", "fairly_inf"},
		Verbose:    opts.Verbose,
	}
	for _, res := range results {
		if err := mc.CheckPropertySupport(res.Info); err != nil {
			return err
		}
	}
	fmt.Println(green("all compiled properties are supported by the selected backend"))
	return nil
}
