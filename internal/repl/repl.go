// Package repl implements an interactive shell for the property
// compiler: load a system descriptor once, then type property
// strings one at a time and see the MCL each one compiles to,
// grounded on the ailang REPL's liner/readline-based interaction
// loop and colored output conventions.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/labs-lang/sliver/internal/compiler"
	"github.com/labs-lang/sliver/internal/descriptor"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL holds the loaded descriptor and command history for one
// interactive session.
type REPL struct {
	info    *descriptor.Info
	source  string
	lastMCL string
	history []string
	version string
}

// New creates a REPL with no descriptor loaded yet.
func New(version string) *REPL {
	if version == "" {
		version = "dev"
	}
	return &REPL{version: version}
}

func (r *REPL) prompt() string {
	if r.info == nil {
		return "sliver> "
	}
	return fmt.Sprintf("sliver[%s]> ", filepath.Base(r.source))
}

// Start runs the read-eval-print loop against in/out until EOF or
// :quit.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".sliver_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(ln string) (c []string) {
		if strings.HasPrefix(ln, ":") {
			for _, cmd := range []string{":help", ":quit", ":load", ":props", ":mcl", ":history"} {
				if strings.HasPrefix(cmd, ln) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s %s\n", bold("sliver"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for commands, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt(r.prompt())
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if input == ":quit" || input == ":q" || input == ":exit" {
			fmt.Fprintln(out, green("Goodbye!"))
			break
		}
		if strings.HasPrefix(input, ":") {
			r.handleCommand(input, out)
			continue
		}

		r.compileOne(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) handleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	switch parts[0] {
	case ":help", ":h":
		r.printHelp(out)
	case ":load":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: :load <descriptor-file>")
			return
		}
		r.load(parts[1], out)
	case ":props":
		r.showProperties(out)
	case ":mcl":
		if r.lastMCL == "" {
			fmt.Fprintln(out, yellow("No property compiled yet"))
			return
		}
		fmt.Fprintln(out, r.lastMCL)
	case ":history":
		for i, c := range r.history {
			fmt.Fprintf(out, "%3d  %s\n", i+1, c)
		}
	case ":clear":
		fmt.Fprint(out, "\033[H\033[2J")
	default:
		fmt.Fprintf(out, "Unknown command: %s (try :help)\n", cmd)
	}
}

func (r *REPL) load(path string, out io.Writer) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	info, err := descriptor.Parse(string(data))
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	r.info = info
	r.source = path
	fmt.Fprintf(out, "%s Loaded descriptor from %s (%d agents, %d properties)\n",
		green("✓"), path, info.Spawn.NumAgents(), len(info.Properties))
}

func (r *REPL) showProperties(out io.Writer) {
	if r.info == nil {
		fmt.Fprintln(out, yellow("No descriptor loaded (use :load)"))
		return
	}
	for i, p := range r.info.Properties {
		fmt.Fprintf(out, "%3d  %s\n", i+1, p)
	}
}

func (r *REPL) compileOne(property string, out io.Writer) {
	if r.info == nil {
		fmt.Fprintln(out, yellow("No descriptor loaded; use :load <file> first"))
		return
	}
	res, err := compiler.CompileOne(r.info, property)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	r.lastMCL = res.MCL
	fmt.Fprintf(out, "%s %s\n", cyan("fresh vars:"), strings.Join(res.Elim.FreshVars, ", "))
	fmt.Fprintln(out, res.MCL)
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("Commands:"))
	fmt.Fprintln(out, "  :help                 Show this help")
	fmt.Fprintln(out, "  :quit                 Exit the REPL")
	fmt.Fprintln(out, "  :load <file>          Load a system descriptor")
	fmt.Fprintln(out, "  :props                List the descriptor's declared properties")
	fmt.Fprintln(out, "  :mcl                  Reprint the last compiled MCL text")
	fmt.Fprintln(out, "  :history              Show command history")
	fmt.Fprintln(out, "  :clear                Clear the screen")
	fmt.Fprintln(out)
	fmt.Fprintln(out, bold("Usage:"))
	fmt.Fprintln(out, "  Type any property string (e.g. \"always forall A a, x of a = 0\")")
	fmt.Fprintln(out, "  to compile it against the loaded descriptor.")
}
