package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fuzy112/golisp/internal/evaluator"
	"github.com/fuzy112/golisp/internal/gc"
	"github.com/fuzy112/golisp/internal/interp"
	"github.com/fuzy112/golisp/internal/printer"
	"github.com/fuzy112/golisp/internal/reader"
	"github.com/fuzy112/golisp/internal/runtime"
	"github.com/spf13/cobra"
)

// runCmd mirrors bare invocation (`golisp [file]`) as an explicit
// subcommand, for callers that prefer naming it.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a file or enter the REPL",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInterpreter,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func newRuntime() *runtime.Runtime {
	interval := time.Duration(gcInterval) * time.Second
	return runtime.NewWithGC(gc.NewManagerWithOptions(gcThreshold, interval))
}

func runInterpreter(_ *cobra.Command, args []string) error {
	rt := newRuntime()
	top := interp.NewTopLevel(rt)

	if len(args) == 1 {
		return runFile(rt, top, args[0])
	}
	return runREPL(rt, top)
}

// runFile reads and evaluates every top-level form in filename until
// EOF, aborting on the first uncaught exception (spec §7: "aborting
// script mode on the first uncaught exception").
func runFile(rt *runtime.Runtime, top *runtime.Environment, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	r := reader.New(rt, string(content))
	for {
		form, eof := r.ReadForm()
		if eof {
			return nil
		}
		v := evaluator.Eval(rt, top, form)
		if runtime.IsException(v) {
			rt.Exceptions.PrintTop(os.Stderr)
			return fmt.Errorf("uncaught exception")
		}
	}
}

// runREPL prints `>>> ` before each top-level form it reads from
// stdin, evaluates it, prints the result, and discards exceptions
// between iterations rather than aborting (spec §7). Unlike script
// mode, the whole of stdin is handed to a single Reader up front since
// the reader operates over a string rather than an incremental stream;
// the prompt still appears once per form read.
func runREPL(rt *runtime.Runtime, top *runtime.Environment) error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	r := reader.New(rt, string(input))

	for {
		fmt.Fprint(os.Stdout, ">>> ")
		form, eof := r.ReadForm()
		if eof {
			fmt.Fprintln(os.Stdout)
			return nil
		}
		v := evaluator.Eval(rt, top, form)
		if runtime.IsException(v) {
			rt.Exceptions.PrintTop(os.Stdout)
			rt.Exceptions.Pop()
			continue
		}
		printer.Print(rt.Stdout, v)
	}
}
