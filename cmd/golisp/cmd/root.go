package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	gcInterval  int
	gcThreshold int
)

var rootCmd = &cobra.Command{
	Use:   "golisp [file]",
	Short: "A small Lisp interpreter",
	Long: `golisp is a tree-walking interpreter for a small Lisp/Scheme-like
dialect: integers, booleans, strings, symbols, pairs and vectors, a
handful of special forms (quote, if, cond, define, set!, lambda,
named-lambda, let/let*/letrec, begin), and a Bacon-Rajan cycle
collector for reclaiming closure/environment graphs.

With no argument, golisp enters a REPL. With one file argument, it
reads and evaluates every top-level form in the file until EOF.`,
	Version:       Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInterpreter,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().IntVar(&gcInterval, "gc-interval", 2, "seconds between time-triggered collections (GC_INTERVAL)")
	rootCmd.PersistentFlags().IntVar(&gcThreshold, "gc-threshold", 0, "initial live-object count that triggers collection (0: use the default)")
}
