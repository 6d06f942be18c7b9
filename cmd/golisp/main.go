// Command golisp is the REPL/file driver for the interpreter (spec §6
// CLI surface).
package main

import (
	"os"

	"github.com/fuzy112/golisp/cmd/golisp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
