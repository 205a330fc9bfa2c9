// Command ebookstore manages a bookstore inventory kept in a local SQLite file.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/ebookstore/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
