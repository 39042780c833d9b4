// Command hostd is a sample host built on hostkit: it runs startup actions,
// logs the route report and serves a small foos API.
package main

import (
	"fmt"
	"os"

	"github.com/kbukum/hostkit/cmd/hostd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
