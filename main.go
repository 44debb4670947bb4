// ABOUTME: Entry point for the secretary CLI
// ABOUTME: Terminal client for the Meu Secretário personal finance API

package main

import (
	"fmt"
	"os"

	"github.com/Depaula010/meusecretariofront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

// exitUsage matches the usage error code of the subcommands
const exitUsage = 2
