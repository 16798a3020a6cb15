package main

import (
	"fmt"
	"os"

	"github.com/wharflab/fortitude/cmd/fortitude/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cmd.ExitError)
	}
}
