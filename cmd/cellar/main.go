// Command cellar is the CLI front-end for the cellar note engine.
package main

import (
	"fmt"
	"os"
)

func main() {
	Execute()
}

// fatal prints an error to stderr and exits. Expected user-facing failures
// (missing notes, bad flags) should go through nicer reporting first.
func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
