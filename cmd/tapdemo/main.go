// Command tapdemo exercises tappable surfaces in a terminal and renders
// scripted snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/tappable/cmd/tapdemo/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
