// Command tabnav computes, replays and checks tab navigator state.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/tabnav/cmd/tabnav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
