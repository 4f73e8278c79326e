// main is the entry point for the incsight CLI.
package main

import (
	"fmt"
	"os"

	"incsight/cmd"
	"incsight/internal/contract"
	"incsight/internal/fetchlog"
)

func main() {
	err := cmd.Execute()

	// Flush diagnostics and connections before deciding the exit code.
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}
	fetchlog.CloseHistory()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
