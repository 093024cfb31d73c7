// ppmfit: decision assistant for choosing a project portfolio management tool.
//
// It scores candidate tools against weighted criteria, explains the
// tradeoffs between them, and tracks each decision through framing,
// evaluating and decided. The same engine is exposed to AI assistants
// over MCP and to humans on the command line.
//
// Usage:
//
//	ppmfit serve                        # Start MCP server (stdio transport)
//	ppmfit score space.yaml             # Rank the tools in a decision file
//	ppmfit tradeoffs space.yaml --top 3 # Explain the decision
//	ppmfit version
package main

import (
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0
	ExitError   = 1
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitError)
	}
}
