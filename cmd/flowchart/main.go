// Command flowchart compiles assistant replies into flow graphs, validates
// saved flows and manages per-project flow artifacts.
//
// Usage:
//
//	flowchart compile reply.txt            # graph JSON, fallback on failure
//	flowchart compile --strict reply.txt   # exit non-zero instead of falling back
//	flowchart compile --transcript chat.json
//	flowchart validate flow.json
//	flowchart mermaid reply.txt
//	flowchart save proj-1 reply.txt
//	flowchart show proj-1
//	flowchart list
//
// Input defaults to stdin when no file (or "-") is given.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
