// questio-mcp serves university ranking and admission notes over MCP.
//
// Usage:
//
//	questio-mcp            # Start MCP server (stdio transport)
//	questio-mcp version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"questio/internal/catalog"
	"questio/internal/mcptools"
	"questio/internal/retrieval"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("questio-mcp v%s\n", mcptools.Version)
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
			os.Exit(1)
		}
	}

	s := mcptools.NewServer(catalog.Default(), retrieval.Default())
	// stdout carries the protocol; diagnostics go to stderr.
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
