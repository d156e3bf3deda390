// Package mcptools exposes ranking and admission notes as MCP tools, so an
// assistant can answer "which 수리논술 universities fit me" without the web
// flow.
//
// Each tool is a struct with its dependencies injected, a Definition() with
// the mcp.Tool schema and a Handle() that processes the call.
package mcptools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"questio/internal/retrieval"
	"questio/internal/types"
)

const Version = "0.1.0"

// NewServer registers every tool on a fresh MCP server.
func NewServer(catalog []types.University, notes retrieval.Retriever) *server.MCPServer {
	s := server.NewMCPServer(
		"questio",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	rank := NewRankTool(catalog)
	s.AddTool(rank.Definition(), rank.Handle)

	notesTool := NewNotesTool(notes)
	s.AddTool(notesTool.Definition(), notesTool.Handle)

	return s
}

// stringsArg reads a string array argument; a single string is accepted as
// a one-element list.
func stringsArg(req mcp.CallToolRequest, key string) []string {
	switch v := req.GetArguments()[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
