package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"questio/internal/retrieval"
)

// NotesTool handles the admission_notes MCP tool.
type NotesTool struct {
	notes retrieval.Retriever
}

// NewNotesTool uses the bundled notes when r is nil.
func NewNotesTool(r retrieval.Retriever) *NotesTool {
	if r == nil {
		r = retrieval.Default()
	}
	return &NotesTool{notes: r}
}

func (t *NotesTool) Definition() mcp.Tool {
	return mcp.NewTool("admission_notes",
		mcp.WithDescription(
			"Look up admission reference notes (exam style, question count, scope) for math-essay universities. "+
				"Accepts common short names such as 연대 or 에리카.",
		),
		mcp.WithArray("universities",
			mcp.Required(),
			mcp.Description("University names to look up"),
			mcp.WithStringItems(),
		),
	)
}

func (t *NotesTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(t.notes.Retrieve(stringsArg(req, "universities"))), nil
}
