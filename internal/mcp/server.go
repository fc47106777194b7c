// Package mcp provides a Model Context Protocol server for srcmd.
// It exposes discovery and bundling as MCP tools that any MCP-capable
// agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with the srcmd tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "srcmd",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that write a file but
// only ever replace srcmd's own output.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds the srcmd tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "List the source files srcmd would bundle from a project root, with their fence language tags. Reads nothing but directory entries.",
		Annotations: readOnlyAnnotations(),
	}, handleScan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bundle",
		Description: "Bundle the project's source files into a single Markdown document with fenced code blocks. Overwrites the output path.",
		Annotations: writeAnnotations(),
	}, handleBundle)
}
