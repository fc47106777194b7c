// Package main provides the entry point for the srcmd CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	srcmdmcp "github.com/calebws/srcmd/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run srcmd as a Model Context Protocol (MCP) server over stdio.

This exposes srcmd operations as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "srcmd": {
        "command": "srcmd",
        "args": ["serve"]
      }
    }
  }

Available tools: scan, bundle`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := srcmdmcp.NewServer(buildVersion())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
