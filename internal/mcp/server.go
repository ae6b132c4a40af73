package mcp

import (
	"github.com/macrat/statusboard/internal/meta"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates a read-only MCP server for the dashboard.
func NewServer(name string, store Store) *mcp.Server {
	title := "statusboard"
	instructions := "statusboard shows the status of services and incidents that a status backend reports. The data can be large, so it is recommended to extract necessary information using jq queries instead of fetching all data at once."

	if name != "" {
		title = title + " (" + name + ")"
		instructions = instructions + " This dashboard's name is \"" + name + "\"."
	}

	impl := &mcp.Implementation{
		Name:    "statusboard",
		Version: meta.Version,
		Title:   title,
	}

	opts := &mcp.ServerOptions{
		Instructions: instructions,
	}

	server := mcp.NewServer(impl, opts)

	AddReadOnlyTools(server, store)

	return server
}
