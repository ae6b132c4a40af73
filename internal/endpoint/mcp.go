package endpoint

import (
	"net/http"

	"github.com/macrat/statusboard/internal/mcp"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MCPServer creates an MCP server for the given store.
func MCPServer(s Store, c Config) *mcpsdk.Server {
	return mcp.NewServer(c.Title, s)
}

// MCPHandler creates an HTTP handler for MCP requests.
func MCPHandler(s Store, c Config) http.Handler {
	server := MCPServer(s, c)

	handler := mcpsdk.NewStreamableHTTPHandler(func(req *http.Request) *mcpsdk.Server {
		return server
	}, &mcpsdk.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
	})

	return handler
}
