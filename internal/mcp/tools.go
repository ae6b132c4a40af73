package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrNotLoaded is returned by the tools until the dashboard loads the first snapshot.
var ErrNotLoaded = errors.New("the dashboard has not loaded data from the backend yet")

// MonitorsInput is the input for query_monitors tool.
type MonitorsInput struct {
	JQ string `json:"jq,omitempty" jsonschema:"A jq query string to filter and/or aggregate monitors. Query receives an array. Each object is like '{\"id\": 1, \"name\": \"...\", \"description\": \"...\", \"status\": \"OK|Warn|Alert|No Data|Skipped\"}'. For example, 'map(select(.status != \"OK\")) | map(.name)' to get the names of unhealthy monitors."`
}

// FetchMonitorsByJQ fetches monitors from store and applies jq query.
func FetchMonitorsByJQ(ctx context.Context, s Store, input MonitorsInput) (Output, error) {
	jq, err := ParseJQ(input.JQ)
	if err != nil {
		return Output{}, fmt.Errorf("failed to parse jq query: %w", err)
	}

	snapshot, loaded := s.View()
	if !loaded {
		return Output{}, ErrNotLoaded
	}

	monitors := make([]any, 0, len(snapshot.Monitors))
	for _, m := range snapshot.Monitors {
		monitors = append(monitors, MonitorToMap(m))
	}

	return jq.Run(ctx, monitors)
}

// IncidentsInput is the input for query_incidents tool.
type IncidentsInput struct {
	IncludeOngoing  *bool  `json:"include_ongoing,omitempty" jsonschema:"Whether to include ongoing incidents in the result. If omitted, ongoing incidents are included."`
	IncludeResolved bool   `json:"include_resolved,omitempty" jsonschema:"Whether to include resolved incidents in the result. If omitted, resolved incidents are not included."`
	JQ              string `json:"jq,omitempty" jsonschema:"A jq query string to filter and/or aggregate incidents. Query receives an array in the order the backend reported. Each object is like '{\"id\": \"...\", \"title\": \"...\", \"status\": \"investigating|identified|monitoring|resolved\", \"severity\": \"minor|major|critical\", \"created_at\": \"{RFC 3339}\", \"resolved_at\": \"{RFC 3339 or null}\", \"affected_services\": [\"...\"], \"updates\": [{\"timestamp\": \"{RFC 3339}\", \"status\": \"...\", \"message\": \"...\"}]}'. You can use 'parse_time' filter to convert timestamps into UNIX time."`
}

// FetchIncidentsByJQ fetches incidents from store and applies jq query.
func FetchIncidentsByJQ(ctx context.Context, s Store, input IncidentsInput) (Output, error) {
	jq, err := ParseJQ(input.JQ)
	if err != nil {
		return Output{}, fmt.Errorf("failed to parse jq query: %w", err)
	}

	snapshot, loaded := s.View()
	if !loaded {
		return Output{}, ErrNotLoaded
	}

	includeOngoing := input.IncludeOngoing == nil || *input.IncludeOngoing

	incidents := make([]any, 0, len(snapshot.Incidents))
	for _, inc := range snapshot.Incidents {
		if inc.IsResolved() && !input.IncludeResolved {
			continue
		}
		if !inc.IsResolved() && !includeOngoing {
			continue
		}
		incidents = append(incidents, IncidentToMap(inc))
	}

	return jq.Run(ctx, incidents)
}

// StatusInput is the input for query_status tool.
type StatusInput struct {
	JQ string `json:"jq,omitempty" jsonschema:"A jq query string to filter the overall status. Query receives an object like '{\"status\": \"operational|partial_outage|major_outage|unknown\", \"updated_at\": \"{RFC 3339 or null}\", \"fetched_at\": \"{RFC 3339}\"}'. The status is null if the backend did not report it."`
}

// FetchStatusByJQ fetches the overall status from store and applies jq query.
func FetchStatusByJQ(ctx context.Context, s Store, input StatusInput) (Output, error) {
	jq, err := ParseJQ(input.JQ)
	if err != nil {
		return Output{}, fmt.Errorf("failed to parse jq query: %w", err)
	}

	snapshot, loaded := s.View()
	if !loaded {
		return Output{}, ErrNotLoaded
	}

	status := map[string]any{
		"status":     nil,
		"updated_at": nil,
		"fetched_at": timeOrNil(snapshot.FetchedAt),
	}
	if snapshot.Status != nil {
		status["status"] = snapshot.Status.Status.String()
		status["updated_at"] = timeOrNil(snapshot.Status.UpdatedAt)
	}

	return jq.Run(ctx, status)
}

// AddReadOnlyTools adds the read-only query tools to the MCP server.
// These tools are: query_monitors, query_incidents, query_status.
func AddReadOnlyTools(server *mcp.Server, s Store) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_monitors",
		Title:       "Query monitors",
		Description: "Fetch the current status of each monitored service.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint: true,
			ReadOnlyHint:   true,
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input MonitorsInput) (*mcp.CallToolResult, Output, error) {
		output, err := FetchMonitorsByJQ(ctx, s, input)
		return nil, output, err
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_incidents",
		Title:       "Query incidents",
		Description: "Fetch ongoing and resolved incidents with their update history.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint: true,
			ReadOnlyHint:   true,
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input IncidentsInput) (*mcp.CallToolResult, Output, error) {
		output, err := FetchIncidentsByJQ(ctx, s, input)
		return nil, output, err
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_status",
		Title:       "Query status",
		Description: "Fetch the overall status of the system.",
		Annotations: &mcp.ToolAnnotations{
			IdempotentHint: true,
			ReadOnlyHint:   true,
		},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, Output, error) {
		output, err := FetchStatusByJQ(ctx, s, input)
		return nil, output, err
	})
}
