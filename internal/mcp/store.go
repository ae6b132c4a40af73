package mcp

import (
	api "github.com/macrat/statusboard/lib-statusboard"
)

// Store is an interface for accessing the dashboard data.
type Store interface {
	// View returns the current snapshot, and whether it has been loaded.
	View() (api.Snapshot, bool)

	// ReportInternalError reports an internal error.
	ReportInternalError(scope, message string)
}
