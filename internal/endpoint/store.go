package endpoint

import (
	api "github.com/macrat/statusboard/lib-statusboard"
)

// Store is the source of the data that endpoints show. *dashboard.Dashboard implements it.
type Store interface {
	// View returns the current snapshot, and whether it has been loaded.
	View() (api.Snapshot, bool)

	// ReportInternalError reports an internal error.
	ReportInternalError(scope, message string)

	// Errors returns the health of the refresh cycle.
	Errors() (healthy bool, messages []string)
}
