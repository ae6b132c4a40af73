package mcp

import (
	"time"

	api "github.com/macrat/statusboard/lib-statusboard"
)

func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// MonitorToMap converts an api.Monitor to a map for jq processing.
func MonitorToMap(m api.Monitor) map[string]any {
	return map[string]any{
		"id":          int(m.ID),
		"name":        m.Name,
		"description": m.Description,
		"status":      m.Status.String(),
	}
}

// IncidentToMap converts an api.Incident to a map for jq processing.
func IncidentToMap(inc api.Incident) map[string]any {
	services := make([]any, len(inc.AffectedServices))
	for i, s := range inc.AffectedServices {
		services[i] = s
	}

	updates := make([]any, len(inc.Updates))
	for i, u := range inc.Updates {
		updates[i] = map[string]any{
			"timestamp": u.Timestamp.Format(time.RFC3339),
			"status":    u.Status.String(),
			"message":   u.Message,
		}
	}

	return map[string]any{
		"id":                inc.ID,
		"title":             inc.Title,
		"status":            inc.Status.String(),
		"severity":          inc.Severity.String(),
		"created_at":        inc.CreatedAt.Format(time.RFC3339),
		"resolved_at":       timeOrNil(inc.ResolvedAt),
		"affected_services": services,
		"updates":           updates,
	}
}

// StatusToMap converts an api.OverallStatus to a map for jq processing.
// It returns nil if s is nil.
func StatusToMap(s *api.OverallStatus) any {
	if s == nil {
		return nil
	}
	return map[string]any{
		"status":     s.Status.String(),
		"updated_at": timeOrNil(s.UpdatedAt),
	}
}

// SnapshotToMap converts the whole api.Snapshot to a map for jq processing.
func SnapshotToMap(s api.Snapshot) map[string]any {
	monitors := make([]any, len(s.Monitors))
	for i, m := range s.Monitors {
		monitors[i] = MonitorToMap(m)
	}

	incidents := make([]any, len(s.Incidents))
	for i, inc := range s.Incidents {
		incidents[i] = IncidentToMap(inc)
	}

	return map[string]any{
		"monitors":   monitors,
		"incidents":  incidents,
		"status":     StatusToMap(s.Status),
		"fetched_at": timeOrNil(s.FetchedAt),
	}
}
