package endpoint

import (
	"fmt"
	"net/http"
	"strings"

	api "github.com/macrat/statusboard/lib-statusboard"
)

func escapeLabel(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(s, "\\", "\\\\"), "\n", "\\n"), "\"", "\\\"")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MetricsEndpoint implements Prometheus metrics endpoint.
// This endpoint follows both of Prometheus specification and OpenMetrics specification.
func MetricsEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=UTF-8")

		snapshot, loaded := s.View()
		healthy, _ := s.Errors()

		fmt.Fprintln(w, "# HELP statusboard_refresh_healthy Whether the last refresh of the dashboard succeeded.")
		fmt.Fprintln(w, "# TYPE statusboard_refresh_healthy gauge")
		fmt.Fprintf(w, "statusboard_refresh_healthy %d\n", boolToInt(healthy))
		fmt.Fprintln(w)

		fmt.Fprintln(w, "# HELP statusboard_loaded Whether the dashboard has loaded data from the backend.")
		fmt.Fprintln(w, "# TYPE statusboard_loaded gauge")
		fmt.Fprintf(w, "statusboard_loaded %d\n", boolToInt(loaded))

		if !loaded {
			return
		}
		timestamp := snapshot.FetchedAt.UnixMilli()

		fmt.Fprintln(w)
		fmt.Fprintln(w, "# HELP statusboard_monitor_status The status of the monitor that the backend reports.")
		fmt.Fprintln(w, "# TYPE statusboard_monitor_status gauge")
		for _, m := range snapshot.Monitors {
			name := escapeLabel(m.Name)
			for _, st := range api.MonitorStatuses {
				fmt.Fprintf(w, "statusboard_monitor_status{monitor=\"%s\",status=\"%s\"} %d %d\n", name, st, boolToInt(m.Status == st), timestamp)
			}
		}

		if snapshot.Status != nil {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "# HELP statusboard_overall_status The overall status of the system.")
			fmt.Fprintln(w, "# TYPE statusboard_overall_status gauge")
			for _, st := range api.OverallStates {
				fmt.Fprintf(w, "statusboard_overall_status{status=\"%s\"} %d %d\n", st, boolToInt(snapshot.Status.Status == st), timestamp)
			}
		}

		counts := make(map[api.IncidentStatus]int)
		for _, inc := range snapshot.Incidents {
			counts[inc.Status]++
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, "# HELP statusboard_incidents The number of incidents that the backend reports.")
		fmt.Fprintln(w, "# TYPE statusboard_incidents gauge")
		for _, st := range api.IncidentStatuses {
			fmt.Fprintf(w, "statusboard_incidents{status=\"%s\"} %d %d\n", st, counts[st], timestamp)
		}
	}
}
