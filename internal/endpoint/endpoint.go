package endpoint

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/macrat/statusboard/internal/schedule"
)

//go:embed static/favicon.svg
var faviconSvg []byte

//go:embed static/not-found.html
var notFoundPage []byte

// DefaultTitle is the page title if Config.Title is empty.
const DefaultTitle = "System Status"

// Config is the appearance of the pages.
type Config struct {
	// Title is the heading of the dashboard.
	Title string

	// Location is the time zone to show times in. time.Local is used if nil.
	Location *time.Location

	// Schedule is the refresh schedule of the dashboard, used to refresh the browser page.
	Schedule schedule.Schedule
}

func (c Config) title() string {
	if c.Title == "" {
		return DefaultTitle
	}
	return c.Title
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c Config) schedule() schedule.Schedule {
	if c.Schedule == nil {
		return schedule.DefaultSchedule
	}
	return c.Schedule
}

func New(s Store, c Config) http.Handler {
	m := http.NewServeMux()

	m.HandleFunc("/favicon.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(faviconSvg)
	})

	m.Handle("/status", http.RedirectHandler("/status.html", http.StatusMovedPermanently))
	m.HandleFunc("/status.html", StatusHTMLEndpoint(s, c))
	m.HandleFunc("/status.txt", StatusTextEndpoint(s, c))
	m.HandleFunc("/status.json", StatusJSONEndpoint(s))

	m.Handle("/incidents", http.RedirectHandler("/incidents.csv", http.StatusMovedPermanently))
	m.HandleFunc("/incidents.csv", IncidentsCSVEndpoint(s))
	m.HandleFunc("/incidents.xlsx", IncidentsXlsxEndpoint(s, c))

	m.HandleFunc("/metrics", MetricsEndpoint(s))
	m.HandleFunc("/healthz", HealthzEndpoint(s))
	m.Handle("/mcp", MCPHandler(s, c))

	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.Redirect(w, r, "/status.html", http.StatusFound)
		} else {
			w.Header().Set("Content-Type", "text/html; charset=UTF-8")
			w.WriteHeader(http.StatusNotFound)
			w.Write(notFoundPage)
		}
	})

	return gziphandler.GzipHandler(m)
}

func handleError(s Store, scope string, err error) {
	if err != nil {
		s.ReportInternalError("endpoint:"+scope, err.Error())
	}
}

// notLoaded replies 503 until the dashboard loads the first snapshot.
func notLoaded(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "5")
	http.Error(w, "the dashboard has not loaded data from the backend yet", http.StatusServiceUnavailable)
}
