package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/macrat/statusboard/internal/display"
	"github.com/macrat/statusboard/internal/meta"
	"github.com/macrat/statusboard/internal/schedule"
	api "github.com/macrat/statusboard/lib-statusboard"
)

// loadingRefresh is how often the loading page reloads itself.
const loadingRefresh = 5 * time.Second

type monitorCard struct {
	Name        string
	Description string
	Config      display.StatusConfig
}

type incidentUpdate struct {
	Indicator display.Indicator
	Time      string
	Message   string
}

type incidentEntry struct {
	ID        string
	Title     string
	Severity  display.Badge
	Indicator display.Indicator
	Affected  string
	Updates   []incidentUpdate
	Started   string
	Resolved  string
}

// statusPage is the data for status.html and status.txt.
type statusPage struct {
	Title   string
	Loaded  bool
	Version string

	Banner          *display.Banner
	LastUpdated     string
	LastUpdatedFrom string

	Monitors  []monitorCard
	Incidents []incidentEntry

	RefreshSeconds int
	RefreshLabel   string

	ASCII bool
}

func refreshInterval(s schedule.Schedule) time.Duration {
	if i, ok := s.(schedule.IntervalSchedule); ok {
		return i.Interval
	}
	return schedule.DefaultSchedule.(schedule.IntervalSchedule).Interval
}

func refreshLabel(s schedule.Schedule) string {
	if _, ok := s.(schedule.IntervalSchedule); ok {
		return "every " + s.String()
	}
	return "on schedule " + s.String()
}

func newMonitorCard(m api.Monitor) (monitorCard, error) {
	conf, err := display.MonitorConfig(m.Status)
	if err != nil {
		return monitorCard{}, err
	}
	return monitorCard{
		Name:        m.Name,
		Description: m.Description,
		Config:      conf,
	}, nil
}

func newIncidentEntry(inc api.Incident, loc *time.Location) (incidentEntry, error) {
	severity, err := display.SeverityConfig(inc.Severity)
	if err != nil {
		return incidentEntry{}, err
	}
	indicator, err := display.IncidentStatusConfig(inc.Status)
	if err != nil {
		return incidentEntry{}, err
	}

	updates := inc.UpdatesNewestFirst()
	entry := incidentEntry{
		ID:        inc.ID,
		Title:     inc.Title,
		Severity:  severity,
		Indicator: indicator,
		Affected:  strings.Join(inc.AffectedServices, ", "),
		Updates:   make([]incidentUpdate, len(updates)),
		Started:   display.FormatTime(inc.CreatedAt, loc),
	}

	if inc.IsResolved() {
		entry.Resolved = display.FormatTime(inc.ResolvedAt, loc)
	}

	for i, u := range updates {
		ind, err := display.IncidentStatusConfig(u.Status)
		if err != nil {
			return incidentEntry{}, err
		}
		entry.Updates[i] = incidentUpdate{
			Indicator: ind,
			Time:      display.FormatTime(u.Timestamp, loc),
			Message:   u.Message,
		}
	}

	return entry, nil
}

func newStatusPage(s Store, c Config, now time.Time) (statusPage, error) {
	snapshot, loaded := s.View()
	sched := c.schedule()

	page := statusPage{
		Title:          c.title(),
		Loaded:         loaded,
		Version:        meta.Version,
		RefreshSeconds: int(refreshInterval(sched).Seconds()),
		RefreshLabel:   refreshLabel(sched),
	}

	if !loaded {
		page.RefreshSeconds = int(loadingRefresh.Seconds())
		return page, nil
	}

	if snapshot.Status != nil {
		banner, err := display.OverallConfig(snapshot.Status.Status)
		if err != nil {
			return statusPage{}, err
		}
		page.Banner = &banner
	}

	page.LastUpdated = display.FormatUpdated(snapshot.FetchedAt, c.location())
	page.LastUpdatedFrom = display.Relative(snapshot.FetchedAt, now)

	page.Monitors = make([]monitorCard, len(snapshot.Monitors))
	for i, m := range snapshot.Monitors {
		card, err := newMonitorCard(m)
		if err != nil {
			return statusPage{}, fmt.Errorf("monitor %q: %w", m.Name, err)
		}
		page.Monitors[i] = card
	}

	page.Incidents = make([]incidentEntry, len(snapshot.Incidents))
	for i, inc := range snapshot.Incidents {
		entry, err := newIncidentEntry(inc, c.location())
		if err != nil {
			return statusPage{}, fmt.Errorf("incident %q: %w", inc.ID, err)
		}
		page.Incidents[i] = entry
	}

	return page, nil
}
