package display

import (
	"time"

	"github.com/dustin/go-humanize"
	api "github.com/macrat/statusboard/lib-statusboard"
)

const (
	// DateLayout is for the timestamps in the incident timeline.
	DateLayout = "Jan 2, 2006, 03:04 PM"

	// UpdatedLayout is for the last updated time of the dashboard.
	UpdatedLayout = "Jan 2, 03:04:05 PM"
)

func in(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}

// FormatTime formats t in US English like "Jan 1, 2024, 02:00 AM".
func FormatTime(t time.Time, loc *time.Location) string {
	return in(t, loc).Format(DateLayout)
}

// FormatDate parses an ISO8601 timestamp and formats it like FormatTime.
// It returns s as is if s is not a valid timestamp.
func FormatDate(s string, loc *time.Location) string {
	t, err := api.ParseTime(s)
	if err != nil {
		return s
	}
	return FormatTime(t, loc)
}

// FormatUpdated formats t like "Jan 1, 02:00:00 AM".
func FormatUpdated(t time.Time, loc *time.Location) string {
	return in(t, loc).Format(UpdatedLayout)
}

// Relative formats t relative to now, like "3 minutes ago".
func Relative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
