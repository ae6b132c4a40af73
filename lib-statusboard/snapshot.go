package statusboard

import (
	"time"
)

// Snapshot is one generation of the backend data.
// The dashboard replaces the whole Snapshot on every successful refresh.
type Snapshot struct {
	Monitors  []Monitor      `json:"monitors"`
	Incidents []Incident     `json:"incidents"`
	Status    *OverallStatus `json:"status"`

	// FetchedAt is the time the refresh completed.
	FetchedAt time.Time `json:"fetched_at"`
}
