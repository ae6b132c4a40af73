package statusboard

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/macrat/statusboard/internal/boarderr"
)

// IncidentStatus is the lifecycle stage of an incident or an incident update.
type IncidentStatus string

const (
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentIdentified    IncidentStatus = "identified"
	IncidentMonitoring    IncidentStatus = "monitoring"
	IncidentResolved      IncidentStatus = "resolved"
)

// IncidentStatuses is every IncidentStatus, ordered from the least resolved to the terminal stage.
var IncidentStatuses = []IncidentStatus{IncidentInvestigating, IncidentIdentified, IncidentMonitoring, IncidentResolved}

// ParseIncidentStatus parses status string.
//
// It returns ErrInvalidValue if passed unsupported status.
func ParseIncidentStatus(raw string) (IncidentStatus, error) {
	for _, s := range IncidentStatuses {
		if raw == string(s) {
			return s, nil
		}
	}
	return "", boarderr.New(ErrInvalidValue, nil, "unsupported incident status: %q", raw)
}

// UnmarshalText is unmarshal text as IncidentStatus.
func (s *IncidentStatus) UnmarshalText(text []byte) error {
	x, err := ParseIncidentStatus(string(text))
	if err != nil {
		return err
	}
	*s = x
	return nil
}

// String is make IncidentStatus a string.
func (s IncidentStatus) String() string {
	return string(s)
}

// Stage returns the escalation order of the status.
// Investigating is 0 and Resolved is the largest. It returns -1 for unsupported status.
func (s IncidentStatus) Stage() int {
	for i, x := range IncidentStatuses {
		if s == x {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether the status is the last stage of the lifecycle.
func (s IncidentStatus) IsTerminal() bool {
	return s == IncidentResolved
}

// Severity is the impact level of an incident.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// Severities is every Severity, ordered from the lowest impact.
var Severities = []Severity{SeverityMinor, SeverityMajor, SeverityCritical}

// ParseSeverity parses severity string.
//
// It returns ErrInvalidValue if passed unsupported severity.
func ParseSeverity(raw string) (Severity, error) {
	for _, s := range Severities {
		if raw == string(s) {
			return s, nil
		}
	}
	return "", boarderr.New(ErrInvalidValue, nil, "unsupported severity: %q", raw)
}

// UnmarshalText is unmarshal text as Severity.
func (s *Severity) UnmarshalText(text []byte) error {
	x, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = x
	return nil
}

// String is make Severity a string.
func (s Severity) String() string {
	return string(s)
}

// IncidentUpdate is a historical entry of an incident.
type IncidentUpdate struct {
	Timestamp time.Time
	Status    IncidentStatus
	Message   string
}

type jsonIncidentUpdate struct {
	Timestamp string         `json:"timestamp"`
	Status    IncidentStatus `json:"status"`
	Message   string         `json:"message"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *IncidentUpdate) UnmarshalJSON(data []byte) error {
	var ju jsonIncidentUpdate

	if err := json.Unmarshal(data, &ju); err != nil {
		return err
	}

	if _, err := ParseIncidentStatus(string(ju.Status)); err != nil {
		return err
	}

	ts, err := ParseTime(ju.Timestamp)
	if err != nil {
		return boarderr.New(ErrInvalidValue, err, "invalid update timestamp")
	}

	*u = IncidentUpdate{
		Timestamp: ts,
		Status:    ju.Status,
		Message:   ju.Message,
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (u IncidentUpdate) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonIncidentUpdate{
		Timestamp: formatTime(u.Timestamp),
		Status:    u.Status,
		Message:   u.Message,
	})
}

// Incident is a tracked service disruption.
type Incident struct {
	ID       string
	Title    string
	Status   IncidentStatus
	Severity Severity

	// CreatedAt is the time the incident started.
	CreatedAt time.Time

	// ResolvedAt is the time the incident resolved.
	// It is zero if the incident is still ongoing.
	ResolvedAt time.Time

	AffectedServices []string

	// Updates is the log of status updates, the oldest first.
	Updates []IncidentUpdate
}

type jsonIncident struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Status           IncidentStatus   `json:"status"`
	Severity         Severity         `json:"severity"`
	CreatedAt        string           `json:"created_at"`
	ResolvedAt       *string          `json:"resolved_at"`
	AffectedServices []string         `json:"affected_services"`
	Updates          []IncidentUpdate `json:"updates"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *Incident) UnmarshalJSON(data []byte) error {
	var ji jsonIncident

	if err := json.Unmarshal(data, &ji); err != nil {
		return err
	}

	if _, err := ParseIncidentStatus(string(ji.Status)); err != nil {
		return err
	}
	if _, err := ParseSeverity(string(ji.Severity)); err != nil {
		return err
	}

	createdAt, err := ParseTime(ji.CreatedAt)
	if err != nil {
		return boarderr.New(ErrInvalidValue, err, "invalid created_at of incident %q", ji.ID)
	}

	var resolvedAt time.Time
	if ji.ResolvedAt != nil && *ji.ResolvedAt != "" {
		resolvedAt, err = ParseTime(*ji.ResolvedAt)
		if err != nil {
			return boarderr.New(ErrInvalidValue, err, "invalid resolved_at of incident %q", ji.ID)
		}
	}

	if ji.AffectedServices == nil {
		ji.AffectedServices = []string{}
	}
	if ji.Updates == nil {
		ji.Updates = []IncidentUpdate{}
	}

	*i = Incident{
		ID:               ji.ID,
		Title:            ji.Title,
		Status:           ji.Status,
		Severity:         ji.Severity,
		CreatedAt:        createdAt,
		ResolvedAt:       resolvedAt,
		AffectedServices: ji.AffectedServices,
		Updates:          ji.Updates,
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (i Incident) MarshalJSON() ([]byte, error) {
	var resolvedAt *string
	if i.IsResolved() {
		s := formatTime(i.ResolvedAt)
		resolvedAt = &s
	}

	return json.Marshal(jsonIncident{
		ID:               i.ID,
		Title:            i.Title,
		Status:           i.Status,
		Severity:         i.Severity,
		CreatedAt:        formatTime(i.CreatedAt),
		ResolvedAt:       resolvedAt,
		AffectedServices: i.AffectedServices,
		Updates:          i.Updates,
	})
}

// IsResolved reports whether the incident has resolved_at.
func (i Incident) IsResolved() bool {
	return !i.ResolvedAt.IsZero()
}

// UpdatesNewestFirst returns a copy of Updates in reverse order.
// The Updates of the receiver is never modified.
func (i Incident) UpdatesNewestFirst() []IncidentUpdate {
	rs := make([]IncidentUpdate, len(i.Updates))
	for j, u := range i.Updates {
		rs[len(i.Updates)-j-1] = u
	}
	return rs
}

type incidentsResponse struct {
	Incidents []Incident `json:"incidents"`
}

// DecodeIncidents parses the body of `GET /api/incidents`.
// A response without incidents field is treated as an empty list.
func DecodeIncidents(raw []byte) ([]Incident, error) {
	var resp incidentsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, decodeError(err)
	}
	if resp.Incidents == nil {
		return []Incident{}, nil
	}
	return resp.Incidents, nil
}
