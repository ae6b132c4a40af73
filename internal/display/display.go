// Package display maps the enumerated values of the backend to how the dashboard shows them.
//
// Every mapping is a fixed lookup table over a closed set, so the functions are pure.
// Values out of the set are reported as error instead of falling back to a default look.
package display

import (
	"github.com/macrat/statusboard/internal/boarderr"
	api "github.com/macrat/statusboard/lib-statusboard"
)

// Tier is the visual emphasis of a badge or banner.
type Tier string

const (
	TierSuccess     Tier = "success"
	TierWarning     Tier = "warning"
	TierDestructive Tier = "destructive"
	TierInfo        Tier = "info"
	TierSecondary   Tier = "secondary"
)

func (t Tier) String() string {
	return string(t)
}

// Color is the emphasis color of an icon and its label.
type Color string

const (
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorBlue   Color = "blue"
	ColorGray   Color = "gray"
)

func (c Color) String() string {
	return string(c)
}

// StatusConfig is the look of a monitor status.
type StatusConfig struct {
	Tier  Tier
	Label string
	Icon  Icon
	Color Color
}

// Badge is the look of an incident severity.
type Badge struct {
	Tier  Tier
	Label string
}

// Indicator is the look of an incident lifecycle status.
type Indicator struct {
	Icon  Icon
	Label string
	Color Color
}

// Banner is the look of the overall status.
type Banner struct {
	Tier        Tier
	Headline    string
	Description string
}

var monitorConfigs = map[api.MonitorStatus]StatusConfig{
	api.MonitorOK:      {TierSuccess, "Operational", IconCheckCircle, ColorGreen},
	api.MonitorAlert:   {TierDestructive, "Major Outage", IconAlertCircle, ColorRed},
	api.MonitorWarn:    {TierWarning, "Degraded Performance", IconAlertTriangle, ColorYellow},
	api.MonitorNoData:  {TierInfo, "No Data", IconHelpCircle, ColorGray},
	api.MonitorSkipped: {TierInfo, "Skipped", IconMinusCircle, ColorGray},
}

var severityConfigs = map[api.Severity]Badge{
	api.SeverityCritical: {TierDestructive, "Critical"},
	api.SeverityMajor:    {TierWarning, "Major"},
	api.SeverityMinor:    {TierSecondary, "Minor"},
}

var incidentStatusConfigs = map[api.IncidentStatus]Indicator{
	api.IncidentInvestigating: {IconSearch, "Investigating", ColorBlue},
	api.IncidentIdentified:    {IconEye, "Identified", ColorYellow},
	api.IncidentMonitoring:    {IconAlertCircle, "Monitoring", ColorOrange},
	api.IncidentResolved:      {IconCheckCircle, "Resolved", ColorGreen},
}

var overallConfigs = map[api.OverallState]Banner{
	api.StateOperational:   {TierSuccess, "All Systems Operational", "All services are running smoothly"},
	api.StatePartialOutage: {TierWarning, "Partial Outage", "Some services are experiencing issues"},
	api.StateMajorOutage:   {TierDestructive, "Major Outage", "Multiple services are affected"},
	api.StateUnknown:       {TierInfo, "Status Unknown", "Unable to determine system status"},
}

// MonitorConfig returns how to show a monitor status.
func MonitorConfig(s api.MonitorStatus) (StatusConfig, error) {
	if c, ok := monitorConfigs[s]; ok {
		return c, nil
	}
	return StatusConfig{}, boarderr.New(api.ErrInvalidValue, nil, "unsupported monitor status: %q", s)
}

// SeverityConfig returns how to show an incident severity.
func SeverityConfig(s api.Severity) (Badge, error) {
	if c, ok := severityConfigs[s]; ok {
		return c, nil
	}
	return Badge{}, boarderr.New(api.ErrInvalidValue, nil, "unsupported severity: %q", s)
}

// IncidentStatusConfig returns how to show an incident lifecycle status.
func IncidentStatusConfig(s api.IncidentStatus) (Indicator, error) {
	if c, ok := incidentStatusConfigs[s]; ok {
		return c, nil
	}
	return Indicator{}, boarderr.New(api.ErrInvalidValue, nil, "unsupported incident status: %q", s)
}

// OverallConfig returns how to show the overall status banner.
func OverallConfig(s api.OverallState) (Banner, error) {
	if c, ok := overallConfigs[s]; ok {
		return c, nil
	}
	return Banner{}, boarderr.New(api.ErrInvalidValue, nil, "unsupported overall status: %q", s)
}
