package statusboard

import (
	"github.com/goccy/go-json"
	"github.com/macrat/statusboard/internal/boarderr"
)

// MonitorStatus is the current state of a monitor that the backend reports.
// It is a closed set; use ParseMonitorStatus to convert from a string.
type MonitorStatus string

const (
	// MonitorOK means the monitored service is working.
	MonitorOK MonitorStatus = "OK"

	// MonitorAlert means the monitor is in alert state.
	MonitorAlert MonitorStatus = "Alert"

	// MonitorWarn means the monitor crossed its warning threshold.
	MonitorWarn MonitorStatus = "Warn"

	// MonitorNoData means the monitor has not received data recently.
	MonitorNoData MonitorStatus = "No Data"

	// MonitorSkipped means the monitor evaluation was skipped.
	MonitorSkipped MonitorStatus = "Skipped"
)

// MonitorStatuses is every MonitorStatus in display order.
var MonitorStatuses = []MonitorStatus{MonitorOK, MonitorAlert, MonitorWarn, MonitorNoData, MonitorSkipped}

// ParseMonitorStatus parses status string.
//
// It returns ErrInvalidValue if passed unsupported status.
func ParseMonitorStatus(raw string) (MonitorStatus, error) {
	for _, s := range MonitorStatuses {
		if raw == string(s) {
			return s, nil
		}
	}
	return "", boarderr.New(ErrInvalidValue, nil, "unsupported monitor status: %q", raw)
}

// UnmarshalText is unmarshal text as MonitorStatus.
func (s *MonitorStatus) UnmarshalText(text []byte) error {
	x, err := ParseMonitorStatus(string(text))
	if err != nil {
		return err
	}
	*s = x
	return nil
}

// String is make MonitorStatus a string.
func (s MonitorStatus) String() string {
	return string(s)
}

// Monitor is a single monitored service and its current status.
type Monitor struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      MonitorStatus `json:"status"`
}

type monitorsResponse struct {
	Monitors []Monitor `json:"monitors"`
}

// DecodeMonitors parses the body of `GET /api/monitors`.
// A response without monitors field is treated as an empty list.
func DecodeMonitors(raw []byte) ([]Monitor, error) {
	var resp monitorsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, decodeError(err)
	}
	if resp.Monitors == nil {
		return []Monitor{}, nil
	}
	for _, m := range resp.Monitors {
		if _, err := ParseMonitorStatus(string(m.Status)); err != nil {
			return nil, decodeError(err)
		}
	}
	return resp.Monitors, nil
}
