package statusboard

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
	"github.com/macrat/statusboard/internal/boarderr"
)

// OverallState is the aggregated health that the backend computes.
type OverallState string

const (
	StateOperational   OverallState = "operational"
	StatePartialOutage OverallState = "partial_outage"
	StateMajorOutage   OverallState = "major_outage"
	StateUnknown       OverallState = "unknown"
)

// OverallStates is every OverallState.
var OverallStates = []OverallState{StateOperational, StatePartialOutage, StateMajorOutage, StateUnknown}

// ParseOverallState parses state string.
//
// It returns ErrInvalidValue if passed unsupported state.
func ParseOverallState(raw string) (OverallState, error) {
	for _, s := range OverallStates {
		if raw == string(s) {
			return s, nil
		}
	}
	return "", boarderr.New(ErrInvalidValue, nil, "unsupported overall status: %q", raw)
}

// UnmarshalText is unmarshal text as OverallState.
func (s *OverallState) UnmarshalText(text []byte) error {
	x, err := ParseOverallState(string(text))
	if err != nil {
		return err
	}
	*s = x
	return nil
}

// String is make OverallState a string.
func (s OverallState) String() string {
	return string(s)
}

// OverallStatus is the aggregate health summary across all monitors.
type OverallStatus struct {
	Status    OverallState
	UpdatedAt time.Time
}

type jsonOverallStatus struct {
	Status    *string `json:"status"`
	UpdatedAt string  `json:"updated_at"`
}

// MarshalJSON implements the json.Marshaler interface.
func (s OverallStatus) MarshalJSON() ([]byte, error) {
	status := s.Status.String()
	return json.Marshal(jsonOverallStatus{
		Status:    &status,
		UpdatedAt: formatTime(s.UpdatedAt),
	})
}

// DecodeOverallStatus parses the body of `GET /api/status`.
//
// It returns nil without error if the body is null or has no status field.
// The dashboard omits the banner in that case.
func DecodeOverallStatus(raw []byte) (*OverallStatus, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}

	var js jsonOverallStatus
	if err := json.Unmarshal(raw, &js); err != nil {
		return nil, decodeError(err)
	}

	if js.Status == nil {
		return nil, nil
	}

	state, err := ParseOverallState(*js.Status)
	if err != nil {
		return nil, decodeError(err)
	}

	var updatedAt time.Time
	if js.UpdatedAt != "" {
		updatedAt, err = ParseTime(js.UpdatedAt)
		if err != nil {
			return nil, decodeError(boarderr.New(ErrInvalidValue, err, "invalid updated_at"))
		}
	}

	return &OverallStatus{
		Status:    state,
		UpdatedAt: updatedAt,
	}, nil
}

func decodeError(err error) error {
	return boarderr.New(ErrInvalidResponse, err, "failed to parse response")
}
