package statusboard_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/macrat/statusboard/lib-statusboard"
)

func TestParseMonitorStatus(t *testing.T) {
	for _, s := range statusboard.MonitorStatuses {
		t.Run(s.String(), func(t *testing.T) {
			x, err := statusboard.ParseMonitorStatus(s.String())
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if x != s {
				t.Errorf("expected %q but got %q", s, x)
			}
		})
	}

	for _, raw := range []string{"", "ok", "ALERT", "Nodata", "Unknown"} {
		t.Run("invalid_"+raw, func(t *testing.T) {
			_, err := statusboard.ParseMonitorStatus(raw)
			if !errors.Is(err, statusboard.ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue but got %v", err)
			}
		})
	}
}

func TestDecodeMonitors(t *testing.T) {
	tests := []struct {
		Name   string
		Input  string
		Output []statusboard.Monitor
		Error  error
	}{
		{
			"single",
			`{"monitors":[{"id":1,"name":"API","description":"Core API","status":"OK"}]}`,
			[]statusboard.Monitor{
				{ID: 1, Name: "API", Description: "Core API", Status: statusboard.MonitorOK},
			},
			nil,
		},
		{
			"all_status",
			`{"monitors":[
				{"id":1,"name":"a","description":"","status":"OK"},
				{"id":2,"name":"b","description":"","status":"Alert"},
				{"id":3,"name":"c","description":"","status":"Warn"},
				{"id":4,"name":"d","description":"","status":"No Data"},
				{"id":5,"name":"e","description":"","status":"Skipped"}
			]}`,
			[]statusboard.Monitor{
				{ID: 1, Name: "a", Status: statusboard.MonitorOK},
				{ID: 2, Name: "b", Status: statusboard.MonitorAlert},
				{ID: 3, Name: "c", Status: statusboard.MonitorWarn},
				{ID: 4, Name: "d", Status: statusboard.MonitorNoData},
				{ID: 5, Name: "e", Status: statusboard.MonitorSkipped},
			},
			nil,
		},
		{
			"missing_field",
			`{}`,
			[]statusboard.Monitor{},
			nil,
		},
		{
			"null_field",
			`{"monitors":null}`,
			[]statusboard.Monitor{},
			nil,
		},
		{
			"unknown_status",
			`{"monitors":[{"id":1,"name":"API","description":"","status":"Broken"}]}`,
			nil,
			statusboard.ErrInvalidResponse,
		},
		{
			"missing_status",
			`{"monitors":[{"id":1,"name":"API","description":""}]}`,
			nil,
			statusboard.ErrInvalidResponse,
		},
		{
			"not_json",
			`<html>502 Bad Gateway</html>`,
			nil,
			statusboard.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			ms, err := statusboard.DecodeMonitors([]byte(tt.Input))
			if tt.Error != nil {
				if !errors.Is(err, tt.Error) {
					t.Fatalf("expected %v but got %v", tt.Error, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if diff := cmp.Diff(tt.Output, ms); diff != "" {
				t.Errorf("unexpected monitors:\n%s", diff)
			}
		})
	}
}
