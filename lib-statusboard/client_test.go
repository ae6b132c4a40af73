package statusboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/macrat/statusboard/internal/testutil"
	"github.com/macrat/statusboard/lib-statusboard"
)

func TestClient(t *testing.T) {
	b := testutil.StartBackend(t)
	c := statusboard.NewClient(b.URL())

	ctx := context.Background()

	ms, err := c.FetchMonitors(ctx)
	if err != nil {
		t.Fatalf("failed to fetch monitors: %s", err)
	}
	if len(ms) != 5 || ms[0].Name != "API" {
		t.Errorf("unexpected monitors: %#v", ms)
	}

	is, err := c.FetchIncidents(ctx)
	if err != nil {
		t.Fatalf("failed to fetch incidents: %s", err)
	}
	if len(is) != 2 || is[0].ID != "INC-2" {
		t.Errorf("unexpected incidents: %#v", is)
	}

	s, err := c.FetchStatus(ctx)
	if err != nil {
		t.Fatalf("failed to fetch status: %s", err)
	}
	if s == nil || s.Status != statusboard.StatePartialOutage {
		t.Errorf("unexpected status: %#v", s)
	}
}

func TestClient_errors(t *testing.T) {
	b := testutil.StartBackend(t)
	c := statusboard.NewClient(b.URL())

	b.Fail("/api/monitors", http.StatusBadGateway)
	if _, err := c.FetchMonitors(context.Background()); !errors.Is(err, statusboard.ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus but got %v", err)
	}

	b.Set("/api/incidents", `<html></html>`)
	if _, err := c.FetchIncidents(context.Background()); !errors.Is(err, statusboard.ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse but got %v", err)
	}

	b.Delay("/api/status", time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := c.FetchStatus(ctx); !errors.Is(err, statusboard.ErrCommunicate) {
		t.Errorf("expected ErrCommunicate but got %v", err)
	}
}

func TestClient_unreachable(t *testing.T) {
	c := statusboard.NewClient(&url.URL{Scheme: "http", Host: "127.0.0.1:1"})

	if _, err := c.FetchMonitors(context.Background()); !errors.Is(err, statusboard.ErrCommunicate) {
		t.Errorf("expected ErrCommunicate but got %v", err)
	}
}

func TestClient_Endpoint(t *testing.T) {
	tests := []struct {
		Base string
		Want string
	}{
		{"http://example.com", "http://example.com/api/monitors"},
		{"http://example.com/", "http://example.com/api/monitors"},
		{"http://example.com/status", "http://example.com/status/api/monitors"},
		{"http://example.com/status/", "http://example.com/status/api/monitors"},
	}

	for _, tt := range tests {
		t.Run(tt.Base, func(t *testing.T) {
			base, err := url.Parse(tt.Base)
			if err != nil {
				t.Fatalf("failed to parse base: %s", err)
			}

			u, err := statusboard.NewClient(base).Endpoint(statusboard.MonitorsPath)
			if err != nil {
				t.Fatalf("failed to make endpoint: %s", err)
			}

			if u.String() != tt.Want {
				t.Errorf("expected %s but got %s", tt.Want, u)
			}
		})
	}
}
