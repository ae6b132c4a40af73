package endpoint_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/macrat/statusboard/internal/endpoint"
	"github.com/macrat/statusboard/internal/testutil"
)

func TestHealthzEndpoint(t *testing.T) {
	srv := testutil.StartTestServer(t)
	defer srv.Close()

	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %s", resp.Status)
	}

	if body != "HEALTHY\n" {
		t.Errorf("unexpected response:\n%s", body)
	}
}

func TestHealthzEndpoint_refreshFailure(t *testing.T) {
	backend, d := testutil.NewDashboard(t)

	srv := httptest.NewServer(endpoint.New(d, testutil.TestConfig))
	defer srv.Close()

	backend.Fail("/api/status", http.StatusBadGateway)
	if err := d.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh error but got nil")
	}

	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected status: %s", resp.Status)
	}
	if !strings.HasPrefix(body, "FAILURE\n") || !strings.Contains(body, "api/status") {
		t.Errorf("unexpected response:\n%s", body)
	}

	backend.Set("/api/status", testutil.StatusJSON)
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("failed to refresh: %s", err)
	}

	resp, body = get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK || body != "HEALTHY\n" {
		t.Errorf("unexpected response: %s\n%s", resp.Status, body)
	}
}

func TestHealthzEndpoint_errors(t *testing.T) {
	tests := []struct {
		Store stubStore
		Code  int
		Body  string
	}{
		{stubStore{healthy: true, messages: []string{}}, http.StatusOK, "HEALTHY\n"},
		{stubStore{healthy: true, messages: []string{"hello", "world"}}, http.StatusOK, "HEALTHY\nhello\nworld\n"},
		{stubStore{healthy: false, messages: []string{}}, http.StatusInternalServerError, "FAILURE\n"},
		{stubStore{healthy: false, messages: []string{"hello", "world"}}, http.StatusInternalServerError, "FAILURE\nhello\nworld\n"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("healthy:%v/messages:%v", tt.Store.healthy, tt.Store.messages), func(t *testing.T) {
			fun := endpoint.HealthzEndpoint(tt.Store)

			w := httptest.NewRecorder()
			r, err := http.NewRequest("GET", "http://localhost/healthz", nil)
			if err != nil {
				t.Fatalf("failed to prepare http request: %s", err)
			}

			fun(w, r)

			if w.Code != tt.Code {
				t.Errorf("expected status code is %d but got %d", tt.Code, w.Code)
			}

			if w.Body.String() != tt.Body {
				t.Errorf("expected:\n%s\nbut got:\n%s", tt.Body, w.Body)
			}
		})
	}
}
