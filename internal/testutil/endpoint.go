package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/macrat/statusboard/internal/endpoint"
)

// TestConfig is the endpoint.Config that StartTestServer uses.
var TestConfig = endpoint.Config{
	Title:    "Test Status",
	Location: time.UTC,
}

// StartTestServer starts a status page server that shows the fixtures in testdata.
func StartTestServer(t testing.TB) *httptest.Server {
	t.Helper()

	_, d := NewDashboard(t)

	return httptest.NewServer(endpoint.New(d, TestConfig))
}
