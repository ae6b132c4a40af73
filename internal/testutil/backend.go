package testutil

import (
	_ "embed"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

//go:embed testdata/monitors.json
var MonitorsJSON string

//go:embed testdata/incidents.json
var IncidentsJSON string

//go:embed testdata/status.json
var StatusJSON string

type backendResponse struct {
	Code  int
	Body  string
	Delay time.Duration
}

// Backend is a fake status backend that serves /api/monitors, /api/incidents and /api/status.
type Backend struct {
	sync.Mutex

	Server *httptest.Server

	responses map[string]backendResponse
	hits      map[string]int
}

// StartBackend starts a fake backend that replies the fixtures in testdata.
func StartBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		responses: map[string]backendResponse{
			"/api/monitors":  {http.StatusOK, MonitorsJSON, 0},
			"/api/incidents": {http.StatusOK, IncidentsJSON, 0},
			"/api/status":    {http.StatusOK, StatusJSON, 0},
		},
		hits: make(map[string]int),
	}

	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)

	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.Lock()
	resp, ok := b.responses[r.URL.Path]
	b.hits[r.URL.Path]++
	b.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Code)
	w.Write([]byte(resp.Body))
}

// Set replaces the response body of path. The status code is reset to 200.
func (b *Backend) Set(path, body string) {
	b.Lock()
	defer b.Unlock()

	b.responses[path] = backendResponse{Code: http.StatusOK, Body: body}
}

// Fail makes path reply the status code.
func (b *Backend) Fail(path string, code int) {
	b.Lock()
	defer b.Unlock()

	resp := b.responses[path]
	resp.Code = code
	resp.Body = http.StatusText(code)
	b.responses[path] = resp
}

// Delay makes path wait d before replying.
func (b *Backend) Delay(path string, d time.Duration) {
	b.Lock()
	defer b.Unlock()

	resp := b.responses[path]
	resp.Delay = d
	b.responses[path] = resp
}

// Hits returns how many times path was requested.
func (b *Backend) Hits(path string) int {
	b.Lock()
	defer b.Unlock()

	return b.hits[path]
}

// URL returns the root URL of the backend.
func (b *Backend) URL() *url.URL {
	u, err := url.Parse(b.Server.URL)
	if err != nil {
		panic(err)
	}
	return u
}
