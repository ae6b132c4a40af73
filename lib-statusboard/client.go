package statusboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/macrat/statusboard/internal/boarderr"
)

const (
	MonitorsPath  = "api/monitors"
	IncidentsPath = "api/incidents"
	StatusPath    = "api/status"
)

// Client fetches monitors, incidents and the overall status from the backend.
type Client struct {
	// BaseURL is the root URL of the backend.
	BaseURL *url.URL

	// HTTPClient is used for every request. http.DefaultClient is used if nil.
	HTTPClient *http.Client

	// UserAgent is sent as User-Agent header if not empty.
	UserAgent string
}

// NewClient makes a new Client for the backend at base.
func NewClient(base *url.URL) *Client {
	u := *base
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Client{BaseURL: &u}
}

// Endpoint returns the absolute URL of the path under BaseURL.
func (c *Client) Endpoint(path string) (*url.URL, error) {
	return c.BaseURL.Parse(path)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u, err := c.Endpoint(path)
	if err != nil {
		return nil, boarderr.New(ErrCommunicate, err, "failed to parse URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, boarderr.New(ErrCommunicate, err, "failed to make request")
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, boarderr.New(ErrCommunicate, err, "failed to fetch /%s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, boarderr.New(ErrUnexpectedStatus, nil, "failed to fetch /%s: %s", path, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, boarderr.New(ErrCommunicate, err, "failed to read response of /%s", path)
	}

	return raw, nil
}

// FetchMonitors fetches `GET /api/monitors`.
func (c *Client) FetchMonitors(ctx context.Context) ([]Monitor, error) {
	raw, err := c.get(ctx, MonitorsPath)
	if err != nil {
		return nil, err
	}
	ms, err := DecodeMonitors(raw)
	if err != nil {
		return nil, fmt.Errorf("/%s: %w", MonitorsPath, err)
	}
	return ms, nil
}

// FetchIncidents fetches `GET /api/incidents`.
func (c *Client) FetchIncidents(ctx context.Context) ([]Incident, error) {
	raw, err := c.get(ctx, IncidentsPath)
	if err != nil {
		return nil, err
	}
	is, err := DecodeIncidents(raw)
	if err != nil {
		return nil, fmt.Errorf("/%s: %w", IncidentsPath, err)
	}
	return is, nil
}

// FetchStatus fetches `GET /api/status`.
// The result can be nil if the backend replied no status.
func (c *Client) FetchStatus(ctx context.Context) (*OverallStatus, error) {
	raw, err := c.get(ctx, StatusPath)
	if err != nil {
		return nil, err
	}
	s, err := DecodeOverallStatus(raw)
	if err != nil {
		return nil, fmt.Errorf("/%s: %w", StatusPath, err)
	}
	return s, nil
}
