package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/macrat/statusboard/internal/console"
	"github.com/macrat/statusboard/internal/dashboard"
	api "github.com/macrat/statusboard/lib-statusboard"
)

// NewDashboardWithConsole makes a Dashboard connected to a new fake backend, and loads the first snapshot.
func NewDashboardWithConsole(t testing.TB, w io.Writer) (*Backend, *dashboard.Dashboard) {
	t.Helper()

	b := StartBackend(t)
	d := dashboard.New(api.NewClient(b.URL()), console.New(w))

	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("failed to load dashboard: %s", err)
	}

	return b, d
}

func NewDashboard(t testing.TB) (*Backend, *dashboard.Dashboard) {
	t.Helper()

	return NewDashboardWithConsole(t, io.Discard)
}
