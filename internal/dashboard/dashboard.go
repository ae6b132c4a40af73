package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/macrat/statusboard/internal/boarderr"
	"github.com/macrat/statusboard/internal/console"
	api "github.com/macrat/statusboard/lib-statusboard"
)

// CurrentTime returns current time.
// This variable is for testing purpose.
var CurrentTime = time.Now

// ErrRefresh is the error that a refresh cycle failed.
// The children of the boarderr.List tell which endpoints failed.
var ErrRefresh = errors.New("failed to refresh dashboard")

// Fetcher fetches the data of the dashboard from the backend.
// *statusboard.Client implements it.
type Fetcher interface {
	FetchMonitors(ctx context.Context) ([]api.Monitor, error)
	FetchIncidents(ctx context.Context) ([]api.Incident, error)
	FetchStatus(ctx context.Context) (*api.OverallStatus, error)
}

// Dashboard holds the latest snapshot of the backend.
//
// The snapshot is replaced only by a refresh cycle that fetched all of the three endpoints successfully.
// Other components only read it.
type Dashboard struct {
	fetcher Fetcher
	logger  console.Logger

	viewLock sync.RWMutex
	snapshot api.Snapshot
	loaded   bool

	healthLock  sync.RWMutex
	lastError   error
	lastFailure time.Time
	failures    int
}

// New makes a new Dashboard that has no snapshot yet.
func New(f Fetcher, logger console.Logger) *Dashboard {
	return &Dashboard{
		fetcher: f,
		logger:  logger,
	}
}

// View returns the current snapshot.
// The loaded is false until the first refresh succeeded.
func (d *Dashboard) View() (snapshot api.Snapshot, loaded bool) {
	d.viewLock.RLock()
	defer d.viewLock.RUnlock()

	return d.snapshot, d.loaded
}

// Refresh fetches the three endpoints concurrently and replaces the snapshot.
//
// If any of them failed, the snapshot is kept as it is and a boarderr.List of ErrRefresh is returned.
// Refresh can run concurrently with itself. The cycle that finishes last wins.
func (d *Dashboard) Refresh(ctx context.Context) error {
	cycle := uuid.NewString()
	logger := d.logger.WithScope("refresh")
	stime := CurrentTime()

	var (
		wg        sync.WaitGroup
		monitors  []api.Monitor
		incidents []api.Incident
		status    *api.OverallStatus
		errs      [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		monitors, errs[0] = d.fetcher.FetchMonitors(ctx)
	}()
	go func() {
		defer wg.Done()
		incidents, errs[1] = d.fetcher.FetchIncidents(ctx)
	}()
	go func() {
		defer wg.Done()
		status, errs[2] = d.fetcher.FetchStatus(ctx)
	}()
	wg.Wait()

	latency := CurrentTime().Sub(stime)

	lb := &boarderr.ListBuilder{What: ErrRefresh}
	lb.Push(errs[:]...)
	if err := lb.Build(); err != nil {
		if ctx.Err() != nil {
			logger.Warn("refresh aborted", map[string]interface{}{
				"cycle":  cycle,
				"reason": ctx.Err().Error(),
			})
			return err
		}

		d.recordFailure(err)
		logger.Error(err.Error(), map[string]interface{}{
			"cycle":      cycle,
			"latency_ms": float64(latency.Microseconds()) / 1000,
		})
		return err
	}

	if monitors == nil {
		monitors = []api.Monitor{}
	}
	if incidents == nil {
		incidents = []api.Incident{}
	}

	d.viewLock.Lock()
	d.snapshot = api.Snapshot{
		Monitors:  monitors,
		Incidents: incidents,
		Status:    status,
		FetchedAt: CurrentTime(),
	}
	d.loaded = true
	d.viewLock.Unlock()

	d.recordSuccess()

	extra := map[string]interface{}{
		"cycle":      cycle,
		"latency_ms": float64(latency.Microseconds()) / 1000,
		"monitors":   len(monitors),
		"incidents":  len(incidents),
	}
	if status != nil {
		extra["status"] = status.Status.String()
	}
	logger.Info("refreshed", extra)

	return nil
}

func (d *Dashboard) recordFailure(err error) {
	d.healthLock.Lock()
	defer d.healthLock.Unlock()

	d.lastError = err
	d.lastFailure = CurrentTime()
	d.failures++
}

func (d *Dashboard) recordSuccess() {
	d.healthLock.Lock()
	defer d.healthLock.Unlock()

	d.lastError = nil
	d.failures = 0
}

// Errors reports whether the last refresh cycle succeeded, and messages about it.
func (d *Dashboard) Errors() (healthy bool, messages []string) {
	d.healthLock.RLock()
	lastError, lastFailure, failures := d.lastError, d.lastFailure, d.failures
	d.healthLock.RUnlock()

	snapshot, loaded := d.View()

	if lastError == nil {
		if !loaded {
			return true, []string{"waiting for the first refresh"}
		}
		return true, []string{}
	}

	messages = []string{
		fmt.Sprintf("%d refresh(es) failed in a row, the last one at %s", failures, lastFailure.Format(time.RFC3339)),
		lastError.Error(),
	}
	if loaded {
		messages = append(messages, fmt.Sprintf("showing the snapshot fetched at %s", snapshot.FetchedAt.Format(time.RFC3339)))
	} else {
		messages = append(messages, "no snapshot has been loaded yet")
	}

	return false, messages
}

// ReportInternalError reports an error that happened outside of the refresh cycle, for example in an endpoint.
func (d *Dashboard) ReportInternalError(scope, message string) {
	d.logger.WithScope(scope).Error(message, nil)
}

// Logger returns the logger of this Dashboard.
func (d *Dashboard) Logger() console.Logger {
	return d.logger
}
