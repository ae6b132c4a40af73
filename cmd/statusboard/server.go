package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/macrat/statusboard/internal/console"
	"github.com/macrat/statusboard/internal/dashboard"
	"github.com/macrat/statusboard/internal/endpoint"
	"github.com/macrat/statusboard/internal/meta"
)

func (cmd *StatusboardCommand) reportStartLog(logger console.Logger, listen string) {
	logger.Info("start statusboard server", map[string]interface{}{
		"url":      fmt.Sprintf("http://%s", listen),
		"backend":  cmd.BackendURL.String(),
		"schedule": cmd.Schedule.String(),
		"version":  fmt.Sprintf("%s (%s)", meta.Version, meta.Commit),
	})
}

// RunServer serves the dashboard over HTTP and refreshes it on schedule until ctx is done.
func (cmd *StatusboardCommand) RunServer(ctx context.Context, d *dashboard.Dashboard) (exitCode int) {
	logger := d.Logger().WithScope("server")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ln, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", cmd.ListenPort))
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: failed to listen: %s\n", err)
		return 1
	}

	cmd.reportStartLog(logger, ln.Addr().String())

	poller := dashboard.NewPoller(d, cmd.Schedule)
	if err := poller.Start(ctx); err != nil {
		ln.Close()
		fmt.Fprintf(cmd.ErrStream, "error: failed to start refreshing: %s\n", err)
		return 1
	}

	srv := &http.Server{Handler: endpoint.New(d, cmd.Config())}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go func() {
		<-ctx.Done()

		if err := srv.Shutdown(context.Background()); err != nil {
			d.ReportInternalError("endpoint", err.Error())
		}
		wg.Done()
	}()

	if err := srv.Serve(ln); err != http.ErrServerClosed {
		d.ReportInternalError("endpoint", err.Error())
		exitCode = 1
	}
	cancel()

	wg.Wait()
	<-poller.Stop().Done()

	logger.Info("stop statusboard server", nil)

	return exitCode
}
