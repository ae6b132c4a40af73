package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/macrat/statusboard/internal/console"
	"github.com/macrat/statusboard/internal/dashboard"
	mcputil "github.com/macrat/statusboard/internal/mcp"
	"github.com/macrat/statusboard/internal/meta"
	"github.com/macrat/statusboard/internal/schedule"
	api "github.com/macrat/statusboard/lib-statusboard"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"
)

// MCPCommand represents the MCP subcommand.
type MCPCommand struct {
	OutStream io.Writer
	ErrStream io.Writer

	// Getenv reads the environment variables. os.Getenv is used if nil.
	Getenv func(string) string
}

var defaultMCPCommand = &MCPCommand{
	OutStream: os.Stdout,
	ErrStream: os.Stderr,
}

const MCPHelp = `statusboard mcp -- Start local MCP server for a status backend

Usage: statusboard mcp [OPTIONS...] [BACKEND_URL]

Options:
  -i, --interval  Refresh interval or cron schedule. (default 1m0s)
  -t, --timeout   Timeout of each request to the backend. (default no timeout)
  -n, --name      Name of the dashboard.
  -h, --help      Show this help message and exit.

The server talks MCP over stdio, and logs to stderr.
BACKEND_URL can be omitted if STATUSBOARD_BACKEND is set.
`

func (cmd *MCPCommand) getenv(key string) string {
	if cmd.Getenv != nil {
		return cmd.Getenv(key)
	}
	return os.Getenv(key)
}

func (cmd *MCPCommand) Run(args []string) int {
	flags := pflag.NewFlagSet("statusboard mcp", pflag.ContinueOnError)

	defaultInterval := schedule.DefaultSchedule.String()
	if env := cmd.getenv("STATUSBOARD_INTERVAL"); env != "" {
		defaultInterval = env
	}

	interval := flags.StringP("interval", "i", defaultInterval, "Refresh interval or cron schedule")
	timeout := flags.DurationP("timeout", "t", 0, "Timeout of each request")
	name := flags.StringP("name", "n", cmd.getenv("STATUSBOARD_NAME"), "Name of the dashboard")
	help := flags.BoolP("help", "h", false, "Show this message and exit")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(cmd.ErrStream, err)
		fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s mcp -h` for more information.\n", args[0])
		return 2
	}

	if *help {
		io.WriteString(cmd.OutStream, MCPHelp)
		return 0
	}

	sched, err := schedule.Parse(*interval)
	if err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: %s\n", err)
		return 2
	}

	rest := flags.Args()
	if len(rest) > 0 && rest[0] == "mcp" {
		rest = rest[1:]
	}
	var backend string
	switch len(rest) {
	case 0:
		backend = cmd.getenv("STATUSBOARD_BACKEND")
	case 1:
		backend = rest[0]
	default:
		fmt.Fprintf(cmd.ErrStream, "error: too many backend URLs: %q\n", rest)
		return 2
	}
	u, err := url.Parse(backend)
	if backend == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fmt.Fprintf(cmd.ErrStream, "error: backend URL must be an absolute http or https URL: %q\n", backend)
		fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s mcp -h` for more information.\n", args[0])
		return 2
	}

	client := api.NewClient(u)
	client.UserAgent = fmt.Sprintf("statusboard/%s", meta.Version)
	if *timeout > 0 {
		client.HTTPClient = &http.Client{Timeout: *timeout}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := dashboard.New(client, console.New(cmd.ErrStream))

	poller := dashboard.NewPoller(d, sched)
	if err := poller.Start(ctx); err != nil {
		fmt.Fprintf(cmd.ErrStream, "error: failed to start refreshing: %s\n", err)
		return 1
	}
	defer func() {
		<-poller.Stop().Done()
	}()

	server := mcputil.NewServer(*name, d)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		fmt.Fprintf(cmd.ErrStream, "error: MCP server error: %s\n", err)
		return 1
	}

	return 0
}

