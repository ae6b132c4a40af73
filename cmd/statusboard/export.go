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
	"time"

	"github.com/goccy/go-json"
	"github.com/macrat/statusboard/internal/export"
	"github.com/macrat/statusboard/internal/mcp"
	"github.com/macrat/statusboard/internal/meta"
	api "github.com/macrat/statusboard/lib-statusboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

type ExportCommand struct {
	OutStream io.Writer
	ErrStream io.Writer

	// Getenv reads the environment variables. os.Getenv is used if nil.
	Getenv func(string) string

	// IsTerminal reports whether OutStream is a terminal.
	IsTerminal func() bool
}

var defaultExportCommand = &ExportCommand{
	OutStream: os.Stdout,
	ErrStream: os.Stderr,
	IsTerminal: func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	},
}

const ExportHelp = `statusboard export -- Download incidents of a status backend

Usage: statusboard export [OPTIONS...] [BACKEND_URL]

Options:
  -o, --output   Output file. (default stdout)
  -t, --timeout  Timeout of the request to the backend. (default no timeout)

  -c, --csv      Export as CSV. (default format)
  -j, --json     Export as JSON.
  -x, --xlsx     Export as XLSX.

  -h, --help     Show this help message and exit.

BACKEND_URL can be omitted if STATUSBOARD_BACKEND is set.
`

func (c ExportCommand) getenv(key string) string {
	if c.Getenv != nil {
		return c.Getenv(key)
	}
	return os.Getenv(key)
}

func (c ExportCommand) Run(args []string) int {
	flags := pflag.NewFlagSet("statusboard export", pflag.ContinueOnError)

	outputPath := flags.StringP("output", "o", "", "Output file")
	timeout := flags.DurationP("timeout", "t", 0, "Timeout of the request")

	toCsv := flags.BoolP("csv", "c", false, "Export as CSV")
	toJson := flags.BoolP("json", "j", false, "Export as JSON")
	toXlsx := flags.BoolP("xlsx", "x", false, "Export as XLSX")

	help := flags.BoolP("help", "h", false, "Show this message and exit")

	if err := flags.Parse(args[1:]); err != nil {
		fmt.Fprintln(c.ErrStream, err)
		fmt.Fprintf(c.ErrStream, "\nPlease see `%s export -h` for more information.\n", args[0])
		return 2
	}

	if *help {
		fmt.Fprint(c.OutStream, ExportHelp)
		return 0
	}

	count := 0
	for _, f := range []bool{*toCsv, *toJson, *toXlsx} {
		if f {
			count++
		}
	}
	if count > 1 {
		fmt.Fprintln(c.ErrStream, "error: flags for output format can not use multiple in the same time.")
		return 2
	}

	rest := flags.Args()
	if len(rest) > 0 && rest[0] == "export" {
		rest = rest[1:]
	}
	var backend string
	switch len(rest) {
	case 0:
		backend = c.getenv("STATUSBOARD_BACKEND")
	case 1:
		backend = rest[0]
	default:
		fmt.Fprintf(c.ErrStream, "error: too many backend URLs: %q\n", rest)
		return 2
	}
	u, err := url.Parse(backend)
	if backend == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fmt.Fprintf(c.ErrStream, "error: backend URL must be an absolute http or https URL: %q\n", backend)
		fmt.Fprintf(c.ErrStream, "\nPlease see `%s export -h` for more information.\n", args[0])
		return 2
	}

	output := c.OutStream
	if *outputPath != "" && *outputPath != "-" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(c.ErrStream, "error: failed to open output file: %s\n", err)
			return 1
		}
		defer f.Close()
		output = f
	} else if *toXlsx && c.IsTerminal != nil && c.IsTerminal() {
		fmt.Fprintln(c.ErrStream, "error: can not write xlsx format to stdout. please redirect or use -o option.")
		return 2
	}

	client := api.NewClient(u)
	client.UserAgent = fmt.Sprintf("statusboard/%s", meta.Version)
	if *timeout > 0 {
		client.HTTPClient = &http.Client{Timeout: *timeout}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	incidents, err := client.FetchIncidents(ctx)
	if err != nil {
		fmt.Fprintf(c.ErrStream, "error: %s\n", err)
		return 1
	}

	switch {
	case *toJson:
		err = c.toJson(incidents, output)
	case *toXlsx:
		err = export.ToXlsx(output, incidents, time.Now())
	default:
		err = export.ToCSV(output, incidents)
	}
	if err != nil {
		fmt.Fprintf(c.ErrStream, "error: %s\n", err)
		return 1
	}
	return 0
}

func (c ExportCommand) toJson(incidents []api.Incident, output io.Writer) error {
	xs := make([]map[string]any, len(incidents))
	for i, inc := range incidents {
		xs[i] = mcp.IncidentToMap(inc)
	}

	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(xs); err != nil {
		return fmt.Errorf("failed to write incidents: %w", err)
	}
	return nil
}
