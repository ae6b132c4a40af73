package main

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/template"
	"time"

	"github.com/joho/godotenv"
	"github.com/macrat/statusboard/internal/console"
	"github.com/macrat/statusboard/internal/dashboard"
	"github.com/macrat/statusboard/internal/endpoint"
	"github.com/macrat/statusboard/internal/meta"
	"github.com/macrat/statusboard/internal/schedule"
	api "github.com/macrat/statusboard/lib-statusboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

type StatusboardCommand struct {
	OutStream io.Writer
	ErrStream io.Writer

	// Getenv reads the environment variables. os.Getenv is used if nil.
	Getenv func(string) string

	// IsTerminal reports whether OutStream is a terminal. It decides the charset of the oneshot mode.
	IsTerminal func() bool

	BackendURL  *url.URL
	ListenPort  int
	Schedule    schedule.Schedule
	Timeout     time.Duration
	Name        string
	Location    *time.Location
	OneshotMode bool
	ASCII       bool
	ShowVersion bool
	ShowHelp    bool
}

var defaultStatusboardCommand = &StatusboardCommand{
	OutStream: os.Stdout,
	ErrStream: os.Stderr,
	IsTerminal: func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	},
}

//go:embed help.txt
var helpText string

func (cmd *StatusboardCommand) PrintUsage(detail bool) {
	tmpl := template.Must(template.New("help.txt").Parse(helpText))
	tmpl.Execute(cmd.ErrStream, map[string]interface{}{
		"Version":         meta.Version,
		"DefaultSchedule": schedule.DefaultSchedule.String(),
		"DefaultTitle":    endpoint.DefaultTitle,
		"Short":           !detail,
	})
}

func (cmd *StatusboardCommand) getenv(key string) string {
	if cmd.Getenv != nil {
		return cmd.Getenv(key)
	}
	return os.Getenv(key)
}

func (cmd *StatusboardCommand) usageError(command string, format string, args ...interface{}) int {
	fmt.Fprintf(cmd.ErrStream, format+"\n", args...)
	fmt.Fprintf(cmd.ErrStream, "\nPlease see `%s -h` for more information.\n", command)
	return 2
}

func (cmd *StatusboardCommand) ParseArgs(args []string) (exitCode int) {
	flags := pflag.NewFlagSet("statusboard", pflag.ContinueOnError)

	defaultPort := 9000
	if env := cmd.getenv("STATUSBOARD_PORT"); env != "" {
		p, err := strconv.Atoi(env)
		if err != nil {
			return cmd.usageError(args[0], "invalid argument: STATUSBOARD_PORT is not a number: %q", env)
		}
		defaultPort = p
	}

	defaultInterval := schedule.DefaultSchedule.String()
	if env := cmd.getenv("STATUSBOARD_INTERVAL"); env != "" {
		defaultInterval = env
	}

	var interval, timezone string
	flags.IntVarP(&cmd.ListenPort, "port", "p", defaultPort, "HTTP listen port")
	flags.StringVarP(&interval, "interval", "i", defaultInterval, "Refresh interval or cron schedule")
	flags.DurationVarP(&cmd.Timeout, "timeout", "t", 0, "Timeout of each request to the backend")
	flags.StringVarP(&cmd.Name, "name", "n", cmd.getenv("STATUSBOARD_NAME"), "Dashboard title")
	flags.StringVarP(&timezone, "timezone", "z", cmd.getenv("STATUSBOARD_TIMEZONE"), "Time zone to show times in")
	flags.BoolVarP(&cmd.OneshotMode, "oneshot", "1", false, "Fetch status only once and print it")
	flags.BoolVarP(&cmd.ASCII, "ascii", "a", false, "Use ASCII characters only in the oneshot mode")
	flags.BoolVarP(&cmd.ShowVersion, "version", "v", false, "Show version")
	flags.BoolVarP(&cmd.ShowHelp, "help", "h", false, "Show help message")

	if err := flags.Parse(args[1:]); err != nil {
		return cmd.usageError(args[0], "%s", err)
	}

	if cmd.ShowVersion || cmd.ShowHelp {
		return 0
	}

	if cmd.OneshotMode {
		if flags.Changed("port") {
			fmt.Fprintln(cmd.ErrStream, "warning: port option will ignored in the oneshot mode.")
		}
		if flags.Changed("interval") {
			fmt.Fprintln(cmd.ErrStream, "warning: interval option will ignored in the oneshot mode.")
		}
	} else if flags.Changed("ascii") {
		fmt.Fprintln(cmd.ErrStream, "warning: ascii option will ignored in the server mode. please use /status.txt?charset=ascii instead.")
	}

	if cmd.Timeout < 0 {
		return cmd.usageError(args[0], "invalid argument: timeout must not be negative: %s", cmd.Timeout)
	}

	var err error
	if cmd.Schedule, err = schedule.Parse(interval); err != nil {
		return cmd.usageError(args[0], "invalid argument: %s", err)
	}

	if timezone == "" {
		cmd.Location = time.Local
	} else if cmd.Location, err = time.LoadLocation(timezone); err != nil {
		return cmd.usageError(args[0], "invalid argument: unknown time zone: %q", timezone)
	}

	var backend string
	switch flags.NArg() {
	case 0:
		backend = cmd.getenv("STATUSBOARD_BACKEND")
	case 1:
		backend = flags.Arg(0)
	default:
		return cmd.usageError(args[0], "invalid argument: too many backend URLs: %q", flags.Args())
	}
	if backend == "" {
		cmd.PrintUsage(false)
		return 2
	}

	u, err := url.Parse(backend)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return cmd.usageError(args[0], "invalid argument: backend URL must be an absolute http or https URL: %q", backend)
	}
	cmd.BackendURL = u

	return 0
}

func (cmd *StatusboardCommand) PrintVersion() {
	fmt.Fprintf(cmd.OutStream, "statusboard version %s (%s)\n", meta.Version, meta.Commit)
}

// Config returns the appearance settings for the endpoint.
func (cmd *StatusboardCommand) Config() endpoint.Config {
	return endpoint.Config{
		Title:    cmd.Name,
		Location: cmd.Location,
		Schedule: cmd.Schedule,
	}
}

// NewClient makes a backend client from the parsed arguments.
func (cmd *StatusboardCommand) NewClient() *api.Client {
	c := api.NewClient(cmd.BackendURL)
	c.UserAgent = fmt.Sprintf("statusboard/%s", meta.Version)
	if cmd.Timeout > 0 {
		c.HTTPClient = &http.Client{Timeout: cmd.Timeout}
	}
	return c
}

func (cmd *StatusboardCommand) Run(args []string) (exitCode int) {
	if code := cmd.ParseArgs(args); code != 0 {
		return code
	}

	if cmd.ShowVersion {
		cmd.PrintVersion()
		return 0
	}

	if cmd.ShowHelp {
		cmd.PrintUsage(true)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cmd.OneshotMode {
		d := dashboard.New(cmd.NewClient(), console.New(cmd.ErrStream))
		return cmd.RunOneshot(ctx, d)
	}

	d := dashboard.New(cmd.NewClient(), console.New(cmd.OutStream))
	return cmd.RunServer(ctx, d)
}

func main() {
	// .env is optional.
	godotenv.Load()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "oneshot":
			os.Args[1] = "-1"
		case "export":
			os.Exit(defaultExportCommand.Run(os.Args))
		case "mcp":
			os.Exit(defaultMCPCommand.Run(os.Args))
		}
	}

	os.Exit(defaultStatusboardCommand.Run(os.Args))
}
