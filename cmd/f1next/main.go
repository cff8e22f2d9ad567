package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/bcdxn/f1next/internal/cache"
	"github.com/bcdxn/f1next/internal/calendar"
	"github.com/bcdxn/f1next/internal/config"
	"github.com/bcdxn/f1next/internal/domain"
	"github.com/bcdxn/f1next/internal/ergast"
	"github.com/bcdxn/f1next/internal/logger"
	"github.com/bcdxn/f1next/internal/render"
	"github.com/bcdxn/f1next/internal/tui"
	"github.com/bcdxn/f1next/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"
)

const (
	exitOK = iota
	exitError
	exitDataShape
)

type flags struct {
	forceDownload      bool
	schedule           bool
	countdown          bool
	circuitInformation bool
	color              bool
	colorSet           bool
	watch              bool
	icalPath           string
	testFile           string
	logFile            string
}

func main() {
	ctx, cancelCtx := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancelCtx()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now, time.Local))
}

// run executes the command and returns its exit code. Session times are shown in loc and now is
// only consulted once the weekend has been fetched.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time, loc *time.Location) int {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	l, closer, err := logger.New(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(stderr, "error opening log file: %v\n", err)
		return exitError
	}
	defer closer.Close()

	fetcher := ergast.NewFetcher(
		f.testFile,
		ergast.WithURL(cfg.APIURL),
		ergast.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		ergast.WithCache(cache.New(cfg.ResponseCacheDir())),
		ergast.WithLogger(l),
	)
	wk, err := fetcher.FetchNext(ctx, f.forceDownload)
	if err != nil {
		return reportFetchError(stderr, l, err)
	}
	l.Debug("fetched next weekend", "race", wk.RaceName, "sessions", len(wk.Sessions))

	if f.icalPath != "" {
		if err := exportCalendar(f.icalPath, stdout, wk, now()); err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		if f.icalPath == "-" {
			return exitOK
		}
	}

	r := styles.NewRenderer(stdout, f.colorSet && f.color)
	style := styles.Default(r)
	opts := render.Options{
		Schedule:           f.schedule,
		Countdown:          f.countdown,
		CircuitInformation: f.circuitInformation,
	}

	if f.watch {
		opts.Schedule, opts.Countdown = true, true
		printer := render.NewPrinter(opts, style, loc)
		p := tui.NewCountdown(wk, printer, style,
			tui.WithContext(ctx),
			tui.WithClock(now),
			tui.WithLogger(l),
			tui.WithOutput(stdout),
		)
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			l.Error("countdown exited with error", "err", err)
			fmt.Fprintln(stderr, err)
			return exitError
		}
		return exitOK
	}

	printer := render.NewPrinter(opts, style, loc)
	if err := printer.Print(stdout, wk, now()); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("f1next", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Shows you information about the next F1 Grand Prix")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  f1next [flags]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Flags:")
		fmt.Fprint(stderr, fs.FlagUsages())
	}

	fs.BoolVarP(&f.forceDownload, "force-download", "f", false, "Force cache to be refreshed.")
	fs.BoolVarP(&f.schedule, "schedule", "s", false, "Show the schedule for all events in the weekend.")
	fs.BoolVarP(&f.countdown, "countdown", "c", false, "Show countdown to the next event.")
	fs.BoolVarP(&f.circuitInformation, "circuit-information", "i", false, "Show circuit name and country.")
	fs.BoolVarP(&f.color, "color", "r", false, "Always printout colors and styling.")
	fs.BoolVarP(&f.watch, "watch", "w", false, "Keep the schedule and countdown updated until you quit.")
	fs.StringVar(&f.icalPath, "ical", "", "Write the weekend sessions as an iCalendar file (- for stdout).")
	fs.StringVar(&f.testFile, "test-file", "", "Read the API response from a local JSON file.")
	fs.StringVar(&f.logFile, "log-file", "", "Write debug logs to the given file.")
	fs.MarkHidden("test-file")
	fs.MarkHidden("log-file")

	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	// color is tri-state: unset defers to terminal detection
	f.colorSet = fs.Changed("color")
	return f, nil
}

func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	return config.Resolve(config.Config{LogFile: f.logFile}, cfg)
}

// reportFetchError prints a short message for a failed fetch and returns the exit code.
func reportFetchError(stderr io.Writer, l *slog.Logger, err error) int {
	l.Error("error fetching next weekend", "err", err)

	var ne *ergast.NetworkError
	var dse *ergast.DataShapeError
	switch {
	case errors.As(err, &ne) && ne.Timeout:
		fmt.Fprintln(stderr, "Connection error")
		return exitError
	case errors.As(err, &ne):
		fmt.Fprintln(stderr, "Error downloading data")
		return exitError
	case errors.As(err, &dse):
		fmt.Fprintf(stderr, "Unexpected data from the API: %s\n", dse.Reason)
		return exitDataShape
	default:
		fmt.Fprintln(stderr, err)
		return exitError
	}
}

func exportCalendar(path string, stdout io.Writer, wk domain.Weekend, stamp time.Time) error {
	if path == "-" {
		return calendar.Write(stdout, wk, stamp)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating calendar file: %w", err)
	}
	defer file.Close()
	return calendar.Write(file, wk, stamp)
}
