package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/bcdxn/f1next/internal/domain"
	"github.com/bcdxn/f1next/internal/render"
	"github.com/bcdxn/f1next/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// NewCountdown returns a bubbletea program that keeps the schedule and the countdown of the
// weekend up to date, re-rendering every second until the user quits.
func NewCountdown(wk domain.Weekend, printer *render.Printer, style *styles.Style, opts ...TUIOption) *tea.Program {
	c := newCountdown(wk, printer, style, opts...)

	programOpts := []tea.ProgramOption{tea.WithContext(c.ctx)}
	if c.output != nil {
		programOpts = append(programOpts, tea.WithOutput(c.output))
	}
	if c.input != nil {
		programOpts = append(programOpts, tea.WithInput(c.input))
	}
	// return new Bubbletea program
	return tea.NewProgram(c, programOpts...)
}

func newCountdown(wk domain.Weekend, printer *render.Printer, style *styles.Style, opts ...TUIOption) Countdown {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = style.Highlight

	c := Countdown{
		weekend: wk,
		printer: printer,
		style:   style,
		spinner: sp,
		clock:   time.Now,
		logger:  slog.Default(),
		ctx:     context.Background(),
	}
	// apply given options
	for _, opt := range opts {
		opt(&c)
	}
	c.now = c.clock()
	return c
}

type TUIOption = func(c *Countdown)

// WithLogger configures the logger to use within the TUI program
func WithLogger(l *slog.Logger) TUIOption {
	return func(c *Countdown) { c.logger = l }
}

// WithContext configures the context to use within the TUI program
func WithContext(ctx context.Context) TUIOption {
	return func(c *Countdown) { c.ctx = ctx }
}

// WithClock configures the source of the current time; primarily used for testing.
func WithClock(clock func() time.Time) TUIOption {
	return func(c *Countdown) { c.clock = clock }
}

// WithOutput configures where the program renders to instead of standard output.
func WithOutput(w io.Writer) TUIOption {
	return func(c *Countdown) { c.output = w }
}

// WithInput configures where the program reads key presses from instead of standard input.
func WithInput(r io.Reader) TUIOption {
	return func(c *Countdown) { c.input = r }
}

/* Bubbletea Interface Implementation
------------------------------------------------------------------------------------------------- */

func (c Countdown) Init() tea.Cmd {
	return tea.Batch(c.spinner.Tick, tick())
}

func (c Countdown) View() string {
	return c.printer.Render(c.weekend, c.now) +
		"\n" + c.spinner.View() + " " + c.style.Footer.Render("press q to quit") + "\n"
}

func (c Countdown) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKeyMsg(c, msg)
	case TickMsg:
		return handleTickMsg(c, msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}
	return c, nil
}

/* Tea Mesage Types
------------------------------------------------------------------------------------------------- */

// TickMsg is sent once per second to refresh the countdown.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

/* Tea Mesage handlers
------------------------------------------------------------------------------------------------- */

func handleKeyMsg(c Countdown, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		c.logger.Debug("received quit tea message")
		return c, tea.Quit
	}
	return c, nil
}

func handleTickMsg(c Countdown, _ TickMsg) (tea.Model, tea.Cmd) {
	c.now = c.clock()
	return c, tick()
}

/* Type Definitions
------------------------------------------------------------------------------------------------- */

type Countdown struct {
	weekend domain.Weekend
	printer *render.Printer
	style   *styles.Style
	spinner spinner.Model
	clock   func() time.Time
	now     time.Time
	logger  *slog.Logger
	ctx     context.Context
	output  io.Writer
	input   io.Reader
}
