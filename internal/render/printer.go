package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bcdxn/f1next/internal/domain"
	"github.com/bcdxn/f1next/internal/tui/styles"
)

// nameWidth is the column width of session names in the schedule view.
const nameWidth = 25

// Options selects the optional views printed after the header line.
type Options struct {
	Schedule           bool // Schedule lists every session instead of the compact date range
	Countdown          bool // Countdown prints the time left until the next session
	CircuitInformation bool // CircuitInformation prints the round and the venue
}

// Printer renders a race weekend as text.
type Printer struct {
	opts  Options
	style *styles.Style
	loc   *time.Location
}

// NewPrinter returns a printer for the given views. Session times are shown in loc.
func NewPrinter(opts Options, style *styles.Style, loc *time.Location) *Printer {
	if loc == nil {
		loc = time.Local
	}
	return &Printer{opts: opts, style: style, loc: loc}
}

// Print writes the weekend to w as seen at now.
func (p *Printer) Print(w io.Writer, wk domain.Weekend, now time.Time) error {
	_, err := io.WriteString(w, p.Render(wk, now))
	return err
}

// Render returns the text for the weekend as seen at now.
func (p *Printer) Render(wk domain.Weekend, now time.Time) string {
	var b strings.Builder

	p.header(&b, wk)
	if p.opts.CircuitInformation {
		p.circuit(&b, wk)
	}
	if p.opts.Schedule {
		b.WriteString("\n")
		p.schedule(&b, wk, now)
	}
	if p.opts.Countdown {
		b.WriteString("\n")
		p.countdown(&b, wk, now)
	}

	return b.String()
}

func (p *Printer) header(b *strings.Builder, wk domain.Weekend) {
	b.WriteString("The next ")
	b.WriteString(p.style.Brand.Render("Formula 1"))
	b.WriteString(" weekend is the ")
	b.WriteString(p.style.Highlight.Render(wk.RaceName))
	if !p.opts.Schedule && len(wk.Sessions) > 0 {
		b.WriteString(" on ")
		b.WriteString(DateRange(wk.First().In(p.loc), wk.Last().In(p.loc)))
	}
	b.WriteString("\n")
}

func (p *Printer) circuit(b *strings.Builder, wk domain.Weekend) {
	venue := fmt.Sprintf("%s, %s, %s", wk.Circuit.Name, wk.Circuit.Locality, wk.Circuit.Country)
	fmt.Fprintf(b, "Round %d at the %s\n", wk.Round, p.style.Bold.Render(venue))
}

// schedule lists the sessions with past ones dimmed and the next one highlighted.
func (p *Printer) schedule(b *strings.Builder, wk domain.Weekend, now time.Time) {
	// time zone names are ambiguous, the UTC offset is not
	ref := wk.Last()
	if race, ok := wk.Race(); ok {
		ref = race.Start
	}
	fmt.Fprintf(b, "%-*sDate and Time (UTC%s)\n", nameWidth, "Event", ref.In(p.loc).Format("-07:00"))
	fmt.Fprintf(b, "%-*s%s\n", nameWidth, "-----", "-------------------")

	next, hasNext := wk.Next(now)
	for _, s := range wk.Sessions {
		when := s.Start.In(p.loc).Format("02 Jan starting at 03:04 PM")
		switch {
		case !s.Start.After(now):
			when = p.style.Subtle.Render(when)
		case hasNext && s.Kind == next.Kind:
			when = p.style.Highlight.Render(when)
		}
		fmt.Fprintf(b, "%-*s%s\n", nameWidth, s.Kind.DisplayName(), when)
	}
}

// countdown prints the time left until the next session; once every session has started it prints
// the time elapsed since the race started instead.
func (p *Printer) countdown(b *strings.Builder, wk domain.Weekend, now time.Time) {
	if next, ok := wk.Next(now); ok {
		fmt.Fprintf(b, "%s will start in %s\n", next.Kind.DisplayName(), Countdown(next.Start.Sub(now)))
		return
	}

	started := wk.Last()
	if race, ok := wk.Race(); ok {
		started = race.Start
	}
	fmt.Fprintf(b, "The race started %s ago\n", Countdown(now.Sub(started)))
}
