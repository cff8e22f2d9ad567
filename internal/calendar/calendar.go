package calendar

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/bcdxn/f1next/internal/domain"
	"github.com/google/uuid"
)

const productID = "-//f1next//Formula 1 weekend//EN"

// uidNamespace scopes the UUIDs of exported sessions.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/bcdxn/f1next"))

// Build returns an iCalendar with one event per session of the weekend. Event UIDs only depend
// on the season, round and session kind, so importing a refreshed export updates the existing
// entries.
func Build(wk domain.Weekend, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(wk.RaceName)

	location := fmt.Sprintf("%s, %s, %s", wk.Circuit.Name, wk.Circuit.Locality, wk.Circuit.Country)
	for _, s := range wk.Sessions {
		e := cal.AddEvent(sessionUID(wk, s.Kind))
		e.SetDtStampTime(stamp.UTC())
		e.SetStartAt(s.Start)
		e.SetEndAt(s.Start.Add(s.Kind.Duration()))
		e.SetSummary(fmt.Sprintf("%s - %s", wk.RaceName, s.Kind.DisplayName()))
		e.SetLocation(location)
	}
	return cal
}

// Write serializes the weekend calendar to w.
func Write(w io.Writer, wk domain.Weekend, stamp time.Time) error {
	_, err := io.WriteString(w, Build(wk, stamp).Serialize())
	if err != nil {
		return fmt.Errorf("error writing calendar: %w", err)
	}
	return nil
}

func sessionUID(wk domain.Weekend, kind domain.SessionKind) string {
	name := fmt.Sprintf("%s/%d/%s", wk.Season, wk.Round, kind)
	return uuid.NewSHA1(uidNamespace, []byte(name)).String() + "@f1next"
}
