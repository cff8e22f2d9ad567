package domain

import (
	"sort"
	"time"
)

const (
	SessionKindRace             SessionKind = "Race"
	SessionKindQualifying       SessionKind = "Qualifying"
	SessionKindFirstPractice    SessionKind = "FirstPractice"
	SessionKindSecondPractice   SessionKind = "SecondPractice"
	SessionKindThirdPractice    SessionKind = "ThirdPractice"
	SessionKindSprint           SessionKind = "Sprint"
	SessionKindSprintQualifying SessionKind = "SprintQualifying"
)

// SessionKind is one of the sessions that make up a race weekend, named after the key used for it
// in the Ergast API race record.
type SessionKind string

// SessionKinds lists every known session kind, Race first. The position of a kind in this list is
// used to order sessions that share a start time.
var SessionKinds = []SessionKind{
	SessionKindRace,
	SessionKindQualifying,
	SessionKindFirstPractice,
	SessionKindSecondPractice,
	SessionKindThirdPractice,
	SessionKindSprint,
	SessionKindSprintQualifying,
}

var displayNames = map[SessionKind]string{
	SessionKindRace:             "Race",
	SessionKindQualifying:       "Qualifying",
	SessionKindFirstPractice:    "First Practice",
	SessionKindSecondPractice:   "Second Practice",
	SessionKindThirdPractice:    "Third Practice",
	SessionKindSprint:           "Sprint",
	SessionKindSprintQualifying: "Sprint Qualifying",
}

// DisplayName returns the human readable name of the session kind, e.g. "First Practice".
func (k SessionKind) DisplayName() string {
	if n, ok := displayNames[k]; ok {
		return n
	}
	return string(k)
}

// Duration is the nominal length of a session of this kind; the API only publishes start times.
func (k SessionKind) Duration() time.Duration {
	if k == SessionKindRace {
		return 2 * time.Hour
	}
	return time.Hour
}

func (k SessionKind) rank() int {
	for i, kind := range SessionKinds {
		if kind == k {
			return i
		}
	}
	return len(SessionKinds)
}

// Session is a single scheduled session within a race weekend.
type Session struct {
	Kind  SessionKind
	Start time.Time // Start is the scheduled start of the session in UTC
}

// Circuit is the venue at which a race weekend takes place.
type Circuit struct {
	Name     string // Name is the full name of the circuit, e.g.: "Silverstone Circuit"
	Locality string // Locality is the town or city of the circuit
	Country  string // Country is the country of the circuit
}

// Weekend represents the next race weekend: the race itself plus every other session published for
// it, ordered chronologically.
type Weekend struct {
	Season   string
	Round    int
	RaceName string
	Circuit  Circuit
	Sessions []Session
}

// NewWeekend builds a weekend from a set of session start times. The sessions are sorted ascending
// by start; sessions that share a start are ordered by kind so that the result is deterministic.
func NewWeekend(season string, round int, raceName string, circuit Circuit, starts map[SessionKind]time.Time) Weekend {
	sessions := make([]Session, 0, len(starts))
	for kind, start := range starts {
		sessions = append(sessions, Session{Kind: kind, Start: start.UTC()})
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Start.Equal(sessions[j].Start) {
			return sessions[i].Kind.rank() < sessions[j].Kind.rank()
		}
		return sessions[i].Start.Before(sessions[j].Start)
	})

	return Weekend{
		Season:   season,
		Round:    round,
		RaceName: raceName,
		Circuit:  circuit,
		Sessions: sessions,
	}
}

// First returns the start of the earliest session of the weekend.
func (w Weekend) First() time.Time {
	if len(w.Sessions) == 0 {
		return time.Time{}
	}
	return w.Sessions[0].Start
}

// Last returns the start of the latest session of the weekend.
func (w Weekend) Last() time.Time {
	if len(w.Sessions) == 0 {
		return time.Time{}
	}
	return w.Sessions[len(w.Sessions)-1].Start
}

// Race returns the race session of the weekend.
func (w Weekend) Race() (Session, bool) {
	for _, s := range w.Sessions {
		if s.Kind == SessionKindRace {
			return s, true
		}
	}
	return Session{}, false
}

// Next returns the first session, in chronological order, that starts strictly after now.
func (w Weekend) Next(now time.Time) (Session, bool) {
	for _, s := range w.Sessions {
		if s.Start.After(now) {
			return s, true
		}
	}
	return Session{}, false
}
