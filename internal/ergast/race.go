package ergast

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/bcdxn/f1next/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

// nextRacePath is the gjson path of the first race record in an Ergast race table response.
const nextRacePath = "MRData.RaceTable.Races.0"

var validate = newValidator()

// raceRecord is a single entry of the Ergast race table. Sessions other than the race itself are
// optional; which of them are present depends on the weekend format.
type raceRecord struct {
	Season           string         `json:"season"`
	Round            string         `json:"round" validate:"required,numeric"`
	RaceName         string         `json:"raceName" validate:"required"`
	Circuit          circuitRecord  `json:"Circuit"`
	Date             string         `json:"date" validate:"required,datetime=2006-01-02"`
	Time             string         `json:"time" validate:"required,datetime=15:04:05Z07:00"`
	FirstPractice    *sessionRecord `json:"FirstPractice"`
	SecondPractice   *sessionRecord `json:"SecondPractice"`
	ThirdPractice    *sessionRecord `json:"ThirdPractice"`
	Qualifying       *sessionRecord `json:"Qualifying"`
	Sprint           *sessionRecord `json:"Sprint"`
	SprintQualifying *sessionRecord `json:"SprintQualifying"`
}

type circuitRecord struct {
	CircuitName string         `json:"circuitName" validate:"required"`
	Location    locationRecord `json:"Location"`
}

type locationRecord struct {
	Locality string `json:"locality" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

type sessionRecord struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04:05Z07:00"`
}

// start joins the date and time fields and parses them as an instant; the API publishes times
// in UTC with a trailing 'Z'.
func (s sessionRecord) start() (time.Time, error) {
	return parseStart(s.Date, s.Time)
}

func (r raceRecord) sessions() map[domain.SessionKind]*sessionRecord {
	return map[domain.SessionKind]*sessionRecord{
		domain.SessionKindRace:             {Date: r.Date, Time: r.Time},
		domain.SessionKindFirstPractice:    r.FirstPractice,
		domain.SessionKindSecondPractice:   r.SecondPractice,
		domain.SessionKindThirdPractice:    r.ThirdPractice,
		domain.SessionKindQualifying:       r.Qualifying,
		domain.SessionKindSprint:           r.Sprint,
		domain.SessionKindSprintQualifying: r.SprintQualifying,
	}
}

// ParseNext extracts the next race weekend from the body of an Ergast "next" race table response.
// Any deviation from the expected shape is reported as a *DataShapeError.
func ParseNext(body []byte) (domain.Weekend, error) {
	if !gjson.ValidBytes(body) {
		return domain.Weekend{}, &DataShapeError{Reason: "response is not valid JSON"}
	}
	raw := gjson.GetBytes(body, nextRacePath)
	if !raw.Exists() {
		return domain.Weekend{}, &DataShapeError{Reason: "no upcoming race in response"}
	}
	if !raw.IsObject() {
		return domain.Weekend{}, &DataShapeError{Reason: "race record is not an object"}
	}

	var rec raceRecord
	if err := json.Unmarshal([]byte(raw.Raw), &rec); err != nil {
		return domain.Weekend{}, &DataShapeError{Reason: fmt.Sprintf("error decoding race record: %v", err)}
	}
	if err := validate.Struct(rec); err != nil {
		return domain.Weekend{}, shapeError(err)
	}

	round, err := strconv.Atoi(rec.Round)
	if err != nil {
		return domain.Weekend{}, &DataShapeError{Reason: fmt.Sprintf("invalid round '%s'", rec.Round)}
	}

	starts := make(map[domain.SessionKind]time.Time)
	for kind, s := range rec.sessions() {
		// not every weekend has a sprint or a third practice
		if s == nil {
			continue
		}
		start, err := s.start()
		if err != nil {
			return domain.Weekend{}, &DataShapeError{Reason: fmt.Sprintf("invalid %s start: %v", kind, err)}
		}
		starts[kind] = start
	}

	circuit := domain.Circuit{
		Name:     rec.Circuit.CircuitName,
		Locality: rec.Circuit.Location.Locality,
		Country:  rec.Circuit.Location.Country,
	}
	return domain.NewWeekend(rec.Season, round, rec.RaceName, circuit, starts), nil
}

func parseStart(date, clock string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, date+"T"+clock)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// shapeError converts validation failures into a DataShapeError naming the first offending field
// by its JSON path.
func shapeError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &DataShapeError{Reason: err.Error()}
	}
	fe := verrs[0]
	// drop the root struct name from the namespace, e.g. "raceRecord.Circuit.circuitName"
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return &DataShapeError{Reason: fmt.Sprintf("missing field '%s'", field)}
	default:
		return &DataShapeError{Reason: fmt.Sprintf("invalid value '%v' for field '%s'", fe.Value(), field)}
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
