package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinBirthYear = 1900
	MaxBirthYear = 2100
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// BirthData is the payload accepted by every front-end. Hour and Minute are optional;
// a missing hour means the birth time is unknown and the chart has no hour pillar.
type BirthData struct {
	Year     int    `json:"year" jsonschema:"Gregorian birth year (1900-2100)"`
	Month    int    `json:"month" jsonschema:"Birth month 1-12"`
	Day      int    `json:"day" jsonschema:"Birth day 1-31"`
	Hour     *int   `json:"hour,omitempty" jsonschema:"Birth hour 0-23; omit when unknown"`
	Minute   *int   `json:"minute,omitempty" jsonschema:"Birth minute 0-59"`
	Gender   Gender `json:"gender" jsonschema:"male or female"`
	Timezone string `json:"timezone,omitempty" jsonschema:"IANA time zone of the birth place; defaults to the server zone"`
}

// ValidationError reports a payload rejected at the transport boundary.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate applies the range checks of the public API. Whether the date actually exists
// is left to the engine.
func (b BirthData) Validate() error {
	if b.Year < MinBirthYear || b.Year > MaxBirthYear {
		return invalid("year", "must be between %d and %d", MinBirthYear, MaxBirthYear)
	}
	if b.Month < 1 || b.Month > 12 {
		return invalid("month", "must be between 1 and 12")
	}
	if b.Day < 1 || b.Day > 31 {
		return invalid("day", "must be between 1 and 31")
	}
	if b.Hour != nil && (*b.Hour < 0 || *b.Hour > 23) {
		return invalid("hour", "must be between 0 and 23")
	}
	if b.Minute != nil {
		if b.Hour == nil {
			return invalid("minute", "requires hour")
		}
		if *b.Minute < 0 || *b.Minute > 59 {
			return invalid("minute", "must be between 0 and 59")
		}
	}
	if !b.Gender.IsValid() {
		return invalid("gender", "must be %q or %q", GenderMale, GenderFemale)
	}
	if b.Timezone != "" {
		if _, err := time.LoadLocation(b.Timezone); err != nil {
			return invalid("timezone", "unknown time zone %q", b.Timezone)
		}
	}
	return nil
}

// HasTime reports whether the birth time is known.
func (b BirthData) HasTime() bool { return b.Hour != nil }

func (b BirthData) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04d-%02d-%02d", b.Year, b.Month, b.Day)
	if b.Hour != nil {
		minute := 0
		if b.Minute != nil {
			minute = *b.Minute
		}
		fmt.Fprintf(&sb, " %02d:%02d", *b.Hour, minute)
	}
	sb.WriteString(" ")
	sb.WriteString(string(b.Gender))
	return sb.String()
}

// TimelineRequest asks for scored years in [StartYear, EndYear].
type TimelineRequest struct {
	Birth     BirthData `json:"birth"`
	StartYear int       `json:"start_year" jsonschema:"First year to score"`
	EndYear   int       `json:"end_year" jsonschema:"Last year to score (inclusive)"`
}

func (r TimelineRequest) Validate(maxYears int) error {
	if err := r.Birth.Validate(); err != nil {
		return err
	}
	if r.EndYear < r.StartYear {
		return invalid("end_year", "must not precede start_year")
	}
	if maxYears > 0 && r.EndYear-r.StartYear+1 > maxYears {
		return invalid("end_year", "window may span at most %d years", maxYears)
	}
	return nil
}
