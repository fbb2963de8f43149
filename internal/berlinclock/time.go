package berlinclock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTime is matched by every *InvalidTimeError
	ErrInvalidTime = errors.New("invalid time")

	// ErrMalformedTime is matched by every *ParseError
	ErrMalformedTime = errors.New("malformed time")
)

// Time is a time of day as shown on the clock. Hours may be 24 only at 24:00:00
type Time struct {
	Hours   int
	Minutes int
	Seconds int
}

// InvalidTimeError reports a Time with a field outside its legal range
type InvalidTimeError struct {
	Time   Time
	Field  string
	Reason string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %s: %s %s", e.Time, e.Field, e.Reason)
}

func (e *InvalidTimeError) Is(target error) bool {
	return target == ErrInvalidTime
}

// ParseError reports text that is not of the form HH:MM:SS
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed time %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedTime
}

// FromClock takes the hour, minute and second of t in its own location
func FromClock(t time.Time) Time {
	return Time{Hours: t.Hour(), Minutes: t.Minute(), Seconds: t.Second()}
}

// ParseTime parses "HH:MM:SS" into a Time. Only the shape is checked here;
// ranges are checked by Validate
func ParseTime(s string) (Time, error) {
	input := strings.TrimSpace(s)
	parts := strings.Split(input, ":")
	if len(parts) != 3 {
		return Time{}, &ParseError{Input: s, Reason: fmt.Sprintf("expected 3 fields, got %d", len(parts))}
	}

	var values [3]int
	for i, part := range parts {
		if part == "" {
			return Time{}, &ParseError{Input: s, Reason: fmt.Sprintf("field %d is empty", i+1)}
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return Time{}, &ParseError{Input: s, Reason: fmt.Sprintf("field %d is not a number: %q", i+1, part)}
			}
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return Time{}, &ParseError{Input: s, Reason: fmt.Sprintf("field %d: %v", i+1, err)}
		}
		values[i] = v
	}

	return Time{Hours: values[0], Minutes: values[1], Seconds: values[2]}, nil
}

// Validate checks that every field is within range
func (t Time) Validate() error {
	switch {
	case t.Hours < 0 || t.Hours > 24:
		return &InvalidTimeError{Time: t, Field: "hours", Reason: "must be between 0 and 24"}
	case t.Minutes < 0 || t.Minutes > 59:
		return &InvalidTimeError{Time: t, Field: "minutes", Reason: "must be between 0 and 59"}
	case t.Seconds < 0 || t.Seconds > 59:
		return &InvalidTimeError{Time: t, Field: "seconds", Reason: "must be between 0 and 59"}
	case t.Hours == 24 && (t.Minutes != 0 || t.Seconds != 0):
		return &InvalidTimeError{Time: t, Field: "hours", Reason: "may be 24 only at 24:00:00"}
	}
	return nil
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}
