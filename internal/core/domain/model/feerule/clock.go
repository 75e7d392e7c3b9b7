package feerule

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
)

// Clock is a local time of day in minutes after midnight.
type Clock int

// ParseClock parses an "HH:MM" 24-hour time of day.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("time of day", fmt.Errorf("%q is not HH:MM", s))
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// ClockOf returns the time of day of t in t's location.
func ClockOf(t time.Time) Clock {
	return Clock(t.Hour()*60 + t.Minute())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
