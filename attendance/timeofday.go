package attendance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Missing is the placeholder recorded in place of an absent punch time.
const Missing = "-"

var ErrMissingTime = errors.New("attendance: time not recorded")

// TimeOfDay is a wall-clock time without date or zone.
type TimeOfDay struct {
	Hour, Minute, Second int
}

// ClockOf drops the date and zone of t.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay reads "H:M" or "H:M:S". Empty input and the "-" placeholder
// return ErrMissingTime.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == Missing {
		return TimeOfDay{}, ErrMissingTime
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("attendance: bad time of day %q", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return TimeOfDay{}, fmt.Errorf("attendance: bad time of day %q", s)
		}
		v[i] = n
	}
	t := TimeOfDay{Hour: v[0], Minute: v[1], Second: v[2]}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return TimeOfDay{}, fmt.Errorf("attendance: time of day out of range %q", s)
	}
	return t, nil
}

// MustTimeOfDay is ParseTimeOfDay for literals; it panics on bad input.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seconds is the offset from midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Compare returns -1, 0 or +1. The order matches comparing the zero-padded
// HH:MM:SS renderings as strings.
func (t TimeOfDay) Compare(o TimeOfDay) int {
	a, b := t.Seconds(), o.Seconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Compare(o) < 0 }
func (t TimeOfDay) After(o TimeOfDay) bool  { return t.Compare(o) > 0 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
