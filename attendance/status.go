package attendance

import (
	"fmt"
	"strings"
)

// Status is the classification of one (employee, date) pair.
type Status int

const (
	Absent Status = iota
	Latecomer
	HalfDay
	Weekend
	Holiday
	SameInOut
	Present
)

// Statuses lists every status in declaration order.
var Statuses = []Status{Absent, Latecomer, HalfDay, Weekend, Holiday, SameInOut, Present}

var statusNames = [...]string{
	Absent:    "Absent",
	Latecomer: "Latecomer",
	HalfDay:   "HalfDay",
	Weekend:   "Weekend",
	Holiday:   "Holiday",
	SameInOut: "SameInOut",
	Present:   "Present",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus accepts the wire name of a status, case-insensitively.
func ParseStatus(name string) (Status, error) {
	name = strings.TrimSpace(name)
	for i, n := range statusNames {
		if strings.EqualFold(n, name) {
			return Status(i), nil
		}
	}
	return Absent, fmt.Errorf("attendance: unknown status %q", name)
}

func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("attendance: invalid status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
