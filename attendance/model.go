package attendance

import "time"

// DaySchedule is an employee's plan for one weekday. In and Out are the
// baseline times punches are measured against; nil means no baseline.
type DaySchedule struct {
	Working bool
	In      *TimeOfDay
	Out     *TimeOfDay
}

// HasWindow reports whether at least one baseline time is defined.
func (d DaySchedule) HasWindow() bool {
	return d.In != nil || d.Out != nil
}

// WeeklySchedule is indexed by time.Weekday.
type WeeklySchedule [7]DaySchedule

// Day returns the schedule for the weekday of date.
func (w WeeklySchedule) Day(date time.Time) DaySchedule {
	return w[date.Weekday()]
}

type Employee struct {
	ID         string
	Name       string
	Email      string
	Department string
	Manager    bool
	Schedule   WeeklySchedule
}

// Punch holds the raw in/out times recorded for one employee on one day.
// Either side may be Missing.
type Punch struct {
	In  string `json:"att_punch_in" bson:"att_punch_in"`
	Out string `json:"att_punch_out" bson:"att_punch_out"`
}

// PunchBook maps date (YYYY-MM-DD) to employee id to punch.
type PunchBook map[string]map[string]Punch

// Add records p, replacing any earlier punch for the same pair.
func (b PunchBook) Add(date, employeeID string, p Punch) {
	day, ok := b[date]
	if !ok {
		day = make(map[string]Punch)
		b[date] = day
	}
	day[employeeID] = p
}

// Lookup returns the punch for (date, employee) or nil when none was logged.
func (b PunchBook) Lookup(date time.Time, employeeID string) *Punch {
	day, ok := b[FormatDate(date)]
	if !ok {
		return nil
	}
	p, ok := day[employeeID]
	if !ok {
		return nil
	}
	return &p
}

// HolidaySet is the organisation-wide holiday calendar.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from ISO dates. Entries that do not parse are
// kept verbatim and simply never match.
func NewHolidaySet(dates ...string) HolidaySet {
	s := make(HolidaySet, len(dates))
	s.Add(dates...)
	return s
}

func (s HolidaySet) Add(dates ...string) {
	for _, d := range dates {
		if t, err := ParseDate(d); err == nil {
			d = FormatDate(t)
		}
		s[d] = struct{}{}
	}
}

func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s[FormatDate(date)]
	return ok
}

// Row is one line of the attendance report.
type Row struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Date       string `json:"date"`
	In         string `json:"in_time"`
	Out        string `json:"out_time"`
	Duration   string `json:"duration"`
	Status     Status `json:"status"`
}
