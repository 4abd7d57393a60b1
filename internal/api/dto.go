package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
)

var weekdayKeys = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ReportQuery is the query string of GET /api/v1/attendance/report.
type ReportQuery struct {
	From         string `query:"from" validate:"required,datetime=2006-01-02"`
	To           string `query:"to" validate:"required,datetime=2006-01-02"`
	DepartmentID uint64 `query:"department_id"`
	Department   string `query:"department"`
	Status       string `query:"status"`
	EmployeeID   string `query:"employee_id"`
	Q            string `query:"q"`
	Page         int    `query:"page" validate:"omitempty,min=1,max=100000"`
	PerPage      int    `query:"per_page" validate:"omitempty,min=1,max=500"`
}

// Filter turns the query into a row filter. Status is a comma separated
// list of status names.
func (q ReportQuery) Filter() (attendance.Filter, error) {
	f := attendance.Filter{
		Department: strings.TrimSpace(q.Department),
		EmployeeID: strings.TrimSpace(q.EmployeeID),
		Query:      q.Q,
	}
	for _, name := range strings.Split(q.Status, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		s, err := attendance.ParseStatus(name)
		if err != nil {
			return f, err
		}
		f.Statuses = append(f.Statuses, s)
	}
	return f, nil
}

// Flag accepts a JSON boolean, number, or a string holding either;
// anything non-zero is true.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true":
		*f = true
		return nil
	case "false", "null", `""`:
		*f = false
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if v, err := strconv.ParseBool(s); err == nil {
		*f = Flag(v)
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("flag: cannot use %s", b)
	}
	*f = n != 0
	return nil
}

type DayDTO struct {
	Working Flag    `json:"working"`
	InTime  *string `json:"in_time" validate:"omitempty,clock"`
	OutTime *string `json:"out_time" validate:"omitempty,clock"`
}

// EmployeeKey is an employee id sent either as a JSON string or number.
type EmployeeKey string

func (k *EmployeeKey) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = EmployeeKey(strings.TrimSpace(s))
		return nil
	}
	if string(b) == "null" {
		*k = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("employee id: cannot use %s", b)
	}
	*k = EmployeeKey(n.String())
	return nil
}

type EmployeeDTO struct {
	ID         EmployeeKey       `json:"id" validate:"required"`
	Name       string            `json:"name"`
	Email      string            `json:"email" validate:"omitempty,email"`
	Department string            `json:"department"`
	Schedule   map[string]DayDTO `json:"schedule" validate:"distinctdays,dive,keys,weekday,endkeys"`
}

// PunchDTO mirrors the punch payload of the attendance API. in_time and
// out_time are accepted and ignored.
type PunchDTO struct {
	In      string `json:"att_punch_in"`
	Out     string `json:"att_punch_out"`
	InTime  string `json:"in_time,omitempty"`
	OutTime string `json:"out_time,omitempty"`
}

// ClassifyRequest is the body of POST /api/v1/attendance/classify.
type ClassifyRequest struct {
	FromDate                string                         `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate                  string                         `json:"toDate" validate:"required,datetime=2006-01-02"`
	HolidayDates            []string                       `json:"holidayDates" validate:"dive,datetime=2006-01-02"`
	Employees               []EmployeeDTO                  `json:"employees" validate:"dive"`
	PunchesByDateByEmployee map[string]map[string]PunchDTO `json:"punchesByDateByEmployee" validate:"dive,keys,datetime=2006-01-02,endkeys"`
}

// Input converts a validated request into classifier input.
func (r ClassifyRequest) Input() (attendance.Input, error) {
	from, err := attendance.ParseDate(r.FromDate)
	if err != nil {
		return attendance.Input{}, err
	}
	to, err := attendance.ParseDate(r.ToDate)
	if err != nil {
		return attendance.Input{}, err
	}

	in := attendance.Input{
		From:     from,
		To:       to,
		Holidays: attendance.NewHolidaySet(r.HolidayDates...),
		Punches:  attendance.PunchBook{},
	}
	for _, e := range r.Employees {
		emp := attendance.Employee{ID: string(e.ID), Name: e.Name, Email: e.Email, Department: e.Department}
		for key, d := range e.Schedule {
			wd := weekdayKeys[strings.ToLower(key)]
			emp.Schedule[wd] = attendance.DaySchedule{
				Working: bool(d.Working),
				In:      clockPtr(d.InTime),
				Out:     clockPtr(d.OutTime),
			}
		}
		in.Employees = append(in.Employees, emp)
	}
	for date, byEmp := range r.PunchesByDateByEmployee {
		for id, p := range byEmp {
			in.Punches.Add(date, id, attendance.Punch{In: p.In, Out: p.Out})
		}
	}
	return in, nil
}

func clockPtr(s *string) *attendance.TimeOfDay {
	if s == nil {
		return nil
	}
	t, err := attendance.ParseTimeOfDay(*s)
	if err != nil {
		return nil
	}
	return &t
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == attendance.Missing {
			return true
		}
		_, err := attendance.ParseTimeOfDay(s)
		return err == nil
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, ok := weekdayKeys[strings.ToLower(fl.Field().String())]
		return ok
	})
	// Weekday keys are case-insensitive, so "Monday" and "monday" collide.
	_ = v.RegisterValidation("distinctdays", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.Map {
			return true
		}
		seen := make(map[string]bool, field.Len())
		for _, k := range field.MapKeys() {
			day := strings.ToLower(k.String())
			if seen[day] {
				return false
			}
			seen[day] = true
		}
		return true
	})
	return v
}
