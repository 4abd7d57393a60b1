package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
)

var (
	ErrInvalidRange  = errors.New("report: from date is after to date")
	ErrRangeTooLarge = errors.New("report: date range too large")
)

// DefaultMaxRangeDays bounds a report when no limit is configured.
const DefaultMaxRangeDays = 366

// CheckSpan returns ErrRangeTooLarge when [from, to] covers more than
// maxDays calendar days. maxDays <= 0 selects DefaultMaxRangeDays. An
// inverted range passes; callers decide what it means.
func CheckSpan(from, to time.Time, maxDays int) error {
	if maxDays <= 0 {
		maxDays = DefaultMaxRangeDays
	}
	if from.After(to) {
		return nil
	}
	days := to.Sub(from).Hours()/24 + 1
	if days > float64(maxDays) {
		return fmt.Errorf("%w: %d days allowed", ErrRangeTooLarge, maxDays)
	}
	return nil
}

// EmployeeSource lists employees with their weekly schedules.
type EmployeeSource interface {
	Employees(ctx context.Context, departmentID uint64) ([]attendance.Employee, error)
}

// HolidaySource lists holiday dates in a range.
type HolidaySource interface {
	Holidays(ctx context.Context, from, to time.Time) ([]string, error)
}

// PunchSource loads punches keyed by date and employee.
type PunchSource interface {
	Punches(ctx context.Context, from, to time.Time, departmentID uint64) (attendance.PunchBook, error)
}

type Request struct {
	From         time.Time
	To           time.Time
	DepartmentID uint64
}

// Result is a generated report together with the employees it covers.
type Result struct {
	Rows      []attendance.Row
	Employees []attendance.Employee
}

type Service struct {
	Employees     EmployeeSource
	Holidays      HolidaySource
	Punches       PunchSource
	ExtraHolidays []string
	Workers       int
	MaxRangeDays  int
	Log           *zap.Logger
}

// Generate loads the inputs concurrently and classifies every
// (employee, date) in the requested range.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.From.After(req.To) {
		return nil, ErrInvalidRange
	}
	if err := CheckSpan(req.From, req.To, s.MaxRangeDays); err != nil {
		return nil, err
	}
	log := s.logger().With(
		zap.String("from", attendance.FormatDate(req.From)),
		zap.String("to", attendance.FormatDate(req.To)),
		zap.Uint64("department_id", req.DepartmentID),
	)
	started := time.Now()

	var (
		employees []attendance.Employee
		holidays  []string
		punches   attendance.PunchBook
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.Employees.Employees(gctx, req.DepartmentID)
		if err != nil {
			return fmt.Errorf("report: employees: %w", err)
		}
		return nil
	})
	if s.Holidays != nil {
		g.Go(func() error {
			var err error
			holidays, err = s.Holidays.Holidays(gctx, req.From, req.To)
			if err != nil {
				return fmt.Errorf("report: holidays: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		punches, err = s.Punches.Punches(gctx, req.From, req.To, req.DepartmentID)
		if err != nil {
			return fmt.Errorf("report: punches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("load report inputs", zap.Error(err))
		return nil, err
	}

	set := attendance.NewHolidaySet(holidays...)
	set.Add(s.ExtraHolidays...)
	if punches == nil {
		punches = attendance.PunchBook{}
	}

	rows, err := attendance.BuildParallel(ctx, attendance.Input{
		From:      req.From,
		To:        req.To,
		Holidays:  set,
		Employees: employees,
		Punches:   punches,
	}, s.Workers)
	if err != nil {
		return nil, err
	}

	log.Debug("report generated",
		zap.Int("employees", len(employees)),
		zap.Int("rows", len(rows)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return &Result{Rows: rows, Employees: employees}, nil
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
