package report

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
)

type fakeEmployees struct {
	list []attendance.Employee
	err  error
	dept uint64
}

func (f *fakeEmployees) Employees(_ context.Context, departmentID uint64) ([]attendance.Employee, error) {
	f.dept = departmentID
	return f.list, f.err
}

type fakeHolidays []string

func (f fakeHolidays) Holidays(context.Context, time.Time, time.Time) ([]string, error) {
	return f, nil
}

type fakePunches struct {
	book  attendance.PunchBook
	err   error
	calls atomic.Int32
}

func (f *fakePunches) Punches(context.Context, time.Time, time.Time, uint64) (attendance.PunchBook, error) {
	f.calls.Add(1)
	return f.book, f.err
}

func week() attendance.WeeklySchedule {
	in := attendance.MustTimeOfDay("09:00:00")
	out := attendance.MustTimeOfDay("18:00:00")
	var w attendance.WeeklySchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		w[d] = attendance.DaySchedule{Working: d != time.Sunday, In: &in, Out: &out}
	}
	return w
}

func day(t *testing.T, s string) time.Time {
	d, err := attendance.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestGenerate(t *testing.T) {
	book := attendance.PunchBook{}
	book.Add("2024-03-11", "1", attendance.Punch{In: "09:15:00", Out: "18:00:00"})
	book.Add("2024-03-12", "1", attendance.Punch{In: "08:50:00", Out: "18:05:00"})

	emps := &fakeEmployees{list: []attendance.Employee{{ID: "1", Name: "Lan", Department: "Sales", Schedule: week()}}}
	svc := &Service{
		Employees:     emps,
		Holidays:      fakeHolidays{"2024-03-13"},
		Punches:       &fakePunches{book: book},
		ExtraHolidays: []string{"2024-03-14"},
		Workers:       3,
		Log:           zaptest.NewLogger(t),
	}

	res, err := svc.Generate(context.Background(), Request{From: day(t, "2024-03-10"), To: day(t, "2024-03-14"), DepartmentID: 4})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), emps.dept)
	require.Len(t, res.Rows, 5)

	var got []attendance.Status
	for _, r := range res.Rows {
		got = append(got, r.Status)
	}
	assert.Equal(t, []attendance.Status{
		attendance.Weekend,
		attendance.Latecomer,
		attendance.Present,
		attendance.Holiday,
		attendance.Holiday,
	}, got)
	assert.Equal(t, "08:45", res.Rows[1].Duration)
	assert.Len(t, res.Employees, 1)
}

func TestGenerate_InvalidRange(t *testing.T) {
	p := &fakePunches{}
	svc := &Service{Employees: &fakeEmployees{}, Punches: p}
	_, err := svc.Generate(context.Background(), Request{From: day(t, "2024-03-02"), To: day(t, "2024-03-01")})
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Zero(t, p.calls.Load())
}

func TestGenerate_SourceError(t *testing.T) {
	boom := errors.New("mongo down")
	svc := &Service{
		Employees: &fakeEmployees{},
		Punches:   &fakePunches{err: boom},
	}
	_, err := svc.Generate(context.Background(), Request{From: day(t, "2024-03-01"), To: day(t, "2024-03-01")})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "report: punches")
}

func TestGenerate_NilPunchBook(t *testing.T) {
	svc := &Service{
		Employees: &fakeEmployees{list: []attendance.Employee{{ID: "1", Schedule: week()}}},
		Punches:   &fakePunches{},
	}
	res, err := svc.Generate(context.Background(), Request{From: day(t, "2024-03-11"), To: day(t, "2024-03-11")})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, attendance.Absent, res.Rows[0].Status)
}

func TestGenerate_RangeTooLarge(t *testing.T) {
	p := &fakePunches{}
	svc := &Service{Employees: &fakeEmployees{}, Punches: p, MaxRangeDays: 31}
	_, err := svc.Generate(context.Background(), Request{From: day(t, "2024-01-01"), To: day(t, "2024-02-01")})
	assert.ErrorIs(t, err, ErrRangeTooLarge)
	assert.Zero(t, p.calls.Load())

	_, err = svc.Generate(context.Background(), Request{From: day(t, "2024-01-01"), To: day(t, "2024-01-31")})
	assert.NoError(t, err)
}

func TestCheckSpan(t *testing.T) {
	assert.NoError(t, CheckSpan(day(t, "2024-01-01"), day(t, "2024-12-31"), 0))
	assert.ErrorIs(t, CheckSpan(day(t, "2024-01-01"), day(t, "2025-01-01"), 0), ErrRangeTooLarge)
	assert.ErrorIs(t, CheckSpan(day(t, "0001-01-01"), day(t, "9999-12-31"), 366), ErrRangeTooLarge)
	assert.NoError(t, CheckSpan(day(t, "2024-03-05"), day(t, "2024-03-01"), 1))
	assert.NoError(t, CheckSpan(day(t, "2024-03-05"), day(t, "2024-03-05"), 1))
}
