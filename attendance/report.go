package attendance

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Input is everything one report run needs, already loaded into memory.
type Input struct {
	From      time.Time
	To        time.Time
	Holidays  HolidaySet
	Employees []Employee
	Punches   PunchBook
}

// Build produces one row per (date, employee): dates ascending, employees
// in input order.
func Build(in Input) []Row {
	days := ExpandRange(in.From, in.To)
	rows := make([]Row, 0, len(days)*len(in.Employees))
	for _, d := range days {
		for _, e := range in.Employees {
			rows = append(rows, BuildRow(d, e, in.Holidays, in.Punches))
		}
	}
	return rows
}

// BuildParallel returns the same rows as Build, classifying each date on a
// pool of at most workers goroutines.
func BuildParallel(ctx context.Context, in Input, workers int) ([]Row, error) {
	if workers < 2 {
		return Build(in), nil
	}
	days := ExpandRange(in.From, in.To)
	n := len(in.Employees)
	rows := make([]Row, len(days)*n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range days {
		i, d := i, d
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j, e := range in.Employees {
				rows[i*n+j] = BuildRow(d, e, in.Holidays, in.Punches)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// BuildRow classifies a single pair and resolves its displayed times.
func BuildRow(date time.Time, e Employee, holidays HolidaySet, punches PunchBook) Row {
	row := Row{
		EmployeeID: e.ID,
		Name:       e.Name,
		Department: e.Department,
		Date:       FormatDate(date),
		In:         Missing,
		Out:        Missing,
		Duration:   Missing,
	}
	p := punches.Lookup(date, e.ID)
	if p != nil {
		row.In = orMissing(p.In)
		row.Out = orMissing(p.Out)
		row.Duration = Duration(p.In, p.Out)
	}
	row.Status = Classify(date, e.Schedule, holidays, p)
	return row
}

func orMissing(s string) string {
	if s == "" {
		return Missing
	}
	return s
}
