package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
)

// OpenMongo connects and pings the punch database.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("storage: connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("storage: ping mongo: %w", err)
	}
	return client, nil
}

// PunchStore reads check-in documents and renders them as local wall
// clock times in Loc.
type PunchStore struct {
	Col *mongo.Collection
	Loc *time.Location
}

func NewPunchStore(col *mongo.Collection, loc *time.Location) *PunchStore {
	if loc == nil {
		loc = time.UTC
	}
	return &PunchStore{Col: col, Loc: loc}
}

// Punches loads every document whose check-in or check-out falls on a
// local date in [from, to]. departmentID 0 means all departments.
func (s *PunchStore) Punches(ctx context.Context, from, to time.Time, departmentID uint64) (attendance.PunchBook, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.Loc)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, s.Loc).AddDate(0, 0, 1)

	filter := bson.M{
		"$or": bson.A{
			bson.M{"time_checkin": bson.M{"$gte": start, "$lt": end}},
			bson.M{"time_checkout": bson.M{"$gte": start, "$lt": end}},
		},
	}
	if departmentID != 0 {
		filter["department_id"] = departmentID
	}

	cur, err := s.Col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("storage: find punches: %w", err)
	}
	var docs []Attendance
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("storage: decode punches: %w", err)
	}
	return groupPunches(docs, s.Loc), nil
}

// groupPunches keeps the earliest check-in and the latest check-out for
// each (local date, employee).
func groupPunches(docs []Attendance, loc *time.Location) attendance.PunchBook {
	type span struct{ in, out time.Time }
	type key struct {
		date string
		user uint64
	}
	spans := map[key]*span{}
	var order []key

	for _, d := range docs {
		anchor := d.TimeCheckIn
		if anchor.IsZero() {
			anchor = d.TimeCheckOut
		}
		if anchor.IsZero() {
			continue
		}
		k := key{date: attendance.FormatDate(anchor.In(loc)), user: d.UserId}
		sp, ok := spans[k]
		if !ok {
			sp = &span{}
			spans[k] = sp
			order = append(order, k)
		}
		if !d.TimeCheckIn.IsZero() && (sp.in.IsZero() || d.TimeCheckIn.Before(sp.in)) {
			sp.in = d.TimeCheckIn
		}
		if !d.TimeCheckOut.IsZero() && d.TimeCheckOut.After(sp.out) {
			sp.out = d.TimeCheckOut
		}
	}

	book := attendance.PunchBook{}
	for _, k := range order {
		sp := spans[k]
		book.Add(k.date, strconv.FormatUint(k.user, 10), attendance.Punch{
			In:  clock(sp.in, loc),
			Out: clock(sp.out, loc),
		})
	}
	return book
}

func clock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return attendance.Missing
	}
	return attendance.ClockOf(t.In(loc)).String()
}
