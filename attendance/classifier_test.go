package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tod(s string) *TimeOfDay {
	t := MustTimeOfDay(s)
	return &t
}

// officeWeek works Monday to Saturday 09:00-18:00. Sunday keeps the window
// but is a weekly off.
func officeWeek() WeeklySchedule {
	var w WeeklySchedule
	for d := time.Sunday; d <= time.Saturday; d++ {
		w[d] = DaySchedule{Working: d != time.Sunday, In: tod("09:00:00"), Out: tod("18:00:00")}
	}
	return w
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestClassify(t *testing.T) {
	monday := date(t, "2024-03-11")
	sunday := date(t, "2024-03-10")
	week := officeWeek()
	none := NewHolidaySet()

	noWindow := officeWeek()
	noWindow[time.Monday] = DaySchedule{Working: true}

	inOnly := officeWeek()
	inOnly[time.Monday] = DaySchedule{Working: true, In: tod("09:00:00")}

	outOnly := officeWeek()
	outOnly[time.Monday] = DaySchedule{Working: true, Out: tod("18:00:00")}

	tests := []struct {
		name     string
		date     time.Time
		schedule WeeklySchedule
		holidays HolidaySet
		punch    *Punch
		want     Status
	}{
		{"holiday beats punches", monday, week, NewHolidaySet("2024-03-11"), &Punch{"09:00:00", "18:00:00"}, Holiday},
		{"holiday without punch", monday, week, NewHolidaySet("2024-03-11"), nil, Holiday},
		{"no schedule window", monday, noWindow, none, &Punch{"09:00:00", "18:00:00"}, Holiday},
		{"missing in", monday, week, none, &Punch{"-", "18:00:00"}, Absent},
		{"missing out", monday, week, none, &Punch{"09:00:00", "-"}, Absent},
		{"empty punch", monday, week, none, &Punch{}, Absent},
		{"garbage punch", monday, week, none, &Punch{"nine", "18:00:00"}, Absent},
		{"same in and out", monday, week, none, &Punch{"12:00:00", "12:00:00"}, SameInOut},
		{"same in and out at baseline", monday, week, none, &Punch{"09:00:00", "09:00:00"}, SameInOut},
		{"late", monday, week, none, &Punch{"09:00:01", "18:00:00"}, Latecomer},
		{"late and early", monday, week, none, &Punch{"10:00:00", "15:00:00"}, Latecomer},
		{"early leave", monday, week, none, &Punch{"08:55:00", "17:59:59"}, HalfDay},
		{"on time", monday, week, none, &Punch{"09:00:00", "18:00:00"}, Present},
		{"early and late stay", monday, week, none, &Punch{"08:30:00", "19:00:00"}, Present},
		{"only in baseline", monday, inOnly, none, &Punch{"08:30:00", "12:00:00"}, Present},
		{"only out baseline", monday, outOnly, none, &Punch{"11:00:00", "18:00:00"}, Present},
		{"only out baseline early", monday, outOnly, none, &Punch{"11:00:00", "17:00:00"}, HalfDay},
		{"weekly off without punch", sunday, week, none, nil, Weekend},
		{"weekly off with punch", sunday, week, none, &Punch{"09:00:00", "18:00:00"}, Present},
		{"working day without punch", monday, week, none, nil, Absent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.date, tt.schedule, tt.holidays, tt.punch)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_HolidayForEveryEmployee(t *testing.T) {
	holidays := NewHolidaySet("2024-09-02")
	day := date(t, "2024-09-02")
	punches := []*Punch{nil, {"-", "-"}, {"07:00:00", "07:00:00"}, {"10:00:00", "12:00:00"}}

	var empty WeeklySchedule
	for _, s := range []WeeklySchedule{officeWeek(), empty} {
		for _, p := range punches {
			assert.Equal(t, Holiday, Classify(day, s, holidays, p))
		}
	}
}

func TestClassify_PaddingDoesNotMatter(t *testing.T) {
	monday := date(t, "2024-03-11")
	got := Classify(monday, officeWeek(), nil, &Punch{"9:0", "18:00"})
	assert.Equal(t, Present, got)
}
