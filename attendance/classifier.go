package attendance

import "time"

// Classify assigns the status of one employee on one date. Rules are
// evaluated in order and the first match wins; punch is nil when nothing
// was logged for the pair.
func Classify(date time.Time, schedule WeeklySchedule, holidays HolidaySet, punch *Punch) Status {
	if holidays.Contains(date) {
		return Holiday
	}

	day := schedule.Day(date)
	if !day.HasWindow() {
		return Holiday
	}

	if punch == nil {
		if !day.Working {
			return Weekend
		}
		return Absent
	}

	in, err := ParseTimeOfDay(punch.In)
	if err != nil {
		return Absent
	}
	out, err := ParseTimeOfDay(punch.Out)
	if err != nil {
		return Absent
	}

	switch {
	case in == out:
		return SameInOut
	case day.In != nil && in.After(*day.In):
		return Latecomer
	case day.Out != nil && out.Before(*day.Out):
		return HalfDay
	}
	return Present
}
