package attendance

import "fmt"

// Duration renders the time worked between two punches as "HH:MM", floored
// to the minute. It returns "-" when either punch is missing or the out
// punch precedes the in punch; shifts across midnight are not supported.
func Duration(in, out string) string {
	start, err := ParseTimeOfDay(in)
	if err != nil {
		return Missing
	}
	end, err := ParseTimeOfDay(out)
	if err != nil {
		return Missing
	}
	elapsed := end.Seconds() - start.Seconds()
	if elapsed < 0 {
		return Missing
	}
	minutes := elapsed / 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
