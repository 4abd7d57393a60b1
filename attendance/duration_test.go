package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		in, out string
		want    string
	}{
		{"09:00:00", "17:30:00", "08:30"},
		{"09:15:00", "18:00:00", "08:45"},
		{"17:00:00", "09:00:00", "-"},
		{"-", "17:00:00", "-"},
		{"09:00:00", "-", "-"},
		{"", "17:00:00", "-"},
		{"09:00", "09:00", "00:00"},
		{"09:00:30", "10:00:00", "00:59"},
		{"9:05", "17:10:59", "08:05"},
		{"00:00:00", "23:59:59", "23:59"},
		{"25:00:00", "26:00:00", "-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Duration(tt.in, tt.out), "Duration(%q, %q)", tt.in, tt.out)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay(" 07:08 ")
	assert.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 8}, got)
	assert.Equal(t, "07:08:00", got.String())

	_, err = ParseTimeOfDay(Missing)
	assert.ErrorIs(t, err, ErrMissingTime)

	for _, bad := range []string{"7", "07:60", "24:00:00", "a:b", "1:2:3:4", "-1:00"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeOfDayCompareMatchesPaddedStrings(t *testing.T) {
	values := []string{"00:00:00", "08:59:59", "09:00:00", "09:00:01", "12:30:00", "23:59:59"}
	for _, a := range values {
		for _, b := range values {
			want := 0
			switch {
			case a < b:
				want = -1
			case a > b:
				want = 1
			}
			assert.Equal(t, want, MustTimeOfDay(a).Compare(MustTimeOfDay(b)), "%s vs %s", a, b)
		}
	}
}
