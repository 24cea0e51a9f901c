package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tutor-dash-api/internal/models"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{name: "plain HH:MM", in: "09:15", want: "09:15", ok: true},
		{name: "single digit hour", in: "9:15", want: "09:15", ok: true},
		{name: "seconds discarded", in: "09:15:30", want: "09:15", ok: true},
		{name: "full-width colon", in: "9：15", want: "09:15", ok: true},
		{name: "hour minute idiom", in: "9点30分", want: "09:30", ok: true},
		{name: "idiom without suffix", in: "9点30", want: "09:30", ok: true},
		{name: "idiom hour only", in: "14点", want: "14:00", ok: true},
		{name: "full-width digits", in: "９点３０分", want: "09:30", ok: true},
		{name: "surrounding whitespace", in: "  9:15 ", want: "09:15", ok: true},
		{name: "midnight", in: "0:00", want: "00:00", ok: true},
		{name: "last minute of day", in: "23:59", want: "23:59", ok: true},
		{name: "hour out of range", in: "24:00", ok: false},
		{name: "minute out of range", in: "09:60", ok: false},
		{name: "idiom minute out of range", in: "9点75分", ok: false},
		{name: "empty", in: "", ok: false},
		{name: "garbage", in: "soon", ok: false},
		{name: "negative hour", in: "-1:30", ok: false},
		{name: "bare number", in: "915", ok: false},
		{name: "non numeric seconds", in: "09:15:xx", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClockToMinutes(t *testing.T) {
	assert.Equal(t, 555, ClockToMinutes("9:15"))
	assert.Equal(t, 0, ClockToMinutes("00:00"))
	assert.Equal(t, 1439, ClockToMinutes("23:59"))
	assert.Equal(t, 570, ClockToMinutes("9点30分"))
	assert.Equal(t, models.MinutesUnknown, ClockToMinutes("whenever"))
	assert.Equal(t, models.MinutesUnknown, ClockToMinutes(""))
}

func TestInterval(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		iv := Interval("9:00", "10:30")
		assert.True(t, iv.Valid())
		assert.Equal(t, 540, iv.StartMinute)
		assert.Equal(t, 630, iv.EndMinute)
	})

	t.Run("unreadable end poisons the interval", func(t *testing.T) {
		iv := Interval("9:00", "later")
		assert.False(t, iv.Valid())
		assert.Equal(t, models.MinutesUnknown, iv.StartMinute)
	})

	t.Run("inverted pair is not valid", func(t *testing.T) {
		iv := Interval("10:30", "9:00")
		assert.False(t, iv.Valid())
	})

	t.Run("zero length is not valid", func(t *testing.T) {
		assert.False(t, Interval("9:00", "9:00").Valid())
	})
}

func TestOverlaps(t *testing.T) {
	a := models.TimeInterval{StartMinute: 540, EndMinute: 630}

	assert.True(t, a.Overlaps(models.TimeInterval{StartMinute: 600, EndMinute: 660}))
	assert.False(t, a.Overlaps(models.TimeInterval{StartMinute: 630, EndMinute: 700}), "shared endpoint is not an overlap")
	assert.False(t, a.Overlaps(models.UnknownInterval()))
	assert.False(t, models.UnknownInterval().Overlaps(a))
}
