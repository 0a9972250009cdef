package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeString(t *testing.T) {
	cases := []struct {
		in   Time
		want string
	}{
		{0, "DAY1 00:00"},
		{675, "DAY1 11:15"},
		{1439, "DAY1 23:59"},
		{1440, "DAY2 00:00"},
		{2120, "DAY2 11:20"},
		{3010, "DAY3 02:10"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.in.String())
	}
}

func TestTimeDay(t *testing.T) {
	assert.Equal(t, 1, Time(0).Day())
	assert.Equal(t, 1, Time(1439).Day())
	assert.Equal(t, 2, Time(1440).Day())
	assert.Equal(t, 3, Time(2880).Day())
}

func TestOverlapsIsStrict(t *testing.T) {
	assert.True(t, Overlaps(100, 200, 150, 250))
	assert.True(t, Overlaps(150, 250, 100, 200))
	assert.True(t, Overlaps(100, 300, 150, 200))

	// touching intervals do not overlap
	assert.False(t, Overlaps(100, 200, 200, 300))
	assert.False(t, Overlaps(200, 300, 100, 200))
	assert.False(t, Overlaps(100, 200, 300, 400))
}

func TestCurfewClosedIncludesBounds(t *testing.T) {
	c := Curfew{From: 100, To: 200}
	assert.True(t, c.Closed(100))
	assert.True(t, c.Closed(150))
	assert.True(t, c.Closed(200))
	assert.False(t, c.Closed(99))
	assert.False(t, c.Closed(201))
}

func TestAvailabilityOverlaps(t *testing.T) {
	w := Availability{From: 600, To: 800}
	assert.True(t, w.Overlaps(700, 900))
	assert.True(t, w.Overlaps(500, 601))
	assert.False(t, w.Overlaps(800, 900))
	assert.False(t, w.Overlaps(500, 600))
}

func TestFlightDuration(t *testing.T) {
	f := Flight{Departure: 1200, Arrival: 1500}
	assert.Equal(t, Time(300), f.Duration())
}
