package models

import "fmt"

// Time is a minute offset from the start of the scenario. Scenarios span
// multiple days, 1440 minutes each.
type Time int

const minutesPerDay = 1440

func (t Time) Day() int {
	return int(t)/minutesPerDay + 1
}

func (t Time) String() string {
	return fmt.Sprintf("DAY%d %02d:%02d", t.Day(), int(t)%minutesPerDay/60, int(t)%60)
}

// Overlaps reports whether the open intervals (a1, a2) and (b1, b2)
// intersect. Intervals that only touch do not overlap.
func Overlaps(a1, a2, b1, b2 Time) bool {
	return a1 < b2 && a2 > b1
}
