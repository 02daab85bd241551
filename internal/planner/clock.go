package planner

import "fmt"

const (
	// Candidate slots run 08:00 through 20:00 inclusive on half-hour marks.
	firstSlotMinute = 8 * 60
	lastSlotMinute  = 20 * 60
	slotStepMinutes = 30

	// Hard upper bound of the scheduling day. A session may not end at or
	// past this minute.
	dayCeilingMinute = 21 * 60

	minutesPerDay = 24 * 60
)

// parseClock converts an HH:MM value to minutes since midnight.
func parseClock(value string) (int, bool) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// durationMinutes returns end minus start. Callers guarantee start < end for
// valid sessions; the sign is not validated here.
func durationMinutes(start, end string) int {
	s, _ := parseClock(start)
	e, _ := parseClock(end)
	return e - s
}

// overlaps reports whether two half-open [start, end) ranges intersect.
// Back-to-back ranges sharing a boundary do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// addMinutes advances a start minute by the given duration. It reports false
// when the resulting end would land at or after the day ceiling.
func addMinutes(start, minutes int) (int, bool) {
	end := start + minutes
	if end >= dayCeilingMinute {
		return 0, false
	}
	return end, true
}

// slotTimes returns the fixed candidate start minutes, ascending.
func slotTimes() []int {
	slots := make([]int, 0, (lastSlotMinute-firstSlotMinute)/slotStepMinutes+1)
	for m := firstSlotMinute; m <= lastSlotMinute; m += slotStepMinutes {
		slots = append(slots, m)
	}
	return slots
}
