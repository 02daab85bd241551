package models

import "fmt"

// ParseClockTime converts an HH:MM value to minutes since midnight. Used by
// request validation before records reach storage.
func ParseClockTime(value string) (int, bool) {
	var hour, minute int
	if _, err := fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
