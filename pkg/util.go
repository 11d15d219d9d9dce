package pkg

import (
	"time"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return *(*string)(unsafe.Pointer(&buf))
}

// DayBounds returns the start of the calendar day of t and the start of the next one,
// both in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// DateOnly truncates t to its calendar date, keeping t's location.
func DateOnly(t time.Time) time.Time {
	start, _ := DayBounds(t)
	return start
}
