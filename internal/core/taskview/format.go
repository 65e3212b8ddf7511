package taskview

import "time"

const (
	shortDateLayout = "Jan 02, 2006"
	longDateLayout  = "January 2, 2006"
)

// FormatShort renders t for list and report contexts, e.g. "Mar 05, 2025".
func FormatShort(t time.Time) string {
	return t.Format(shortDateLayout)
}

// FormatLong renders t for detail contexts, e.g. "March 5, 2025".
func FormatLong(t time.Time) string {
	return t.Format(longDateLayout)
}

func Greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
