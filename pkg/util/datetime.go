package util

import "time"

const (
	EventDateFormat = "02-01-2006"
	EventTimeFormat = "15:04"
	DateTimeFormat  = "2006-01-02 15:04:05"
)

func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeFormat)
}

// IsEventDate reports whether s is a valid DD-MM-YYYY calendar date.
func IsEventDate(s string) bool {
	_, err := time.Parse(EventDateFormat, s)
	return err == nil
}

// IsEventTime reports whether s is a valid 24-hour HH:MM time.
func IsEventTime(s string) bool {
	_, err := time.Parse(EventTimeFormat, s)
	return err == nil
}
