package utils

import (
	"time"
)

const layoutDateTime = "2006-01-02 15:04:05"

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(time.Local).Format(layoutDateTime)
}
