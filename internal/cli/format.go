package cli

import (
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatClock(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("15:04")
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
