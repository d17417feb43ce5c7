package attendance

import (
	"math"
	"time"
)

const (
	WorkStartHour = 9
	StandardHours = 8.0
	DateLayout    = "2006-01-02"
)

// StatusFor classifies a check-in: anything after 09:00 sharp is late.
func StatusFor(checkIn time.Time) string {
	h, m, s := checkIn.Clock()
	if h > WorkStartHour || (h == WorkStartHour && (m > 0 || s > 0)) {
		return StatusLate
	}
	return StatusPresent
}

// WorkHours returns hours worked and the overtime beyond a standard day,
// both rounded to two decimals.
func WorkHours(checkIn, checkOut time.Time) (hours, overtime float64) {
	if !checkOut.After(checkIn) {
		return 0, 0
	}
	hours = round2(checkOut.Sub(checkIn).Hours())
	if hours > StandardHours {
		overtime = round2(hours - StandardHours)
	}
	return hours, overtime
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
