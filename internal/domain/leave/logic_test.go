package leave

import (
	"errors"
	"testing"
	"time"
)

func TestCalculateDays(t *testing.T) {
	day := func(y int, m time.Month, d, h int) time.Time {
		return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	}
	cases := []struct {
		name       string
		start, end time.Time
		want       float64
		err        error
	}{
		{name: "single day", start: day(2025, 9, 10, 0), end: day(2025, 9, 10, 0), want: 1},
		{name: "time of day ignored", start: day(2025, 9, 10, 9), end: day(2025, 9, 12, 17), want: 3},
		{name: "across month end", start: day(2025, 9, 29, 0), end: day(2025, 10, 2, 0), want: 4},
		{name: "leap february", start: day(2024, 2, 28, 0), end: day(2024, 3, 1, 0), want: 3},
		{name: "end before start", start: day(2025, 9, 10, 0), end: day(2025, 9, 9, 23), err: ErrInvalidRange},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalculateDays(tc.start, tc.end)
			if !errors.Is(err, tc.err) {
				t.Fatalf("err = %v, want %v", err, tc.err)
			}
			if got != tc.want {
				t.Fatalf("days = %v, want %v", got, tc.want)
			}
		})
	}
}
