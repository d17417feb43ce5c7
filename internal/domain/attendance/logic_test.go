package attendance

import (
	"testing"
	"time"
)

func TestStatusFor(t *testing.T) {
	day := func(h, m int) time.Time {
		return time.Date(2025, 3, 3, h, m, 0, 0, time.UTC)
	}
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "early", at: day(8, 45), want: StatusPresent},
		{name: "on the hour", at: day(9, 0), want: StatusPresent},
		{name: "one minute late", at: day(9, 1), want: StatusLate},
		{name: "afternoon", at: day(13, 0), want: StatusLate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusFor(tc.at); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestWorkHours(t *testing.T) {
	in := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

	hours, overtime := WorkHours(in, in.Add(7*time.Hour+30*time.Minute))
	if hours != 7.5 || overtime != 0 {
		t.Fatalf("expected 7.5h no overtime, got %v/%v", hours, overtime)
	}

	hours, overtime = WorkHours(in, in.Add(10*time.Hour))
	if hours != 10 || overtime != 2 {
		t.Fatalf("expected 10h with 2h overtime, got %v/%v", hours, overtime)
	}

	hours, overtime = WorkHours(in, in.Add(-time.Hour))
	if hours != 0 || overtime != 0 {
		t.Fatalf("expected zero for inverted punches, got %v/%v", hours, overtime)
	}
}
