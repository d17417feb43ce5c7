package validation

import "time"

// LeavePolicy holds the date rules applied to leave requests.
type LeavePolicy struct {
	RejectPastStart bool
}

func DefaultLeavePolicy() LeavePolicy {
	return LeavePolicy{RejectPastStart: true}
}

// CheckRange validates a leave's start and end dates and returns them parsed.
func (p LeavePolicy) CheckRange(v *Validator, rawStart, rawEnd string, now time.Time) (start, end time.Time) {
	start, _ = v.Date("startDate", rawStart)
	end, _ = v.Date("endDate", rawEnd)
	v.DateOrder("startDate", start, "endDate", end)
	if p.RejectPastStart {
		v.NotBefore("startDate", start, now)
	}
	return start, end
}
