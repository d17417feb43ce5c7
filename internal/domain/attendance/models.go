package attendance

import "time"

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
	StatusHalfDay = "half_day"
)

var Statuses = []string{StatusPresent, StatusLate, StatusAbsent, StatusHalfDay}

type Record struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName,omitempty"`
	Date         string     `json:"date"`
	CheckIn      *time.Time `json:"checkIn,omitempty"`
	CheckOut     *time.Time `json:"checkOut,omitempty"`
	Status       string     `json:"status"`
	WorkHours    float64    `json:"workHours"`
	Overtime     float64    `json:"overtime"`
	Notes        string     `json:"notes,omitempty"`
}

func (r Record) Key() string {
	return r.ID
}

// Listing is the attendance list payload: the records plus the caller's
// record for today, if any.
type Listing struct {
	Records     []Record `json:"records"`
	TodayRecord *Record  `json:"todayRecord"`
}

type Punch struct {
	Notes string `json:"notes,omitempty"`
}

type Update struct {
	Status   string `json:"status,omitempty"`
	CheckIn  string `json:"checkIn,omitempty"`
	CheckOut string `json:"checkOut,omitempty"`
	Notes    string `json:"notes,omitempty"`
}
