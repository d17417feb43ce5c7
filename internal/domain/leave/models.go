package leave

import "time"

const (
	TypeAnnual    = "annual"
	TypeSick      = "sick"
	TypePersonal  = "personal"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
	TypeUnpaid    = "unpaid"
)

var Types = []string{TypeAnnual, TypeSick, TypePersonal, TypeMaternity, TypePaternity, TypeUnpaid}

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

type Leave struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	LeaveType    string    `json:"leaveType"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Days         float64   `json:"days"`
	Reason       string    `json:"reason"`
	Status       string    `json:"status"`
	ReviewedBy   string    `json:"reviewedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (l Leave) Key() string {
	return l.ID
}

// Request is the mutable part of a leave sent on create and update.
type Request struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

type StatusChange struct {
	Status string `json:"status"`
}
