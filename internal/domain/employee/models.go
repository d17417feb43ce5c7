package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on_leave"
)

var Statuses = []string{StatusActive, StatusInactive, StatusOnLeave}

type Employee struct {
	ID         string           `json:"id"`
	UserID     string           `json:"userId,omitempty"`
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone,omitempty"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Status     string           `json:"status"`
	HireDate   time.Time        `json:"hireDate"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func (e Employee) Key() string {
	return e.ID
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
