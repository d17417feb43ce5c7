package payroll

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "draft"
	StatusProcessed = "processed"
	StatusPaid      = "paid"
)

var Statuses = []string{StatusDraft, StatusProcessed, StatusPaid}

type Record struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName,omitempty"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	BasicSalary  decimal.Decimal `json:"basicSalary"`
	Allowances   decimal.Decimal `json:"allowances"`
	Deductions   decimal.Decimal `json:"deductions"`
	NetSalary    decimal.Decimal `json:"netSalary"`
	Status       string          `json:"status"`
	PaidAt       *time.Time      `json:"paidAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (r Record) Key() string {
	return r.ID
}

func (r Record) Period() string {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// GenerateRequest asks the backend to run payroll for one period, optionally
// restricted to a subset of employees.
type GenerateRequest struct {
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employeeIds,omitempty"`
}

type Patch struct {
	Allowances *decimal.Decimal `json:"allowances,omitempty"`
	Deductions *decimal.Decimal `json:"deductions,omitempty"`
	Status     string           `json:"status,omitempty"`
}

type Filter struct {
	Month int
	Year  int
}

func (f Filter) Values() url.Values {
	values := url.Values{}
	if f.Month > 0 {
		values.Set("month", strconv.Itoa(f.Month))
	}
	if f.Year > 0 {
		values.Set("year", strconv.Itoa(f.Year))
	}
	return values
}

func (f Filter) Match(r Record) bool {
	if f.Month > 0 && r.Month != f.Month {
		return false
	}
	if f.Year > 0 && r.Year != f.Year {
		return false
	}
	return true
}
