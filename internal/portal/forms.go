package portal

import (
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/document"
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/performance"
	"hrportal/internal/validation"
)

const (
	minPasswordLength = 6
	maxAvatarBytes    = 2 << 20
)

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	v := validation.New()
	v.Email("email", f.Email)
	v.Required("password", f.Password)
	return v.Err()
}

type RegisterForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (f RegisterForm) Validate() error {
	v := validation.New()
	v.Required("firstName", f.FirstName)
	v.Required("lastName", f.LastName)
	v.Email("email", f.Email)
	if v.Required("password", f.Password) {
		v.MinLength("password", f.Password, minPasswordLength)
	}
	v.Equal("confirmPassword", f.ConfirmPassword, f.Password, "passwords do not match")
	return v.Err()
}

type ProfileForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

func (f ProfileForm) Validate() error {
	v := validation.New()
	v.Required("firstName", f.FirstName)
	v.Required("lastName", f.LastName)
	return v.Err()
}

type ChangePasswordForm struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"-"`
}

func (f ChangePasswordForm) Validate() error {
	v := validation.New()
	v.Required("currentPassword", f.CurrentPassword)
	if v.Required("newPassword", f.NewPassword) {
		v.MinLength("newPassword", f.NewPassword, minPasswordLength)
	}
	v.Equal("confirmPassword", f.ConfirmPassword, f.NewPassword, "passwords do not match")
	return v.Err()
}

// File is an upload picked by the user. Size is what the picker reports; it
// is checked before anything is read from Content.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

func (f File) validatePicture() error {
	v := validation.New()
	if f.Content == nil {
		v.Add("avatar", "is required")
		return v.Err()
	}
	v.ContentType("avatar", f.ContentType, "image/")
	v.SizeBelow("avatar", f.Size, maxAvatarBytes)
	return v.Err()
}

type EmployeeForm struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Status     string `json:"status,omitempty"`
	HireDate   string `json:"hireDate,omitempty"`
	Salary     string `json:"-"`
}

type employeePayload struct {
	EmployeeForm
	Salary *decimal.Decimal `json:"salary,omitempty"`
}

func (f EmployeeForm) payload() (employeePayload, error) {
	v := validation.New()
	v.Required("firstName", f.FirstName)
	v.Required("lastName", f.LastName)
	v.Email("email", f.Email)
	v.Required("department", f.Department)
	v.Required("position", f.Position)
	v.Enum("status", f.Status, employee.Statuses)
	if strings.TrimSpace(f.HireDate) != "" {
		v.Date("hireDate", f.HireDate)
	}
	out := employeePayload{EmployeeForm: f}
	if raw := strings.TrimSpace(f.Salary); raw != "" {
		salary, err := decimal.NewFromString(raw)
		switch {
		case err != nil:
			v.Add("salary", "must be a number")
		case salary.IsNegative():
			v.Add("salary", "must not be negative")
		default:
			out.Salary = &salary
		}
	}
	return out, v.Err()
}

type LeaveForm struct {
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

func (f LeaveForm) request(policy validation.LeavePolicy, now time.Time) (leave.Request, error) {
	v := validation.New()
	if v.Required("leaveType", f.LeaveType) {
		v.Enum("leaveType", f.LeaveType, leave.Types)
	}
	policy.CheckRange(v, f.StartDate, f.EndDate, now)
	v.Required("reason", f.Reason)
	return leave.Request{
		LeaveType: strings.ToLower(strings.TrimSpace(f.LeaveType)),
		StartDate: strings.TrimSpace(f.StartDate),
		EndDate:   strings.TrimSpace(f.EndDate),
		Reason:    f.Reason,
	}, v.Err()
}

type AttendanceForm struct {
	Status   string
	CheckIn  string
	CheckOut string
	Notes    string
}

func (f AttendanceForm) update() (attendance.Update, error) {
	v := validation.New()
	v.Enum("status", f.Status, attendance.Statuses)
	var in, out time.Time
	if f.CheckIn != "" {
		in, _ = v.Date("checkIn", f.CheckIn)
	}
	if f.CheckOut != "" {
		out, _ = v.Date("checkOut", f.CheckOut)
	}
	if !in.IsZero() && !out.IsZero() && out.Before(in) {
		v.Add("checkOut", "must be after checkIn")
	}
	return attendance.Update{Status: f.Status, CheckIn: f.CheckIn, CheckOut: f.CheckOut, Notes: f.Notes}, v.Err()
}

type DocumentForm struct {
	Title       string
	Category    string
	Type        string
	Description string
	File        File
}

func (f DocumentForm) form() (map[string]string, error) {
	v := validation.New()
	v.Required("title", f.Title)
	if v.Required("category", f.Category) {
		v.Enum("category", f.Category, document.Categories)
	}
	if f.File.Content == nil || strings.TrimSpace(f.File.Name) == "" {
		v.Add("file", "is required")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	fields := map[string]string{"title": f.Title, "category": f.Category}
	if f.Type != "" {
		fields["type"] = f.Type
	}
	if f.Description != "" {
		fields["description"] = f.Description
	}
	return fields, nil
}

type GeneratePayrollForm struct {
	Month       int
	Year        int
	EmployeeIDs []string
}

func (f GeneratePayrollForm) Validate() error {
	v := validation.New()
	v.IntRange("month", f.Month, 1, 12)
	v.IntRange("year", f.Year, 2000, 2100)
	return v.Err()
}

type ReviewForm struct {
	EmployeeID   string
	Period       string
	Rating       int
	Goals        string
	Strengths    string
	Improvements string
	Comments     string
	Status       string
}

// input validates the form. Updates may leave the subject and rating out.
func (f ReviewForm) input(creating bool) (performance.Input, error) {
	v := validation.New()
	if creating {
		v.Required("employeeId", f.EmployeeID)
		v.Required("period", f.Period)
	}
	if creating || f.Rating != 0 {
		v.IntRange("rating", f.Rating, performance.MinRating, performance.MaxRating)
	}
	v.Enum("status", f.Status, performance.Statuses)
	return performance.Input{
		EmployeeID:   f.EmployeeID,
		Period:       f.Period,
		Rating:       f.Rating,
		Goals:        f.Goals,
		Strengths:    f.Strengths,
		Improvements: f.Improvements,
		Comments:     f.Comments,
		Status:       f.Status,
	}, v.Err()
}
