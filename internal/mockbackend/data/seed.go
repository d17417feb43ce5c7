package data

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"hrportal/internal/validation"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the raw fixture. Dates and money stay strings until normalized.
type Seed struct {
	Employees  []SeedEmployee   `yaml:"employees"`
	Users      []SeedUser       `yaml:"users"`
	Leaves     []SeedLeave      `yaml:"leaves"`
	Attendance []SeedAttendance `yaml:"attendance"`
	Documents  []SeedDocument   `yaml:"documents"`
	Payrolls   []SeedPayroll    `yaml:"payrolls"`
	Reviews    []SeedReview     `yaml:"reviews"`
}

type SeedEmployee struct {
	ID         string `yaml:"id"`
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	Department string `yaml:"department"`
	Position   string `yaml:"position"`
	Status     string `yaml:"status"`
	HireDate   string `yaml:"hire_date"`
	Salary     string `yaml:"salary"`
}

type SeedUser struct {
	ID         string `yaml:"id"`
	EmployeeID string `yaml:"employee_id"`
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	Role       string `yaml:"role"`
}

type SeedLeave struct {
	ID         string `yaml:"id"`
	EmployeeID string `yaml:"employee_id"`
	LeaveType  string `yaml:"leave_type"`
	StartDate  string `yaml:"start_date"`
	EndDate    string `yaml:"end_date"`
	Reason     string `yaml:"reason"`
	Status     string `yaml:"status"`
	ReviewedBy string `yaml:"reviewed_by"`
	CreatedAt  string `yaml:"created_at"`
}

type SeedAttendance struct {
	ID         string `yaml:"id"`
	EmployeeID string `yaml:"employee_id"`
	Date       string `yaml:"date"`
	CheckIn    string `yaml:"check_in"`
	CheckOut   string `yaml:"check_out"`
	Notes      string `yaml:"notes"`
}

type SeedDocument struct {
	ID          string `yaml:"id"`
	EmployeeID  string `yaml:"employee_id"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	FileName    string `yaml:"file_name"`
	ContentType string `yaml:"content_type"`
	FileSize    int64  `yaml:"file_size"`
	Status      string `yaml:"status"`
	VerifiedBy  string `yaml:"verified_by"`
	UploadedAt  string `yaml:"uploaded_at"`
}

type SeedPayroll struct {
	ID          string `yaml:"id"`
	EmployeeID  string `yaml:"employee_id"`
	Month       int    `yaml:"month"`
	Year        int    `yaml:"year"`
	BasicSalary string `yaml:"basic_salary"`
	Allowances  string `yaml:"allowances"`
	Deductions  string `yaml:"deductions"`
	Status      string `yaml:"status"`
	PaidAt      string `yaml:"paid_at"`
}

type SeedReview struct {
	ID           string `yaml:"id"`
	EmployeeID   string `yaml:"employee_id"`
	ReviewerID   string `yaml:"reviewer_id"`
	Period       string `yaml:"period"`
	Rating       int    `yaml:"rating"`
	Goals        string `yaml:"goals"`
	Strengths    string `yaml:"strengths"`
	Improvements string `yaml:"improvements"`
	Comments     string `yaml:"comments"`
	Status       string `yaml:"status"`
	CreatedAt    string `yaml:"created_at"`
}

// DefaultSeed parses the embedded fixture.
func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeed)
}

func ParseSeed(raw []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("seed: parse yaml: %w", err)
	}
	return seed, nil
}

// EmptySeed has no records at all.
func EmptySeed() Seed {
	return Seed{}
}

func parseTime(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := validation.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("seed: %s %q: %w", field, raw, err)
	}
	return parsed, nil
}

func parseTimePtr(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := parseTime(field, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("seed: %s %q: %w", field, raw, err)
	}
	return amount, nil
}
