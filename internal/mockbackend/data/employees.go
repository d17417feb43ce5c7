package data

import (
	"strings"

	"github.com/shopspring/decimal"

	"hrportal/internal/domain/employee"
	"hrportal/internal/requestctx"
	"hrportal/internal/validation"
)

type EmployeeInput struct {
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Status     string           `json:"status"`
	HireDate   string           `json:"hireDate"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
}

func (s *Store) ListEmployees(p requestctx.Principal) []employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, _ := s.caller(p)
	out := s.employees.list(nil)
	for i := range out {
		employee.RedactFields(&out[i], p.Role, out[i].ID == acct.User.EmployeeID)
	}
	return out
}

func (s *Store) GetEmployee(p requestctx.Principal, id string) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.employees.get(id)
	if !ok {
		return employee.Employee{}, ErrEmployeeNotFound
	}
	acct, _ := s.caller(p)
	isSelf := acct.User.EmployeeID == id
	if !isManager(p.Role) && !isSelf {
		return employee.Employee{}, ErrAccessDenied
	}
	employee.RedactFields(&emp, p.Role, isSelf)
	return emp, nil
}

func (s *Store) CreateEmployee(in EmployeeInput) (employee.Employee, error) {
	hired, err := validation.ParseDate(in.HireDate)
	if err != nil {
		return employee.Employee{}, badRequest("Invalid hire date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.employees.list(nil) {
		if strings.EqualFold(existing.Email, strings.TrimSpace(in.Email)) {
			return employee.Employee{}, conflict("Employee with this email already exists")
		}
	}
	now := s.now()
	if hired.IsZero() {
		hired = now
	}
	emp := employee.Employee{
		ID:         s.newID(),
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Email:      strings.TrimSpace(in.Email),
		Phone:      in.Phone,
		Department: in.Department,
		Position:   in.Position,
		Status:     in.Status,
		HireDate:   hired,
		Salary:     in.Salary,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if emp.Status == "" {
		emp.Status = employee.StatusActive
	}
	s.employees.put(emp.ID, emp)
	return emp, nil
}

func (s *Store) UpdateEmployee(id string, in EmployeeInput) (employee.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	emp, ok := s.employees.get(id)
	if !ok {
		return employee.Employee{}, ErrEmployeeNotFound
	}
	setIfPresent(&emp.FirstName, in.FirstName)
	setIfPresent(&emp.LastName, in.LastName)
	setIfPresent(&emp.Email, in.Email)
	setIfPresent(&emp.Phone, in.Phone)
	setIfPresent(&emp.Department, in.Department)
	setIfPresent(&emp.Position, in.Position)
	setIfPresent(&emp.Status, in.Status)
	if in.HireDate != "" {
		hired, err := validation.ParseDate(in.HireDate)
		if err != nil {
			return employee.Employee{}, badRequest("Invalid hire date")
		}
		emp.HireDate = hired
	}
	if in.Salary != nil {
		emp.Salary = in.Salary
	}
	emp.UpdatedAt = s.now()
	s.employees.put(emp.ID, emp)
	return emp, nil
}

func (s *Store) DeleteEmployee(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.employees.delete(id) {
		return ErrEmployeeNotFound
	}
	return nil
}
