package data

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/document"
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/domain/performance"
	"hrportal/internal/requestctx"
)

type account struct {
	User auth.User
	Hash string
}

// Store is the mock backend's in-memory database.
type Store struct {
	mu         sync.Mutex
	now        func() time.Time
	bcryptCost int
	newID      func() string

	users      *table[account]
	employees  *table[employee.Employee]
	leaves     *table[leave.Leave]
	attendance *table[attendance.Record]
	documents  *table[document.Document]
	payrolls   *table[payroll.Record]
	reviews    *table[performance.Review]
}

type Options struct {
	Now        func() time.Time
	BcryptCost int
	NewID      func() string
}

func New(seed Seed, opts Options) (*Store, error) {
	s := &Store{
		now:        opts.Now,
		bcryptCost: opts.BcryptCost,
		newID:      opts.NewID,
		users:      newTable[account](),
		employees:  newTable[employee.Employee](),
		leaves:     newTable[leave.Leave](),
		attendance: newTable[attendance.Record](),
		documents:  newTable[document.Document](),
		payrolls:   newTable[payroll.Record](),
		reviews:    newTable[performance.Review](),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.bcryptCost == 0 {
		s.bcryptCost = bcrypt.DefaultCost
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if err := s.load(seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(seed Seed) error {
	for _, row := range seed.Employees {
		hired, err := parseTime("hire_date", row.HireDate)
		if err != nil {
			return err
		}
		emp := employee.Employee{
			ID:         row.ID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Email:      row.Email,
			Phone:      row.Phone,
			Department: row.Department,
			Position:   row.Position,
			Status:     row.Status,
			HireDate:   hired,
			CreatedAt:  hired,
			UpdatedAt:  hired,
		}
		if row.Salary != "" {
			salary, err := parseMoney("salary", row.Salary)
			if err != nil {
				return err
			}
			emp.Salary = &salary
		}
		s.employees.put(emp.ID, emp)
	}

	for _, row := range seed.Users {
		role, err := auth.ParseRole(row.Role)
		if err != nil {
			return fmt.Errorf("seed: user %s: %w", row.ID, err)
		}
		hash, err := auth.HashPasswordCost(row.Password, s.bcryptCost)
		if err != nil {
			return err
		}
		user := auth.User{ID: row.ID, EmployeeID: row.EmployeeID, Email: row.Email, Role: role}
		if emp, ok := s.employees.get(row.EmployeeID); ok {
			s.applyEmployee(&user, emp)
			emp.UserID = user.ID
			s.employees.put(emp.ID, emp)
		}
		s.users.put(user.ID, account{User: user, Hash: hash})
	}

	for _, row := range seed.Leaves {
		start, err := parseTime("start_date", row.StartDate)
		if err != nil {
			return err
		}
		end, err := parseTime("end_date", row.EndDate)
		if err != nil {
			return err
		}
		created, err := parseTime("created_at", row.CreatedAt)
		if err != nil {
			return err
		}
		days, err := leave.CalculateDays(start, end)
		if err != nil {
			return fmt.Errorf("seed: leave %s: %w", row.ID, err)
		}
		s.leaves.put(row.ID, leave.Leave{
			ID:           row.ID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: s.employeeName(row.EmployeeID),
			LeaveType:    row.LeaveType,
			StartDate:    start,
			EndDate:      end,
			Days:         days,
			Reason:       row.Reason,
			Status:       row.Status,
			ReviewedBy:   row.ReviewedBy,
			CreatedAt:    created,
		})
	}

	for _, row := range seed.Attendance {
		in, err := parseTimePtr("check_in", row.CheckIn)
		if err != nil {
			return err
		}
		out, err := parseTimePtr("check_out", row.CheckOut)
		if err != nil {
			return err
		}
		rec := attendance.Record{
			ID:           row.ID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: s.employeeName(row.EmployeeID),
			Date:         row.Date,
			CheckIn:      in,
			CheckOut:     out,
			Status:       attendance.StatusAbsent,
			Notes:        row.Notes,
		}
		finishPunches(&rec)
		s.attendance.put(rec.ID, rec)
	}

	for _, row := range seed.Documents {
		uploaded, err := parseTime("uploaded_at", row.UploadedAt)
		if err != nil {
			return err
		}
		doc := document.Document{
			ID:          row.ID,
			EmployeeID:  row.EmployeeID,
			Title:       row.Title,
			Category:    row.Category,
			Type:        row.Type,
			Description: row.Description,
			FileName:    row.FileName,
			ContentType: row.ContentType,
			FileSize:    row.FileSize,
			Status:      row.Status,
			VerifiedBy:  row.VerifiedBy,
			UploadedAt:  uploaded,
		}
		if doc.Status == document.StatusVerified {
			doc.VerifiedAt = &uploaded
		}
		s.documents.put(doc.ID, doc)
	}

	for _, row := range seed.Payrolls {
		basic, err := parseMoney("basic_salary", row.BasicSalary)
		if err != nil {
			return err
		}
		allowances, err := parseMoney("allowances", row.Allowances)
		if err != nil {
			return err
		}
		deductions, err := parseMoney("deductions", row.Deductions)
		if err != nil {
			return err
		}
		paidAt, err := parseTimePtr("paid_at", row.PaidAt)
		if err != nil {
			return err
		}
		s.payrolls.put(row.ID, payroll.Record{
			ID:           row.ID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: s.employeeName(row.EmployeeID),
			Month:        row.Month,
			Year:         row.Year,
			BasicSalary:  basic,
			Allowances:   allowances,
			Deductions:   deductions,
			NetSalary:    payroll.ComputeNet(basic, allowances, deductions),
			Status:       row.Status,
			PaidAt:       paidAt,
			CreatedAt:    time.Date(row.Year, time.Month(row.Month), 1, 0, 0, 0, 0, time.UTC),
		})
	}

	for _, row := range seed.Reviews {
		created, err := parseTime("created_at", row.CreatedAt)
		if err != nil {
			return err
		}
		s.reviews.put(row.ID, performance.Review{
			ID:           row.ID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: s.employeeName(row.EmployeeID),
			ReviewerID:   row.ReviewerID,
			Period:       row.Period,
			Rating:       row.Rating,
			Goals:        row.Goals,
			Strengths:    row.Strengths,
			Improvements: row.Improvements,
			Comments:     row.Comments,
			Status:       row.Status,
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}
	return nil
}

func (s *Store) applyEmployee(user *auth.User, emp employee.Employee) {
	user.FirstName = emp.FirstName
	user.LastName = emp.LastName
	user.Department = emp.Department
	user.Position = emp.Position
	user.Phone = emp.Phone
	user.HireDate = emp.HireDate
}

func (s *Store) employeeName(id string) string {
	if emp, ok := s.employees.get(id); ok {
		return emp.FullName()
	}
	return ""
}

// caller resolves the principal to its account. Must hold mu.
func (s *Store) caller(p requestctx.Principal) (account, error) {
	acct, ok := s.users.get(p.UserID)
	if !ok {
		return account{}, ErrUserNotFound
	}
	return acct, nil
}

func isManager(role auth.Role) bool {
	return role == auth.RoleAdmin || role == auth.RoleHR
}

func (s *Store) findAccountByEmail(email string) (account, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, acct := range s.users.list(nil) {
		if strings.ToLower(acct.User.Email) == email {
			return acct, true
		}
	}
	return account{}, false
}

func (s *Store) today() string {
	return s.now().Format(attendance.DateLayout)
}
