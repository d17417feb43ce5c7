package data

import (
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/employee"
	"hrportal/internal/requestctx"
)

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type ProfileInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func (s *Store) Authenticate(email, password string) (auth.User, error) {
	s.mu.Lock()
	acct, ok := s.findAccountByEmail(email)
	s.mu.Unlock()
	if !ok {
		return auth.User{}, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(acct.Hash, password); err != nil {
		return auth.User{}, ErrInvalidCredentials
	}
	return acct.User, nil
}

// Register creates an employee record and a login for it. New accounts
// always get the employee role.
func (s *Store) Register(in RegisterInput) (auth.User, error) {
	hash, err := auth.HashPasswordCost(in.Password, s.bcryptCost)
	if err != nil {
		return auth.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findAccountByEmail(in.Email); ok {
		return auth.User{}, ErrEmailTaken
	}

	now := s.now()
	emp := employee.Employee{
		ID:        s.newID(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Status:    employee.StatusActive,
		HireDate:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := auth.User{
		ID:         s.newID(),
		EmployeeID: emp.ID,
		Email:      emp.Email,
		Role:       auth.RoleEmployee,
	}
	emp.UserID = user.ID
	s.applyEmployee(&user, emp)

	s.employees.put(emp.ID, emp)
	s.users.put(user.ID, account{User: user, Hash: hash})
	return user, nil
}

func (s *Store) Profile(p requestctx.Principal) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return auth.User{}, err
	}
	return acct.User, nil
}

// UpdateProfile changes the caller's own details and mirrors them onto the
// linked employee record. Blank fields are left as they are.
func (s *Store) UpdateProfile(p requestctx.Principal, in ProfileInput) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return auth.User{}, err
	}
	u := &acct.User
	setIfPresent(&u.FirstName, in.FirstName)
	setIfPresent(&u.LastName, in.LastName)
	setIfPresent(&u.Phone, in.Phone)
	setIfPresent(&u.Department, in.Department)
	setIfPresent(&u.Position, in.Position)
	setIfPresent(&u.ProfileImage, in.ProfileImage)
	s.users.put(u.ID, acct)

	if emp, ok := s.employees.get(u.EmployeeID); ok {
		emp.FirstName, emp.LastName = u.FirstName, u.LastName
		emp.Phone, emp.Department, emp.Position = u.Phone, u.Department, u.Position
		emp.UpdatedAt = s.now()
		s.employees.put(emp.ID, emp)
	}
	return acct.User, nil
}

func (s *Store) ChangePassword(p requestctx.Principal, current, next string) error {
	s.mu.Lock()
	acct, err := s.caller(p)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(acct.Hash, current); err != nil {
		return ErrWrongPassword
	}
	hash, err := auth.HashPasswordCost(next, s.bcryptCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err = s.caller(p)
	if err != nil {
		return err
	}
	acct.Hash = hash
	s.users.put(acct.User.ID, acct)
	return nil
}

func setIfPresent(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}
