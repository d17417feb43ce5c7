package data

import (
	"strings"

	"hrportal/internal/domain/leave"
	"hrportal/internal/requestctx"
	"hrportal/internal/validation"
)

func (s *Store) ListLeaves() []leave.Leave {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaves.list(nil)
}

func (s *Store) MyLeaves(p requestctx.Principal) ([]leave.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return nil, err
	}
	return s.leaves.list(func(l leave.Leave) bool { return l.EmployeeID == acct.User.EmployeeID }), nil
}

func (s *Store) CreateLeave(p requestctx.Principal, in leave.Request) (leave.Leave, error) {
	v := validation.New()
	v.Required("leaveType", in.LeaveType)
	v.Enum("leaveType", in.LeaveType, leave.Types)
	v.Required("reason", in.Reason)
	start, _ := v.Date("startDate", in.StartDate)
	end, _ := v.Date("endDate", in.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.HasIssues() {
		return leave.Leave{}, v.Err()
	}
	days, err := leave.CalculateDays(start, end)
	if err != nil {
		return leave.Leave{}, badRequest("End date cannot be before start date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return leave.Leave{}, err
	}
	l := leave.Leave{
		ID:           s.newID(),
		EmployeeID:   acct.User.EmployeeID,
		EmployeeName: acct.User.DisplayName(),
		LeaveType:    strings.ToLower(in.LeaveType),
		StartDate:    start,
		EndDate:      end,
		Days:         days,
		Reason:       in.Reason,
		Status:       leave.StatusPending,
		CreatedAt:    s.now(),
	}
	s.leaves.put(l.ID, l)
	return l, nil
}

// UpdateLeave edits a pending request. Owners may edit their own; HR and
// admins may edit any.
func (s *Store) UpdateLeave(p requestctx.Principal, id string, in leave.Request) (leave.Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leaves.get(id)
	if !ok {
		return leave.Leave{}, ErrLeaveNotFound
	}
	acct, err := s.caller(p)
	if err != nil {
		return leave.Leave{}, err
	}
	if !isManager(p.Role) && l.EmployeeID != acct.User.EmployeeID {
		return leave.Leave{}, ErrAccessDenied
	}
	if l.Status != leave.StatusPending {
		return leave.Leave{}, badRequest("Only pending leave requests can be edited")
	}

	v := validation.New()
	v.Enum("leaveType", in.LeaveType, leave.Types)
	start, end := l.StartDate, l.EndDate
	if in.StartDate != "" {
		start, _ = v.Date("startDate", in.StartDate)
	}
	if in.EndDate != "" {
		end, _ = v.Date("endDate", in.EndDate)
	}
	v.DateOrder("startDate", start, "endDate", end)
	if v.HasIssues() {
		return leave.Leave{}, v.Err()
	}

	if in.LeaveType != "" {
		l.LeaveType = strings.ToLower(in.LeaveType)
	}
	setIfPresent(&l.Reason, in.Reason)
	l.StartDate, l.EndDate = start, end
	l.Days, _ = leave.CalculateDays(start, end)
	s.leaves.put(l.ID, l)
	return l, nil
}

func (s *Store) SetLeaveStatus(p requestctx.Principal, id, status string) (leave.Leave, error) {
	if status != leave.StatusApproved && status != leave.StatusRejected && status != leave.StatusPending {
		return leave.Leave{}, badRequest("Invalid status")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leaves.get(id)
	if !ok {
		return leave.Leave{}, ErrLeaveNotFound
	}
	l.Status = status
	l.ReviewedBy = p.UserID
	s.leaves.put(l.ID, l)
	return l, nil
}

func (s *Store) DeleteLeave(p requestctx.Principal, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leaves.get(id)
	if !ok {
		return ErrLeaveNotFound
	}
	acct, err := s.caller(p)
	if err != nil {
		return err
	}
	if !isManager(p.Role) && l.EmployeeID != acct.User.EmployeeID {
		return ErrAccessDenied
	}
	s.leaves.delete(id)
	return nil
}
