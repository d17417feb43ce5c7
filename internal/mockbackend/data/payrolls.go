package data

import (
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/requestctx"
	"hrportal/internal/validation"
)

// ListPayrolls returns every matching record to HR and admins and only the
// caller's records to everyone else.
func (s *Store) ListPayrolls(p requestctx.Principal, f payroll.Filter) ([]payroll.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if isManager(p.Role) {
		return s.payrolls.list(f.Match), nil
	}
	acct, err := s.caller(p)
	if err != nil {
		return nil, err
	}
	return s.payrolls.list(func(r payroll.Record) bool {
		return r.EmployeeID == acct.User.EmployeeID && f.Match(r)
	}), nil
}

func (s *Store) EmployeePayrolls(p requestctx.Principal, employeeID string) ([]payroll.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !isManager(p.Role) {
		acct, err := s.caller(p)
		if err != nil {
			return nil, err
		}
		if acct.User.EmployeeID != employeeID {
			return nil, ErrAccessDenied
		}
	}
	if _, ok := s.employees.get(employeeID); !ok {
		return nil, ErrEmployeeNotFound
	}
	return s.payrolls.list(func(r payroll.Record) bool { return r.EmployeeID == employeeID }), nil
}

// GeneratePayroll drafts one record per active employee for the period.
// Employees already paid for the period are skipped.
func (s *Store) GeneratePayroll(in payroll.GenerateRequest) ([]payroll.Record, error) {
	v := validation.New()
	v.IntRange("month", in.Month, 1, 12)
	v.IntRange("year", in.Year, 2000, 2100)
	if v.HasIssues() {
		return nil, v.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range in.EmployeeIDs {
		if _, ok := s.employees.get(id); !ok {
			return nil, ErrEmployeeNotFound
		}
		wanted[id] = true
	}
	done := map[string]bool{}
	for _, r := range s.payrolls.list(payroll.Filter{Month: in.Month, Year: in.Year}.Match) {
		done[r.EmployeeID] = true
	}

	now := s.now()
	var out []payroll.Record
	for _, emp := range s.employees.list(nil) {
		if len(wanted) > 0 && !wanted[emp.ID] {
			continue
		}
		if emp.Status == employee.StatusInactive || done[emp.ID] || emp.Salary == nil {
			continue
		}
		basic := payroll.MonthlyBasic(*emp.Salary)
		rec := payroll.Record{
			ID:           s.newID(),
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName(),
			Month:        in.Month,
			Year:         in.Year,
			BasicSalary:  basic,
			NetSalary:    basic,
			Status:       payroll.StatusDraft,
			CreatedAt:    now,
		}
		s.payrolls.put(rec.ID, rec)
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, conflict("Payroll already generated for this period")
	}
	return out, nil
}

func (s *Store) UpdatePayroll(id string, in payroll.Patch) (payroll.Record, error) {
	v := validation.New()
	v.Enum("status", in.Status, payroll.Statuses)
	if in.Allowances != nil && in.Allowances.IsNegative() {
		v.Add("allowances", "must not be negative")
	}
	if in.Deductions != nil && in.Deductions.IsNegative() {
		v.Add("deductions", "must not be negative")
	}
	if v.HasIssues() {
		return payroll.Record{}, v.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.payrolls.get(id)
	if !ok {
		return payroll.Record{}, ErrPayrollNotFound
	}
	if rec.Status == payroll.StatusPaid && (in.Allowances != nil || in.Deductions != nil) {
		return payroll.Record{}, badRequest("Paid payroll cannot be modified")
	}
	if in.Allowances != nil {
		rec.Allowances = *in.Allowances
	}
	if in.Deductions != nil {
		rec.Deductions = *in.Deductions
	}
	rec.NetSalary = payroll.ComputeNet(rec.BasicSalary, rec.Allowances, rec.Deductions)
	if in.Status != "" && in.Status != rec.Status {
		rec.Status = in.Status
		if rec.Status == payroll.StatusPaid {
			now := s.now()
			rec.PaidAt = &now
		}
	}
	s.payrolls.put(rec.ID, rec)
	return rec, nil
}

func (s *Store) GetPayroll(p requestctx.Principal, id string) (payroll.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.payrolls.get(id)
	if !ok {
		return payroll.Record{}, ErrPayrollNotFound
	}
	if !isManager(p.Role) {
		acct, err := s.caller(p)
		if err != nil {
			return payroll.Record{}, err
		}
		if rec.EmployeeID != acct.User.EmployeeID {
			return payroll.Record{}, ErrAccessDenied
		}
	}
	return rec, nil
}
