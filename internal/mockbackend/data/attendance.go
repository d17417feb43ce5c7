package data

import (
	"time"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/requestctx"
	"hrportal/internal/validation"
)

func finishPunches(rec *attendance.Record) {
	if rec.CheckIn != nil {
		if rec.Status == "" || rec.Status == attendance.StatusAbsent {
			rec.Status = attendance.StatusFor(*rec.CheckIn)
		}
	}
	if rec.CheckIn != nil && rec.CheckOut != nil {
		rec.WorkHours, rec.Overtime = attendance.WorkHours(*rec.CheckIn, *rec.CheckOut)
	}
}

// ListAttendance returns the records the caller may see plus the caller's
// record for today. Employees only see their own.
func (s *Store) ListAttendance(p requestctx.Principal) (attendance.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return attendance.Listing{}, err
	}
	var keep func(attendance.Record) bool
	if !isManager(p.Role) {
		keep = func(r attendance.Record) bool { return r.EmployeeID == acct.User.EmployeeID }
	}
	listing := attendance.Listing{Records: s.attendance.list(keep)}
	if today, ok := s.todayRecord(acct.User.EmployeeID); ok {
		listing.TodayRecord = &today
	}
	return listing, nil
}

func (s *Store) MyAttendance(p requestctx.Principal) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return nil, err
	}
	return s.attendance.list(func(r attendance.Record) bool { return r.EmployeeID == acct.User.EmployeeID }), nil
}

func (s *Store) todayRecord(employeeID string) (attendance.Record, bool) {
	today := s.today()
	for _, rec := range s.attendance.list(nil) {
		if rec.EmployeeID == employeeID && rec.Date == today {
			return rec, true
		}
	}
	return attendance.Record{}, false
}

func (s *Store) CheckIn(p requestctx.Principal, notes string) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return attendance.Record{}, err
	}
	if rec, ok := s.todayRecord(acct.User.EmployeeID); ok && rec.CheckIn != nil {
		return attendance.Record{}, badRequest("Already checked in today")
	}
	now := s.now()
	rec := attendance.Record{
		ID:           s.newID(),
		EmployeeID:   acct.User.EmployeeID,
		EmployeeName: acct.User.DisplayName(),
		Date:         s.today(),
		CheckIn:      &now,
		Status:       attendance.StatusFor(now),
		Notes:        notes,
	}
	s.attendance.put(rec.ID, rec)
	return rec, nil
}

func (s *Store) CheckOut(p requestctx.Principal, notes string) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct, err := s.caller(p)
	if err != nil {
		return attendance.Record{}, err
	}
	rec, ok := s.todayRecord(acct.User.EmployeeID)
	if !ok || rec.CheckIn == nil {
		return attendance.Record{}, badRequest("No check-in record found for today")
	}
	if rec.CheckOut != nil {
		return attendance.Record{}, badRequest("Already checked out today")
	}
	now := s.now()
	rec.CheckOut = &now
	if notes != "" {
		rec.Notes = notes
	}
	finishPunches(&rec)
	s.attendance.put(rec.ID, rec)
	return rec, nil
}

func (s *Store) UpdateAttendance(id string, in attendance.Update) (attendance.Record, error) {
	v := validation.New()
	v.Enum("status", in.Status, attendance.Statuses)
	var checkIn, checkOut *time.Time
	if in.CheckIn != "" {
		if t, ok := v.Date("checkIn", in.CheckIn); ok {
			checkIn = &t
		}
	}
	if in.CheckOut != "" {
		if t, ok := v.Date("checkOut", in.CheckOut); ok {
			checkOut = &t
		}
	}
	if v.HasIssues() {
		return attendance.Record{}, v.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.attendance.get(id)
	if !ok {
		return attendance.Record{}, ErrAttendanceNotFound
	}
	if checkIn != nil {
		rec.CheckIn = checkIn
	}
	if checkOut != nil {
		rec.CheckOut = checkOut
	}
	if in.Status != "" {
		rec.Status = in.Status
	}
	if in.Notes != "" {
		rec.Notes = in.Notes
	}
	if rec.CheckIn != nil && rec.CheckOut != nil {
		rec.WorkHours, rec.Overtime = attendance.WorkHours(*rec.CheckIn, *rec.CheckOut)
	}
	s.attendance.put(rec.ID, rec)
	return rec, nil
}
