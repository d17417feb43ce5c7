package data

import (
	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/dashboard"
	"hrportal/internal/domain/document"
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/performance"
)

func (s *Store) DashboardStats() dashboard.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.today()
	return dashboard.Stats{
		TotalEmployees: s.employees.len(),
		ActiveEmployees: len(s.employees.list(func(e employee.Employee) bool {
			return e.Status == employee.StatusActive
		})),
		PendingLeaves: len(s.leaves.list(func(l leave.Leave) bool {
			return l.Status == leave.StatusPending
		})),
		PendingReviews: len(s.reviews.list(func(r performance.Review) bool {
			return r.Status != performance.StatusCompleted
		})),
		TodayAttendance: len(s.attendance.list(func(r attendance.Record) bool {
			return r.Date == today && r.CheckIn != nil
		})),
		PendingDocs: len(s.documents.list(func(d document.Document) bool {
			return d.Status == document.StatusPending
		})),
	}
}
