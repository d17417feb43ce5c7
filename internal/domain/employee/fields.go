package employee

import "hrportal/internal/domain/auth"

// RedactFields strips compensation from a record unless the viewer is HR, an
// admin, or the employee themselves.
func RedactFields(emp *Employee, role auth.Role, isSelf bool) {
	if role == auth.RoleHR || role == auth.RoleAdmin {
		return
	}
	if isSelf {
		return
	}
	emp.Salary = nil
	emp.Phone = ""
}
