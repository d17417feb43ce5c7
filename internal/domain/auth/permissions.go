package auth

const (
	PermEmployeesRead     = "employees.read"
	PermEmployeesWrite    = "employees.write"
	PermLeaveRead         = "leave.read"
	PermLeaveWrite        = "leave.write"
	PermLeaveApprove      = "leave.approve"
	PermAttendanceRead    = "attendance.read"
	PermAttendanceWrite   = "attendance.write"
	PermAttendanceManage  = "attendance.manage"
	PermDocumentsRead     = "documents.read"
	PermDocumentsWrite    = "documents.write"
	PermDocumentsVerify   = "documents.verify"
	PermPayrollRead       = "payroll.read"
	PermPayrollRun        = "payroll.run"
	PermPerformanceRead   = "performance.read"
	PermPerformanceReview = "performance.review"
	PermDashboardRead     = "dashboard.read"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermAttendanceManage,
	PermDocumentsRead,
	PermDocumentsWrite,
	PermDocumentsVerify,
	PermPayrollRead,
	PermPayrollRun,
	PermPerformanceRead,
	PermPerformanceReview,
	PermDashboardRead,
}

var managerPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermLeaveRead,
	PermLeaveWrite,
	PermLeaveApprove,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermAttendanceManage,
	PermDocumentsRead,
	PermDocumentsWrite,
	PermDocumentsVerify,
	PermPayrollRead,
	PermPayrollRun,
	PermPerformanceRead,
	PermPerformanceReview,
	PermDashboardRead,
}

var RolePermissions = map[Role][]string{
	RoleEmployee: {
		PermLeaveRead,
		PermLeaveWrite,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermDocumentsRead,
		PermDocumentsWrite,
		PermPayrollRead,
		PermPerformanceRead,
		PermDashboardRead,
	},
	RoleHR:    managerPermissions,
	RoleAdmin: managerPermissions,
}

// Allowed reports whether role carries permission.
func Allowed(role Role, permission string) bool {
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true
		}
	}
	return false
}
