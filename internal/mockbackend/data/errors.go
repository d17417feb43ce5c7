package data

import (
	"errors"
	"net/http"

	"hrportal/internal/validation"
)

// Error carries the status and message a handler should answer with.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(message string) error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: message}
}

func conflict(message string) error {
	return &Error{Status: http.StatusConflict, Code: "conflict", Message: message}
}

func forbidden(message string) error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Message: message}
}

func badRequest(message string) error {
	return &Error{Status: http.StatusBadRequest, Code: "bad_request", Message: message}
}

func unauthorized(message string) error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthorized", Message: message}
}

var (
	ErrInvalidCredentials = unauthorized("Invalid email or password")
	ErrEmailTaken         = conflict("Email already in use")
	ErrWrongPassword      = badRequest("Current password is incorrect")
	ErrUserNotFound       = notFound("User not found")
	ErrEmployeeNotFound   = notFound("Employee not found")
	ErrLeaveNotFound      = notFound("Leave request not found")
	ErrAttendanceNotFound = notFound("Attendance record not found")
	ErrDocumentNotFound   = notFound("Document not found")
	ErrPayrollNotFound    = notFound("Payroll record not found")
	ErrReviewNotFound     = notFound("Performance review not found")
	ErrAccessDenied       = forbidden("Access denied")
)

// Status maps err to an HTTP status, defaulting to 500.
func Status(err error) (int, string, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Code, e.Message
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return http.StatusBadRequest, "validation_error", verr.Error()
	}
	return http.StatusInternalServerError, "internal_error", "Server error"
}
