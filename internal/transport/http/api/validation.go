package api

import (
	"net/http"

	"hrportal/internal/validation"
)

// Reject writes a 400 with the collected field issues and reports whether it did.
func Reject(w http.ResponseWriter, v *validation.Validator, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": v.Issues()},
		requestID,
	)
	return true
}
