package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is returned when a form fails client-side checks. The form never
// reaches the network.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+" "+issue.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the first reason recorded for field.
func (e *Error) Field(field string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, issue := range e.Issues {
		if issue.Field == field {
			return issue.Reason, true
		}
	}
	return "", false
}

type Validator struct {
	issues []Issue
}

func New() *Validator {
	return &Validator{issues: make([]Issue, 0, 4)}
}

func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	field = strings.TrimSpace(field)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, Issue{Field: field, Reason: reason})
}

func (v *Validator) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
		return false
	}
	return true
}

// Email requires a non-empty local@domain.tld shaped value.
func (v *Validator) Email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		v.Add(field, "is required")
		return
	}
	if !emailPattern.MatchString(value) {
		v.Add(field, "must be a valid email address")
	}
}

// MinLength counts characters, not bytes.
func (v *Validator) MinLength(field, value string, min int) {
	if utf8.RuneCountInString(value) < min {
		v.Add(field, fmt.Sprintf("must be at least %d characters", min))
	}
}

func (v *Validator) Equal(field, value, other, reason string) {
	if value != other {
		v.Add(field, reason)
	}
}

func (v *Validator) Enum(field, value string, allowed []string) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return
	}
	for _, candidate := range allowed {
		if normalized == strings.ToLower(strings.TrimSpace(candidate)) {
			return
		}
	}
	v.Add(field, "must be one of "+strings.Join(allowed, ", "))
}

func (v *Validator) IntRange(field string, value, min, max int) {
	if value < min || value > max {
		v.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		v.Add(field, "is required")
		return time.Time{}, false
	}
	parsed, err := ParseDate(raw)
	if err != nil || parsed.IsZero() {
		v.Add(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) DateOrder(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Add(endField, "must be on or after "+startField)
	}
}

// NotBefore rejects dates earlier than the calendar day of now.
func (v *Validator) NotBefore(field string, date, now time.Time) {
	if date.IsZero() {
		return
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	if date.Before(today) {
		v.Add(field, "cannot be in the past")
	}
}

// SizeBelow requires size to be strictly smaller than limit bytes.
func (v *Validator) SizeBelow(field string, size, limit int64) {
	if size >= limit {
		v.Add(field, fmt.Sprintf("must be smaller than %dMB", limit/(1<<20)))
	}
}

// ContentType requires contentType to start with prefix, e.g. "image/".
func (v *Validator) ContentType(field, contentType, prefix string) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), prefix) {
		v.Add(field, "must be of type "+strings.TrimSuffix(prefix, "/"))
	}
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

func (v *Validator) Issues() []Issue {
	if v == nil || len(v.issues) == 0 {
		return nil
	}
	out := make([]Issue, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Err returns a *Error when any issue was recorded, nil otherwise.
func (v *Validator) Err() error {
	if !v.HasIssues() {
		return nil
	}
	return &Error{Issues: v.Issues()}
}
