package validation

import (
	"errors"
	"testing"
	"time"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{value: "ana@example.com", ok: true},
		{value: "a@b.co", ok: true},
		{value: "", ok: false},
		{value: "ana@example", ok: false},
		{value: "ana example.com", ok: false},
		{value: "@.", ok: false},
		{value: "  ana@example.com ", ok: true},
		{value: "Ana <ana@example.com>", ok: false},
	}
	for _, tc := range tests {
		v := New()
		v.Email("email", tc.value)
		if v.HasIssues() == tc.ok {
			t.Fatalf("Email(%q): expected ok=%v, issues=%v", tc.value, tc.ok, v.Issues())
		}
	}
}

func TestPasswordRules(t *testing.T) {
	v := New()
	v.MinLength("password", "abc", 6)
	v.Equal("confirmPassword", "abc", "abd", "must match password")

	err := v.Err()
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", verr.Issues)
	}
	if reason, ok := verr.Field("confirmPassword"); !ok || reason != "must match password" {
		t.Fatalf("unexpected confirm reason %q", reason)
	}
}

func TestMinLengthCountsCharacters(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{name: "ascii short", value: "abcde", ok: false},
		{name: "ascii exact", value: "abcdef", ok: true},
		{name: "multibyte short", value: "ééé", ok: false},
		{name: "multibyte exact", value: "éééééé", ok: true},
		{name: "spaces count", value: "      ", ok: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			v.MinLength("password", tc.value, 6)
			if v.HasIssues() == tc.ok {
				t.Fatalf("MinLength(%q): expected ok=%v, issues=%v", tc.value, tc.ok, v.Issues())
			}
		})
	}
}

func TestIssuesSorted(t *testing.T) {
	v := New()
	v.Add("zeta", "b")
	v.Add("alpha", "z")
	v.Add("alpha", "a")

	issues := v.Issues()
	if issues[0].Field != "alpha" || issues[0].Reason != "a" || issues[2].Field != "zeta" {
		t.Fatalf("unexpected order: %v", issues)
	}
}

func TestErrNilWithoutIssues(t *testing.T) {
	v := New()
	v.Required("name", "Ana")
	if err := v.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestLeavePolicyRejectsInvertedRange(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	v := New()
	DefaultLeavePolicy().CheckRange(v, "2025-01-10", "2025-01-05", now)

	if _, ok := (&Error{Issues: v.Issues()}).Field("endDate"); !ok {
		t.Fatalf("expected endDate issue, got %v", v.Issues())
	}
}

func TestLeavePolicyPastStart(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	strict := New()
	DefaultLeavePolicy().CheckRange(strict, "2025-01-10", "2025-01-12", now)
	if !strict.HasIssues() {
		t.Fatal("expected past start date to be rejected")
	}

	lenient := New()
	LeavePolicy{}.CheckRange(lenient, "2025-01-10", "2025-01-12", now)
	if lenient.HasIssues() {
		t.Fatalf("expected no issues, got %v", lenient.Issues())
	}

	today := New()
	DefaultLeavePolicy().CheckRange(today, "2025-02-01", "2025-02-01", now)
	if today.HasIssues() {
		t.Fatalf("today should be accepted, got %v", today.Issues())
	}
}

func TestUploadChecks(t *testing.T) {
	v := New()
	v.ContentType("file", "image/png", "image/")
	v.SizeBelow("file", 2<<20-1, 2<<20)
	if v.HasIssues() {
		t.Fatalf("expected valid image, got %v", v.Issues())
	}

	v.ContentType("file", "application/pdf", "image/")
	v.SizeBelow("file", 2<<20, 2<<20)
	if len(v.Issues()) != 2 {
		t.Fatalf("expected 2 issues, got %v", v.Issues())
	}
}
