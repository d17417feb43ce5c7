package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal/internal/app"
	"hrportal/internal/domain/leave"
	"hrportal/internal/platform/config"
	"hrportal/internal/session"
	"hrportal/internal/validation"
)

func testOpener(t *testing.T) Opener {
	t.Helper()
	cfg := config.FromEnv()
	cfg.DataSource = config.SourceMock
	cfg.MockLatency = 0
	cfg.StateDir = t.TempDir()
	cfg.TokenKey = ""
	cfg.ApplyPolicy = config.PolicyLastResolved
	cfg.LeaveRejectPast = true
	cfg.LogLevel = "error"
	return func() (*app.App, error) {
		return app.New(cfg, app.NewLogger(cfg, io.Discard))
	}
}

func run(open Opener, args ...string) (string, error) {
	cmd := NewRootCommand(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func loginAs(t *testing.T, open Opener, email string) {
	t.Helper()
	_, err := run(open, "login", "--email", email, "--password", "password123")
	require.NoError(t, err, "login should succeed")
}

func TestBuildCLI(t *testing.T) {
	cmd := BuildCLI()

	assert.Equal(t, "hrportal", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("json"), "Should have --json flag")

	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"login", "register", "logout", "whoami", "profile", "employees", "leaves", "attendance", "documents", "payroll", "performance", "dashboard"} {
		assert.True(t, names[want], "Should have %q command", want)
	}
}

func TestSessionPersistsBetweenRuns(t *testing.T) {
	open := testOpener(t)

	_, err := run(open, "whoami")
	assert.ErrorIs(t, err, ErrSignedOut)

	loginAs(t, open, "hr@hrportal.local")

	out, err := run(open, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "hr@hrportal.local")
	assert.Contains(t, out, "hr")

	out, err = run(open, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = run(open, "dashboard")
	assert.ErrorIs(t, err, ErrSignedOut)
}

func TestLoginFailure(t *testing.T) {
	open := testOpener(t)

	_, err := run(open, "login", "--email", "hr@hrportal.local", "--password", "nope-nope")
	require.Error(t, err)

	_, err = run(open, "whoami")
	assert.ErrorIs(t, err, ErrSignedOut)
}

func TestRoleGuards(t *testing.T) {
	open := testOpener(t)
	loginAs(t, open, "employee@hrportal.local")

	cases := []struct {
		name string
		args []string
	}{
		{name: "all leaves", args: []string{"leaves", "list"}},
		{name: "approve", args: []string{"leaves", "approve", "lv-2"}},
		{name: "create employee", args: []string{"employees", "create", "--first-name", "A"}},
		{name: "verify document", args: []string{"documents", "verify", "doc-2"}},
		{name: "generate payroll", args: []string{"payroll", "generate", "--month", "9", "--year", "2025"}},
		{name: "reviews", args: []string{"performance", "list"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(open, tc.args...)
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestMyLeavesAsJSON(t *testing.T) {
	open := testOpener(t)
	loginAs(t, open, "employee@hrportal.local")

	out, err := run(open, "--json", "leaves", "mine")
	require.NoError(t, err)

	var leaves []leave.Leave
	require.NoError(t, json.Unmarshal([]byte(out), &leaves))
	assert.Len(t, leaves, 2)
	for _, l := range leaves {
		assert.Equal(t, "emp-3", l.EmployeeID)
	}
}

func TestLeaveRequest(t *testing.T) {
	open := testOpener(t)
	loginAs(t, open, "employee@hrportal.local")

	_, err := run(open, "leaves", "request", "--type", "annual", "--start", "2030-01-10", "--end", "2030-01-05", "--reason", "Trip")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	_, hasEnd := verr.Field("endDate")
	assert.True(t, hasEnd)

	start := time.Now().AddDate(0, 0, 14).Format(validation.DateLayout)
	end := time.Now().AddDate(0, 0, 16).Format(validation.DateLayout)
	out, err := run(open, "leaves", "request", "--type", "annual", "--start", start, "--end", end, "--reason", "Trip")
	require.NoError(t, err)
	assert.Contains(t, out, "pending")
	assert.Contains(t, out, start)
}

func TestDocumentUploadAndStats(t *testing.T) {
	open := testOpener(t)
	loginAs(t, open, "employee@hrportal.local")

	path := filepath.Join(t.TempDir(), "contract.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 contract"), 0o600))

	out, err := run(open, "documents", "upload", path, "--category", "Forms")
	require.NoError(t, err)
	assert.Contains(t, out, "contract.pdf")
	assert.Contains(t, out, "pending")

	out, err = run(open, "documents", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Forms")
}

func TestPayslipExport(t *testing.T) {
	open := testOpener(t)
	loginAs(t, open, "employee@hrportal.local")

	path := filepath.Join(t.TempDir(), "slip.pdf")
	out, err := run(open, "payroll", "payslip", "pay-1", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))

	_, err = run(open, "payroll", "payslip", "pay-2", "--out", path+".other")
	require.Error(t, err, "another employee's payslip must be refused")
	_, statErr := os.Stat(path + ".other")
	assert.True(t, os.IsNotExist(statErr))
}

func TestManagerFlow(t *testing.T) {
	open := testOpener(t)
	loginAs(t, open, "hr@hrportal.local")

	out, err := run(open, "leaves", "approve", "lv-2")
	require.NoError(t, err)
	assert.Contains(t, out, "approved")

	out, err = run(open, "employees", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Noor Haddad")

	out, err = run(open, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Employees:")
}

func TestDeniedDecisions(t *testing.T) {
	cases := []struct {
		name     string
		decision session.Decision
		want     error
	}{
		{name: "allowed", decision: session.Decision{Allow: true}},
		{name: "profile loading", decision: session.Decision{Pending: true}, want: ErrSessionLoading},
		{name: "wrong role", decision: session.Decision{Redirect: session.RedirectDashboard}, want: ErrForbidden},
		{name: "signed out", decision: session.Decision{Redirect: session.RedirectLogin}, want: ErrSignedOut},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := denied(tc.decision)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
