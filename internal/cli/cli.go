// Package cli is the hrportal command line: one cobra command per portal
// intent, each gated by the same session guards the views use.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hrportal/internal/app"
	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/config"
	"hrportal/internal/portal"
	"hrportal/internal/session"
)

var (
	ErrSignedOut = errors.New("not signed in, run `hrportal login` first")
	ErrForbidden = errors.New("your role cannot run this command")
	// ErrSessionLoading means a profile fetch for the saved token has not
	// finished yet.
	ErrSessionLoading = errors.New("session is still loading, try again")
)

// Opener builds the application for one command run.
type Opener func() (*app.App, error)

// DefaultOpener loads configuration from .env and the environment.
func DefaultOpener(stderr io.Writer) Opener {
	return func() (*app.App, error) {
		cfg := config.Load()
		return app.New(cfg, app.NewLogger(cfg, stderr))
	}
}

type runtime struct {
	open    Opener
	jsonOut bool
}

func BuildCLI() *cobra.Command {
	return NewRootCommand(DefaultOpener(os.Stderr))
}

func NewRootCommand(open Opener) *cobra.Command {
	rt := &runtime{open: open}
	rootCmd := &cobra.Command{
		Use:           "hrportal",
		Short:         "HR portal client",
		Long:          "Sign in to the HR backend and manage employees, leave, attendance, documents, payroll and reviews.",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&rt.jsonOut, "json", false, "print results as JSON")

	rootCmd.AddCommand(rt.authCommands()...)
	rootCmd.AddCommand(rt.employeesCommand())
	rootCmd.AddCommand(rt.leavesCommand())
	rootCmd.AddCommand(rt.attendanceCommand())
	rootCmd.AddCommand(rt.documentsCommand())
	rootCmd.AddCommand(rt.payrollCommand())
	rootCmd.AddCommand(rt.performanceCommand())
	rootCmd.AddCommand(rt.dashboardCommand())
	return rootCmd
}

type runFunc func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error

// withApp opens the application for one run and closes it afterwards.
func (rt *runtime) withApp(run runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := rt.open()
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := a.Close(); err == nil {
				err = closeErr
			}
		}()
		return run(cmd.Context(), cmd, args, a.Portal)
	}
}

// guarded restores the session if needed and refuses to run for a signed-out
// user or, when roles are given, for any other role.
func (rt *runtime) guarded(roles []auth.Role, run runFunc) func(*cobra.Command, []string) error {
	return rt.withApp(func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
		protected := session.ProtectedGuard{
			Session: p.Session(),
			Refresh: func(ctx context.Context) error {
				_, err := p.RestoreSession(ctx)
				return err
			},
		}
		if err := denied(protected.Check(ctx)); err != nil {
			return err
		}
		if len(roles) > 0 {
			if err := denied(session.RouteGuard{Session: p.Session(), Roles: roles}.Check(ctx)); err != nil {
				return err
			}
		}
		return run(ctx, cmd, args, p)
	})
}

func denied(d session.Decision) error {
	switch {
	case d.Allow:
		return nil
	case d.Pending:
		return ErrSessionLoading
	case d.Redirect == session.RedirectDashboard:
		return ErrForbidden
	default:
		return ErrSignedOut
	}
}

var managers = []auth.Role{auth.RoleAdmin, auth.RoleHR}

// table is a rendered listing: JSON prints value, text prints the rows.
type table struct {
	value  any
	header []string
	rows   [][]string
}

func (rt *runtime) print(cmd *cobra.Command, t table) error {
	out := cmd.OutOrStdout()
	if rt.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(t.value)
	}
	if len(t.rows) == 0 && len(t.header) > 0 {
		_, err := fmt.Fprintln(out, "nothing to show")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if len(t.header) > 0 {
		fmt.Fprintln(tw, strings.Join(t.header, "\t"))
	}
	for _, row := range t.rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// record prints a single key/value block.
func (rt *runtime) record(cmd *cobra.Command, value any, pairs ...string) error {
	t := table{value: value}
	for i := 0; i+1 < len(pairs); i += 2 {
		t.rows = append(t.rows, []string{pairs[i] + ":", pairs[i+1]})
	}
	return rt.print(cmd, t)
}

func (rt *runtime) done(cmd *cobra.Command, msg string) error {
	if rt.jsonOut {
		return rt.print(cmd, table{value: map[string]string{"message": msg}})
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
