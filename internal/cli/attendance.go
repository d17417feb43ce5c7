package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/attendance"
	"hrportal/internal/portal"
)

func (rt *runtime) attendanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Punch in and out and review attendance",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List attendance you are allowed to see",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			listing, err := p.FetchAttendance(ctx)
			if err != nil {
				return err
			}
			t := attendanceTable(listing.Records)
			t.value = listing
			return rt.print(cmd, t)
		}),
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your attendance",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchMyAttendance(ctx)
			if err != nil {
				return err
			}
			return rt.print(cmd, attendanceTable(list))
		}),
	}

	var notes string
	checkIn := &cobra.Command{
		Use:   "check-in",
		Short: "Record today's arrival",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			rec, err := p.CheckIn(ctx, notes)
			if err != nil {
				return err
			}
			return rt.print(cmd, attendanceTable([]attendance.Record{rec}))
		}),
	}
	checkIn.Flags().StringVar(&notes, "notes", "", "optional note")

	var outNotes string
	checkOut := &cobra.Command{
		Use:   "check-out",
		Short: "Record today's departure",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			rec, err := p.CheckOut(ctx, outNotes)
			if err != nil {
				return err
			}
			return rt.print(cmd, attendanceTable([]attendance.Record{rec}))
		}),
	}
	checkOut.Flags().StringVar(&outNotes, "notes", "", "optional note")

	var form portal.AttendanceForm
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Correct an attendance record",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			rec, err := p.UpdateAttendance(ctx, args[0], form)
			if err != nil {
				return err
			}
			return rt.print(cmd, attendanceTable([]attendance.Record{rec}))
		}),
	}
	update.Flags().StringVar(&form.Status, "status", "", "present, late, absent or half_day")
	update.Flags().StringVar(&form.CheckIn, "check-in", "", "arrival (RFC 3339)")
	update.Flags().StringVar(&form.CheckOut, "check-out", "", "departure (RFC 3339)")
	update.Flags().StringVar(&form.Notes, "notes", "", "note")

	cmd.AddCommand(list, mine, checkIn, checkOut, update)
	return cmd
}

func attendanceTable(list []attendance.Record) table {
	t := table{value: list, header: []string{"ID", "EMPLOYEE", "DATE", "IN", "OUT", "HOURS", "OVERTIME", "STATUS"}}
	for _, r := range list {
		t.rows = append(t.rows, []string{
			r.ID, r.EmployeeName, r.Date,
			formatClock(r.CheckIn), formatClock(r.CheckOut),
			formatHours(r.WorkHours), formatHours(r.Overtime), r.Status,
		})
	}
	return t
}
