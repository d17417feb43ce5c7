package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/leave"
	"hrportal/internal/portal"
)

func (rt *runtime) leavesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "leaves",
		Aliases: []string{"leave"},
		Short:   "Request and review leave",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every leave request",
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchLeaves(ctx)
			if err != nil {
				return err
			}
			return rt.print(cmd, leaveTable(list))
		}),
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your leave requests",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchMyLeaves(ctx)
			if err != nil {
				return err
			}
			return rt.print(cmd, leaveTable(list))
		}),
	}

	var form portal.LeaveForm
	request := &cobra.Command{
		Use:   "request",
		Short: "Submit a leave request",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			l, err := p.SubmitLeave(ctx, form)
			if err != nil {
				return err
			}
			return rt.print(cmd, leaveTable([]leave.Leave{l}))
		}),
	}
	leaveFlags(request, &form)

	var updateForm portal.LeaveForm
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a pending leave request",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			l, err := p.UpdateLeave(ctx, args[0], updateForm)
			if err != nil {
				return err
			}
			return rt.print(cmd, leaveTable([]leave.Leave{l}))
		}),
	}
	leaveFlags(update, &updateForm)

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			l, err := p.ApproveLeave(ctx, args[0])
			if err != nil {
				return err
			}
			return rt.print(cmd, leaveTable([]leave.Leave{l}))
		}),
	}

	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			l, err := p.RejectLeave(ctx, args[0])
			if err != nil {
				return err
			}
			return rt.print(cmd, leaveTable([]leave.Leave{l}))
		}),
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Withdraw a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			if err := p.DeleteLeave(ctx, args[0]); err != nil {
				return err
			}
			return rt.done(cmd, "Leave "+args[0]+" deleted")
		}),
	}

	cmd.AddCommand(list, mine, request, update, approve, reject, del)
	return cmd
}

func leaveFlags(cmd *cobra.Command, form *portal.LeaveForm) {
	cmd.Flags().StringVar(&form.LeaveType, "type", "", "annual, sick, personal, maternity, paternity or unpaid")
	cmd.Flags().StringVar(&form.StartDate, "start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.EndDate, "end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.Reason, "reason", "", "reason for the leave")
}

func leaveTable(list []leave.Leave) table {
	t := table{value: list, header: []string{"ID", "EMPLOYEE", "TYPE", "FROM", "TO", "DAYS", "STATUS"}}
	for _, l := range list {
		t.rows = append(t.rows, []string{
			l.ID, l.EmployeeName, l.LeaveType,
			formatDate(l.StartDate), formatDate(l.EndDate),
			formatHours(l.Days), l.Status,
		})
	}
	return t
}
