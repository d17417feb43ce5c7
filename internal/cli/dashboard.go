package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"hrportal/internal/portal"
)

func (rt *runtime) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline numbers",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			s, err := p.FetchDashboard(ctx)
			if err != nil {
				return err
			}
			return rt.record(cmd, s,
				"Employees", strconv.Itoa(s.TotalEmployees),
				"Active", strconv.Itoa(s.ActiveEmployees),
				"Pending leaves", strconv.Itoa(s.PendingLeaves),
				"Open reviews", strconv.Itoa(s.PendingReviews),
				"Checked in today", strconv.Itoa(s.TodayAttendance),
				"Pending documents", strconv.Itoa(s.PendingDocs),
			)
		}),
	}
}
