package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/performance"
	"hrportal/internal/portal"
)

func (rt *runtime) performanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "performance",
		Aliases: []string{"reviews"},
		Short:   "Write and read performance reviews",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every review",
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchReviews(ctx)
			if err != nil {
				return err
			}
			return rt.print(cmd, reviewTable(list))
		}),
	}

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List reviews about you",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchMyReviews(ctx)
			if err != nil {
				return err
			}
			return rt.print(cmd, reviewTable(list))
		}),
	}

	var form portal.ReviewForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Write a review",
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			r, err := p.CreateReview(ctx, form)
			if err != nil {
				return err
			}
			return rt.print(cmd, reviewTable([]performance.Review{r}))
		}),
	}
	reviewFlags(create, &form)

	var updateForm portal.ReviewForm
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a review",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			r, err := p.UpdateReview(ctx, args[0], updateForm)
			if err != nil {
				return err
			}
			return rt.print(cmd, reviewTable([]performance.Review{r}))
		}),
	}
	reviewFlags(update, &updateForm)

	cmd.AddCommand(list, mine, create, update)
	return cmd
}

func reviewFlags(cmd *cobra.Command, form *portal.ReviewForm) {
	cmd.Flags().StringVar(&form.EmployeeID, "employee", "", "employee id")
	cmd.Flags().StringVar(&form.Period, "period", "", "review period, e.g. 2025-H2")
	cmd.Flags().IntVar(&form.Rating, "rating", 0, "rating 1-5")
	cmd.Flags().StringVar(&form.Goals, "goals", "", "goals")
	cmd.Flags().StringVar(&form.Strengths, "strengths", "", "strengths")
	cmd.Flags().StringVar(&form.Improvements, "improvements", "", "areas to improve")
	cmd.Flags().StringVar(&form.Comments, "comments", "", "comments")
	cmd.Flags().StringVar(&form.Status, "status", "", "draft, submitted or completed")
}

func reviewTable(list []performance.Review) table {
	t := table{value: list, header: []string{"ID", "EMPLOYEE", "PERIOD", "RATING", "STATUS"}}
	for _, r := range list {
		name := r.EmployeeName
		if name == "" {
			name = r.EmployeeID
		}
		t.rows = append(t.rows, []string{r.ID, name, r.Period, strconv.Itoa(r.Rating), r.Status})
	}
	return t
}
