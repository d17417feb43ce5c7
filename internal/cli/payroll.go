package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"hrportal/internal/domain/payroll"
	"hrportal/internal/portal"
)

func (rt *runtime) payrollCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payroll",
		Aliases: []string{"payrolls"},
		Short:   "Run payroll and export payslips",
	}

	var filter payroll.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List payroll records you are allowed to see",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchPayrolls(ctx, filter)
			if err != nil {
				return err
			}
			return rt.print(cmd, payrollTable(list))
		}),
	}
	list.Flags().IntVar(&filter.Month, "month", 0, "only this month (1-12)")
	list.Flags().IntVar(&filter.Year, "year", 0, "only this year")

	var employeeID string
	history := &cobra.Command{
		Use:   "history",
		Short: "Show one employee's payroll history (default: yours)",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			id := employeeID
			if id == "" {
				user, _ := p.Session().User()
				id = user.EmployeeID
			}
			list, err := p.FetchEmployeePayroll(ctx, id)
			if err != nil {
				return err
			}
			return rt.print(cmd, payrollTable(list))
		}),
	}
	history.Flags().StringVar(&employeeID, "employee", "", "employee id")

	var form portal.GeneratePayrollForm
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Create draft payroll for a period",
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.GeneratePayroll(ctx, form)
			if err != nil {
				return err
			}
			return rt.print(cmd, payrollTable(list))
		}),
	}
	generate.Flags().IntVar(&form.Month, "month", 0, "month (1-12)")
	generate.Flags().IntVar(&form.Year, "year", 0, "year")
	generate.Flags().StringSliceVar(&form.EmployeeIDs, "employee", nil, "limit to these employee ids")
	_ = generate.MarkFlagRequired("month")
	_ = generate.MarkFlagRequired("year")

	var allowances, deductions, status string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Adjust a payroll record",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			patch := payroll.Patch{Status: status}
			var err error
			if patch.Allowances, err = optionalAmount("allowances", allowances); err != nil {
				return err
			}
			if patch.Deductions, err = optionalAmount("deductions", deductions); err != nil {
				return err
			}
			rec, err := p.UpdatePayroll(ctx, args[0], patch)
			if err != nil {
				return err
			}
			return rt.print(cmd, payrollTable([]payroll.Record{rec}))
		}),
	}
	update.Flags().StringVar(&allowances, "allowances", "", "allowances amount")
	update.Flags().StringVar(&deductions, "deductions", "", "deductions amount")
	update.Flags().StringVar(&status, "status", "", "draft, processed or paid")

	var out string
	payslip := &cobra.Command{
		Use:   "payslip <id>",
		Short: "Write a payslip PDF",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			path := out
			if path == "" {
				path = "payslip-" + args[0] + ".pdf"
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := p.ExportPayslip(ctx, args[0], f); err != nil {
				f.Close()
				os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return rt.done(cmd, "Payslip written to "+path)
		}),
	}
	payslip.Flags().StringVarP(&out, "out", "o", "", "output file")

	cmd.AddCommand(list, history, generate, update, payslip)
	return cmd
}

func optionalAmount(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", field, raw)
	}
	return &d, nil
}

func payrollTable(list []payroll.Record) table {
	t := table{value: list, header: []string{"ID", "EMPLOYEE", "PERIOD", "BASIC", "ALLOWANCES", "DEDUCTIONS", "NET", "STATUS"}}
	for _, r := range list {
		t.rows = append(t.rows, []string{
			r.ID, r.EmployeeName, r.Period(),
			r.BasicSalary.StringFixed(2), r.Allowances.StringFixed(2),
			r.Deductions.StringFixed(2), r.NetSalary.StringFixed(2), r.Status,
		})
	}
	return t
}
