package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hrportal/internal/domain/employee"
	"hrportal/internal/portal"
)

func (rt *runtime) employeesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "Browse and manage employees",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			list, err := p.FetchEmployees(ctx)
			if err != nil {
				return err
			}
			return rt.print(cmd, employeeTable(list))
		}),
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(nil, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			e, err := p.FetchEmployee(ctx, args[0])
			if err != nil {
				return err
			}
			salary := ""
			if e.Salary != nil {
				salary = e.Salary.StringFixed(2)
			}
			return rt.record(cmd, e,
				"ID", e.ID,
				"Name", e.FullName(),
				"Email", e.Email,
				"Department", e.Department,
				"Position", e.Position,
				"Status", e.Status,
				"Hired", formatDate(e.HireDate),
				"Salary", salary,
			)
		}),
	}

	var form portal.EmployeeForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			e, err := p.CreateEmployee(ctx, form)
			if err != nil {
				return err
			}
			return rt.print(cmd, employeeTable([]employee.Employee{e}))
		}),
	}
	employeeFlags(create, &form)

	var updateForm portal.EmployeeForm
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an employee's details",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			e, err := p.UpdateEmployee(ctx, args[0], updateForm)
			if err != nil {
				return err
			}
			return rt.print(cmd, employeeTable([]employee.Employee{e}))
		}),
	}
	employeeFlags(update, &updateForm)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: rt.guarded(managers, func(ctx context.Context, cmd *cobra.Command, args []string, p *portal.Portal) error {
			if err := p.DeleteEmployee(ctx, args[0]); err != nil {
				return err
			}
			return rt.done(cmd, "Employee "+args[0]+" deleted")
		}),
	}

	cmd.AddCommand(list, get, create, update, del)
	return cmd
}

func employeeFlags(cmd *cobra.Command, form *portal.EmployeeForm) {
	cmd.Flags().StringVar(&form.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&form.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&form.Email, "email", "", "work email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&form.Department, "department", "", "department")
	cmd.Flags().StringVar(&form.Position, "position", "", "position")
	cmd.Flags().StringVar(&form.Status, "status", "", "active, inactive or on_leave")
	cmd.Flags().StringVar(&form.HireDate, "hire-date", "", "hire date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&form.Salary, "salary", "", "annual salary")
}

func employeeTable(list []employee.Employee) table {
	t := table{value: list, header: []string{"ID", "NAME", "DEPARTMENT", "POSITION", "STATUS"}}
	for _, e := range list {
		t.rows = append(t.rows, []string{e.ID, e.FullName(), e.Department, e.Position, e.Status})
	}
	return t
}
