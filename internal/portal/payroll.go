package portal

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"hrportal/internal/client"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/platform/payslip"
	"hrportal/internal/store"
)

func (p *Portal) FetchPayrolls(ctx context.Context, filter payroll.Filter) ([]payroll.Record, error) {
	return dispatch(ctx, p, p.payrolls, OpFetchAll,
		func(ctx context.Context, cred httpclient.Credential) ([]payroll.Record, error) {
			return p.payrollAPI.List(ctx, cred, filter.Values())
		},
		func(m *store.Mutator[payroll.Record], list []payroll.Record) {
			m.ReplaceAll(All, list)
		})
}

// FetchEmployeePayroll loads one employee's payroll history into the mine
// collection.
func (p *Portal) FetchEmployeePayroll(ctx context.Context, employeeID string) ([]payroll.Record, error) {
	return dispatch(ctx, p, p.payrolls, OpFetchMine,
		func(ctx context.Context, cred httpclient.Credential) ([]payroll.Record, error) {
			return p.payrollAPI.ListAt(ctx, cred, "employee/"+url.PathEscape(employeeID), nil)
		},
		func(m *store.Mutator[payroll.Record], list []payroll.Record) {
			m.ReplaceAll(Mine, list)
		})
}

func (p *Portal) GeneratePayroll(ctx context.Context, form GeneratePayrollForm) ([]payroll.Record, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	req := payroll.GenerateRequest{Month: form.Month, Year: form.Year, EmployeeIDs: form.EmployeeIDs}
	return dispatch(ctx, p, p.payrolls, OpGenerate,
		func(ctx context.Context, cred httpclient.Credential) ([]payroll.Record, error) {
			return client.Call[[]payroll.Record](ctx, p.caller, cred, http.MethodPost, client.Payrolls.Path, nil, req)
		},
		func(m *store.Mutator[payroll.Record], created []payroll.Record) {
			for _, rec := range created {
				m.Append(rec, All)
			}
		})
}

func (p *Portal) UpdatePayroll(ctx context.Context, id string, patch payroll.Patch) (payroll.Record, error) {
	return dispatch(ctx, p, p.payrolls, OpUpdate,
		func(ctx context.Context, cred httpclient.Credential) (payroll.Record, error) {
			return p.payrollAPI.Update(ctx, cred, id, patch)
		},
		func(m *store.Mutator[payroll.Record], rec payroll.Record) {
			m.ReplaceByKey(rec, All, Mine)
		})
}

// ExportPayslip renders the payslip PDF for a payroll record, fetching the
// record when neither collection holds it.
func (p *Portal) ExportPayslip(ctx context.Context, id string, w io.Writer) error {
	rec, ok := p.payrolls.Find(All, id)
	if !ok {
		rec, ok = p.payrolls.Find(Mine, id)
	}
	if !ok {
		fetched, err := dispatch(ctx, p, p.payrolls, OpFetchOne,
			func(ctx context.Context, cred httpclient.Credential) (payroll.Record, error) {
				return p.payrollAPI.Get(ctx, cred, id)
			},
			func(m *store.Mutator[payroll.Record], rec payroll.Record) {
				m.SetCurrent(rec)
			})
		if err != nil {
			return err
		}
		rec = fetched
	}
	return payslip.Render(w, rec)
}
