package portal

import (
	"context"

	"hrportal/internal/domain/employee"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/store"
)

func (p *Portal) FetchEmployees(ctx context.Context) ([]employee.Employee, error) {
	return dispatch(ctx, p, p.employees, OpFetchAll,
		func(ctx context.Context, cred httpclient.Credential) ([]employee.Employee, error) {
			return p.employeeAPI.List(ctx, cred, nil)
		},
		func(m *store.Mutator[employee.Employee], list []employee.Employee) {
			m.ReplaceAll(All, list)
		})
}

// FetchEmployee loads one employee into the current slot.
func (p *Portal) FetchEmployee(ctx context.Context, id string) (employee.Employee, error) {
	return dispatch(ctx, p, p.employees, OpFetchOne,
		func(ctx context.Context, cred httpclient.Credential) (employee.Employee, error) {
			return p.employeeAPI.Get(ctx, cred, id)
		},
		func(m *store.Mutator[employee.Employee], e employee.Employee) {
			m.SetCurrent(e)
		})
}

func (p *Portal) CreateEmployee(ctx context.Context, form EmployeeForm) (employee.Employee, error) {
	payload, err := form.payload()
	if err != nil {
		return employee.Employee{}, err
	}
	return dispatch(ctx, p, p.employees, OpCreate,
		func(ctx context.Context, cred httpclient.Credential) (employee.Employee, error) {
			return p.employeeAPI.Create(ctx, cred, payload)
		},
		func(m *store.Mutator[employee.Employee], e employee.Employee) {
			m.Append(e, All)
		})
}

func (p *Portal) UpdateEmployee(ctx context.Context, id string, form EmployeeForm) (employee.Employee, error) {
	payload, err := form.payload()
	if err != nil {
		return employee.Employee{}, err
	}
	return dispatch(ctx, p, p.employees, OpUpdate,
		func(ctx context.Context, cred httpclient.Credential) (employee.Employee, error) {
			return p.employeeAPI.Update(ctx, cred, id, payload)
		},
		func(m *store.Mutator[employee.Employee], e employee.Employee) {
			m.ReplaceByKey(e, All)
		})
}

func (p *Portal) DeleteEmployee(ctx context.Context, id string) error {
	_, err := dispatch(ctx, p, p.employees, OpDelete,
		func(ctx context.Context, cred httpclient.Credential) (struct{}, error) {
			return struct{}{}, p.employeeAPI.Delete(ctx, cred, id)
		},
		func(m *store.Mutator[employee.Employee], _ struct{}) {
			m.Remove(id, All)
		})
	return err
}
