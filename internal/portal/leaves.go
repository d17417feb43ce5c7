package portal

import (
	"context"
	"net/http"
	"net/url"

	"hrportal/internal/domain/leave"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/store"
)

// FetchLeaves loads every leave request. Only approvers may list them.
func (p *Portal) FetchLeaves(ctx context.Context) ([]leave.Leave, error) {
	return dispatch(ctx, p, p.leaves, OpFetchAll,
		func(ctx context.Context, cred httpclient.Credential) ([]leave.Leave, error) {
			return p.leaveAPI.List(ctx, cred, nil)
		},
		func(m *store.Mutator[leave.Leave], list []leave.Leave) {
			m.ReplaceAll(All, list)
		})
}

func (p *Portal) FetchMyLeaves(ctx context.Context) ([]leave.Leave, error) {
	return dispatch(ctx, p, p.leaves, OpFetchMine,
		func(ctx context.Context, cred httpclient.Credential) ([]leave.Leave, error) {
			return p.leaveAPI.ListAt(ctx, cred, "my-leaves", nil)
		},
		func(m *store.Mutator[leave.Leave], list []leave.Leave) {
			m.ReplaceAll(Mine, list)
		})
}

// SubmitLeave validates the date range locally before anything is sent.
func (p *Portal) SubmitLeave(ctx context.Context, form LeaveForm) (leave.Leave, error) {
	req, err := form.request(p.leavePolicy, p.now())
	if err != nil {
		return leave.Leave{}, err
	}
	return dispatch(ctx, p, p.leaves, OpCreate,
		func(ctx context.Context, cred httpclient.Credential) (leave.Leave, error) {
			return p.leaveAPI.Create(ctx, cred, req)
		},
		func(m *store.Mutator[leave.Leave], l leave.Leave) {
			m.Append(l, All, Mine)
		})
}

func (p *Portal) UpdateLeave(ctx context.Context, id string, form LeaveForm) (leave.Leave, error) {
	req, err := form.request(p.leavePolicy, p.now())
	if err != nil {
		return leave.Leave{}, err
	}
	return dispatch(ctx, p, p.leaves, OpUpdate,
		func(ctx context.Context, cred httpclient.Credential) (leave.Leave, error) {
			return p.leaveAPI.Update(ctx, cred, id, req)
		},
		func(m *store.Mutator[leave.Leave], l leave.Leave) {
			m.ReplaceByKey(l, All, Mine)
		})
}

func (p *Portal) ApproveLeave(ctx context.Context, id string) (leave.Leave, error) {
	return p.setLeaveStatus(ctx, id, leave.StatusApproved)
}

func (p *Portal) RejectLeave(ctx context.Context, id string) (leave.Leave, error) {
	return p.setLeaveStatus(ctx, id, leave.StatusRejected)
}

func (p *Portal) setLeaveStatus(ctx context.Context, id, status string) (leave.Leave, error) {
	return dispatch(ctx, p, p.leaves, OpStatus,
		func(ctx context.Context, cred httpclient.Credential) (leave.Leave, error) {
			return p.leaveAPI.Do(ctx, cred, http.MethodPut, url.PathEscape(id)+"/status", leave.StatusChange{Status: status})
		},
		func(m *store.Mutator[leave.Leave], l leave.Leave) {
			m.ReplaceByKey(l, All, Mine)
		})
}

func (p *Portal) DeleteLeave(ctx context.Context, id string) error {
	_, err := dispatch(ctx, p, p.leaves, OpDelete,
		func(ctx context.Context, cred httpclient.Credential) (struct{}, error) {
			return struct{}{}, p.leaveAPI.Delete(ctx, cred, id)
		},
		func(m *store.Mutator[leave.Leave], _ struct{}) {
			m.Remove(id, All, Mine)
		})
	return err
}
