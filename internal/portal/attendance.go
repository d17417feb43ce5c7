package portal

import (
	"context"
	"net/http"

	"hrportal/internal/client"
	"hrportal/internal/domain/attendance"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/store"
)

// FetchAttendance loads the visible records and keeps today's record, if
// any, in the current slot.
func (p *Portal) FetchAttendance(ctx context.Context) (attendance.Listing, error) {
	return dispatch(ctx, p, p.attendance, OpFetchAll,
		func(ctx context.Context, cred httpclient.Credential) (attendance.Listing, error) {
			return client.Call[attendance.Listing](ctx, p.caller, cred, http.MethodGet, client.Attendance.Path, nil, nil)
		},
		func(m *store.Mutator[attendance.Record], listing attendance.Listing) {
			m.ReplaceAll(All, listing.Records)
			if listing.TodayRecord != nil {
				m.SetCurrent(*listing.TodayRecord)
			} else {
				m.ClearCurrent()
			}
		})
}

func (p *Portal) FetchMyAttendance(ctx context.Context) ([]attendance.Record, error) {
	return dispatch(ctx, p, p.attendance, OpFetchMine,
		func(ctx context.Context, cred httpclient.Credential) ([]attendance.Record, error) {
			return p.attendanceAPI.ListAt(ctx, cred, "my-attendance", nil)
		},
		func(m *store.Mutator[attendance.Record], list []attendance.Record) {
			m.ReplaceAll(Mine, list)
		})
}

func (p *Portal) CheckIn(ctx context.Context, notes string) (attendance.Record, error) {
	return dispatch(ctx, p, p.attendance, OpCheckIn,
		func(ctx context.Context, cred httpclient.Credential) (attendance.Record, error) {
			return p.attendanceAPI.Do(ctx, cred, http.MethodPost, "check-in", attendance.Punch{Notes: notes})
		},
		func(m *store.Mutator[attendance.Record], rec attendance.Record) {
			m.Append(rec, All, Mine)
			m.SetCurrent(rec)
		})
}

func (p *Portal) CheckOut(ctx context.Context, notes string) (attendance.Record, error) {
	return dispatch(ctx, p, p.attendance, OpCheckOut,
		func(ctx context.Context, cred httpclient.Credential) (attendance.Record, error) {
			return p.attendanceAPI.Do(ctx, cred, http.MethodPost, "check-out", attendance.Punch{Notes: notes})
		},
		func(m *store.Mutator[attendance.Record], rec attendance.Record) {
			m.ReplaceByKey(rec, All, Mine)
			m.SetCurrent(rec)
		})
}

func (p *Portal) UpdateAttendance(ctx context.Context, id string, form AttendanceForm) (attendance.Record, error) {
	upd, err := form.update()
	if err != nil {
		return attendance.Record{}, err
	}
	return dispatch(ctx, p, p.attendance, OpUpdate,
		func(ctx context.Context, cred httpclient.Credential) (attendance.Record, error) {
			return p.attendanceAPI.Update(ctx, cred, id, upd)
		},
		func(m *store.Mutator[attendance.Record], rec attendance.Record) {
			m.ReplaceByKey(rec, All, Mine)
		})
}
