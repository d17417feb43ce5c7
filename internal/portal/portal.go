// Package portal turns user intents into slice transitions: validate the
// form, begin the operation, call the backend with the session credential,
// then apply the result.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hrportal/internal/client"
	"hrportal/internal/domain/attendance"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/dashboard"
	"hrportal/internal/domain/document"
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/domain/performance"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/session"
	"hrportal/internal/store"
	"hrportal/internal/validation"
)

// Collection names shared by every slice.
const (
	All  = "all"
	Mine = "mine"
)

// Operation names, one lifecycle each per slice.
const (
	OpFetchAll  = "fetchAll"
	OpFetchMine = "fetchMine"
	OpFetchOne  = "fetchOne"
	OpCreate    = "create"
	OpUpdate    = "update"
	OpStatus    = "updateStatus"
	OpDelete    = "delete"
	OpVerify    = "verify"
	OpStats     = "stats"
	OpCheckIn   = "checkIn"
	OpCheckOut  = "checkOut"
	OpGenerate  = "generate"

	OpLogin          = "login"
	OpRegister       = "register"
	OpProfile        = "getProfile"
	OpUpdateProfile  = "updateProfile"
	OpChangePassword = "changePassword"
	OpUploadPicture  = "uploadPicture"
	OpLogout         = "logout"
)

// ErrSuperseded is returned when a newer dispatch of the same operation made
// this completion stale under the latest-dispatched policy.
var ErrSuperseded = errors.New("superseded by a newer request")

// stale marks a failure that arrived after a newer dispatch; it matches
// both ErrSuperseded and the underlying error.
func stale(err error) error {
	return fmt.Errorf("%w: %w", ErrSuperseded, err)
}

type Options struct {
	Session     *session.Manager
	Caller      client.Caller
	Policy      store.Policy
	LeavePolicy validation.LeavePolicy
	Now         func() time.Time
	Logger      *slog.Logger
}

type Portal struct {
	session     *session.Manager
	caller      client.Caller
	leavePolicy validation.LeavePolicy
	now         func() time.Time
	logger      *slog.Logger

	auth          *store.Value[auth.User]
	employees     *store.Slice[employee.Employee]
	leaves        *store.Slice[leave.Leave]
	attendance    *store.Slice[attendance.Record]
	documents     *store.Slice[document.Document]
	documentStats *store.Value[document.Stats]
	payrolls      *store.Slice[payroll.Record]
	reviews       *store.Slice[performance.Review]
	dashboard     *store.Value[dashboard.Stats]

	authAPI        *client.Resource[auth.User]
	employeeAPI    *client.Resource[employee.Employee]
	leaveAPI       *client.Resource[leave.Leave]
	attendanceAPI  *client.Resource[attendance.Record]
	documentAPI    *client.Resource[document.Document]
	payrollAPI     *client.Resource[payroll.Record]
	performanceAPI *client.Resource[performance.Review]
}

func New(opts Options) *Portal {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Session == nil {
		opts.Session = session.NewManager(nil, opts.Logger)
	}
	sliceOpts := []store.Option{store.WithPolicy(opts.Policy), store.WithLogger(opts.Logger)}

	return &Portal{
		session:     opts.Session,
		caller:      opts.Caller,
		leavePolicy: opts.LeavePolicy,
		now:         opts.Now,
		logger:      opts.Logger,

		auth:          store.NewValue[auth.User]("auth", sliceOpts...),
		employees:     store.NewSlice[employee.Employee]("employees", sliceOpts...),
		leaves:        store.NewSlice[leave.Leave]("leaves", sliceOpts...),
		attendance:    store.NewSlice[attendance.Record]("attendance", sliceOpts...),
		documents:     store.NewSlice[document.Document]("documents", sliceOpts...),
		documentStats: store.NewValue[document.Stats]("documentStats", sliceOpts...),
		payrolls:      store.NewSlice[payroll.Record]("payrolls", sliceOpts...),
		reviews:       store.NewSlice[performance.Review]("performance", sliceOpts...),
		dashboard:     store.NewValue[dashboard.Stats]("dashboard", sliceOpts...),

		authAPI:        client.NewResource[auth.User](opts.Caller, client.Auth),
		employeeAPI:    client.NewResource[employee.Employee](opts.Caller, client.Employees),
		leaveAPI:       client.NewResource[leave.Leave](opts.Caller, client.Leaves),
		attendanceAPI:  client.NewResource[attendance.Record](opts.Caller, client.Attendance),
		documentAPI:    client.NewResource[document.Document](opts.Caller, client.Documents),
		payrollAPI:     client.NewResource[payroll.Record](opts.Caller, client.Payrolls),
		performanceAPI: client.NewResource[performance.Review](opts.Caller, client.Performance),
	}
}

func (p *Portal) Session() *session.Manager                   { return p.session }
func (p *Portal) Auth() *store.Value[auth.User]               { return p.auth }
func (p *Portal) Employees() *store.Slice[employee.Employee]  { return p.employees }
func (p *Portal) Leaves() *store.Slice[leave.Leave]           { return p.leaves }
func (p *Portal) Attendance() *store.Slice[attendance.Record] { return p.attendance }
func (p *Portal) Documents() *store.Slice[document.Document]  { return p.documents }
func (p *Portal) DocumentStats() *store.Value[document.Stats] { return p.documentStats }
func (p *Portal) Payrolls() *store.Slice[payroll.Record]      { return p.payrolls }
func (p *Portal) Reviews() *store.Slice[performance.Review]   { return p.reviews }
func (p *Portal) Dashboard() *store.Value[dashboard.Stats]    { return p.dashboard }

// dispatch runs one operation against a keyed slice. The credential is read
// once, when the operation begins.
func dispatch[T store.Keyed, R any](
	ctx context.Context,
	p *Portal,
	s *store.Slice[T],
	op string,
	call func(ctx context.Context, cred httpclient.Credential) (R, error),
	apply func(m *store.Mutator[T], result R),
) (R, error) {
	cred := p.session.Credential()
	tk := s.Begin(op)
	result, err := call(ctx, cred)
	if err != nil {
		if !s.Fail(tk, httpclient.Message(err)) {
			return result, stale(err)
		}
		return result, err
	}
	applied := s.Resolve(tk, func(m *store.Mutator[T]) {
		if apply != nil {
			apply(m, result)
		}
	})
	if !applied {
		return result, ErrSuperseded
	}
	return result, nil
}

// fetchValue is dispatch for single-value slices.
func fetchValue[V any](
	ctx context.Context,
	p *Portal,
	s *store.Value[V],
	op string,
	call func(ctx context.Context, cred httpclient.Credential) (V, error),
) (V, error) {
	cred := p.session.Credential()
	tk := s.Begin(op)
	result, err := call(ctx, cred)
	if err != nil {
		if !s.Fail(tk, httpclient.Message(err)) {
			return result, stale(err)
		}
		return result, err
	}
	if !s.Resolve(tk, result) {
		return result, ErrSuperseded
	}
	return result, nil
}

// Reset drops every cached record, e.g. after logout.
func (p *Portal) Reset() {
	p.auth.Clear()
	p.employees.Reset()
	p.leaves.Reset()
	p.attendance.Reset()
	p.documents.Reset()
	p.documentStats.Clear()
	p.payrolls.Reset()
	p.reviews.Reset()
	p.dashboard.Clear()
}
