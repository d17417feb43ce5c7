package session

import (
	"context"

	"hrportal/internal/domain/auth"
)

// Decision is what a view does after consulting a guard. Pending means a
// profile fetch is still running and nothing should render yet.
type Decision struct {
	Allow    bool
	Pending  bool
	Redirect Redirect
}

var allow = Decision{Allow: true}

type Guard interface {
	Check(ctx context.Context) Decision
}

// RouteGuard gates a whole route on login and, when Roles is non-empty, on
// the caller's role. A wrong role goes back to the dashboard.
type RouteGuard struct {
	Session *Manager
	Roles   []auth.Role
}

func (g RouteGuard) Check(context.Context) Decision {
	s, ok := g.Session.Current()
	if !ok {
		return Decision{Redirect: RedirectLogin}
	}
	if len(g.Roles) == 0 {
		return allow
	}
	for _, role := range g.Roles {
		if s.Role == role {
			return allow
		}
	}
	return Decision{Redirect: RedirectDashboard}
}

// ProtectedGuard only requires a login. When the session is not yet
// authenticated it runs Refresh once (normally a profile fetch for a
// restored token) before deciding.
type ProtectedGuard struct {
	Session *Manager
	Refresh func(ctx context.Context) error
}

func (g ProtectedGuard) Check(ctx context.Context) Decision {
	if g.Session.IsAuthenticated() {
		return allow
	}
	if g.Session.Loading() {
		return Decision{Pending: true}
	}
	if g.Refresh != nil && g.Session.HasToken() {
		_ = g.Refresh(ctx)
		if g.Session.IsAuthenticated() {
			return allow
		}
	}
	return Decision{Redirect: RedirectLogin}
}

// GuestGuard fronts the login and register views: anyone already signed in
// is sent to the dashboard.
type GuestGuard struct {
	Session *Manager
}

func (g GuestGuard) Check(context.Context) Decision {
	if g.Session.IsAuthenticated() {
		return Decision{Redirect: RedirectDashboard}
	}
	return allow
}
