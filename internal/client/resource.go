package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"hrportal/internal/platform/httpclient"
)

// Endpoint describes where a resource lives on the backend.
type Endpoint struct {
	Name         string
	Path         string
	UpdateMethod string
}

var (
	Auth        = Endpoint{Name: "auth", Path: "auth", UpdateMethod: http.MethodPut}
	Employees   = Endpoint{Name: "employees", Path: "employees", UpdateMethod: http.MethodPut}
	Leaves      = Endpoint{Name: "leaves", Path: "leaves", UpdateMethod: http.MethodPut}
	Attendance  = Endpoint{Name: "attendance", Path: "attendance", UpdateMethod: http.MethodPut}
	Documents   = Endpoint{Name: "documents", Path: "documents", UpdateMethod: http.MethodPatch}
	Payrolls    = Endpoint{Name: "payrolls", Path: "payrolls", UpdateMethod: http.MethodPut}
	Performance = Endpoint{Name: "performance", Path: "performance", UpdateMethod: http.MethodPatch}
	Dashboard   = Endpoint{Name: "dashboard", Path: "dashboard", UpdateMethod: http.MethodPut}
)

// Caller is the transport a resource client sends through.
type Caller interface {
	Do(ctx context.Context, cred httpclient.Credential, req httpclient.Request, out any) error
}

// Resource is a typed client for one endpoint. Every method takes the
// credential explicitly.
type Resource[T any] struct {
	caller   Caller
	endpoint Endpoint
}

func NewResource[T any](caller Caller, endpoint Endpoint) *Resource[T] {
	if endpoint.UpdateMethod == "" {
		endpoint.UpdateMethod = http.MethodPut
	}
	return &Resource[T]{caller: caller, endpoint: endpoint}
}

func (r *Resource[T]) Endpoint() Endpoint {
	return r.endpoint
}

func (r *Resource[T]) List(ctx context.Context, cred httpclient.Credential, query url.Values) ([]T, error) {
	return r.ListAt(ctx, cred, "", query)
}

// ListAt lists a sub-collection such as "my-leaves" or "employee/{id}".
func (r *Resource[T]) ListAt(ctx context.Context, cred httpclient.Credential, subpath string, query url.Values) ([]T, error) {
	var out []T
	err := r.caller.Do(ctx, cred, httpclient.Request{
		Method: http.MethodGet,
		Path:   r.path(subpath),
		Query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T]) Get(ctx context.Context, cred httpclient.Credential, id string) (T, error) {
	return r.Do(ctx, cred, http.MethodGet, url.PathEscape(id), nil)
}

func (r *Resource[T]) Create(ctx context.Context, cred httpclient.Credential, payload any) (T, error) {
	return r.Do(ctx, cred, http.MethodPost, "", payload)
}

func (r *Resource[T]) Update(ctx context.Context, cred httpclient.Credential, id string, payload any) (T, error) {
	return r.Do(ctx, cred, r.endpoint.UpdateMethod, url.PathEscape(id), payload)
}

func (r *Resource[T]) Delete(ctx context.Context, cred httpclient.Credential, id string) error {
	return r.caller.Do(ctx, cred, httpclient.Request{
		Method: http.MethodDelete,
		Path:   r.path(url.PathEscape(id)),
	}, nil)
}

// Do runs a domain action (status change, verify, check-in) and decodes the
// record it returns.
func (r *Resource[T]) Do(ctx context.Context, cred httpclient.Credential, method, subpath string, payload any) (T, error) {
	var out T
	err := r.caller.Do(ctx, cred, httpclient.Request{
		Method: method,
		Path:   r.path(subpath),
		Body:   payload,
	}, &out)
	return out, err
}

func (r *Resource[T]) Upload(ctx context.Context, cred httpclient.Credential, subpath string, form *httpclient.Multipart) (T, error) {
	return r.UploadWith(ctx, cred, http.MethodPost, subpath, form)
}

// UploadWith sends a multipart form with an explicit method, e.g. a PUT that
// replaces a profile picture.
func (r *Resource[T]) UploadWith(ctx context.Context, cred httpclient.Credential, method, subpath string, form *httpclient.Multipart) (T, error) {
	var out T
	err := r.caller.Do(ctx, cred, httpclient.Request{
		Method: method,
		Path:   r.path(subpath),
		Form:   form,
	}, &out)
	return out, err
}

func (r *Resource[T]) path(subpath string) string {
	subpath = strings.Trim(subpath, "/")
	if subpath == "" {
		return r.endpoint.Path
	}
	return r.endpoint.Path + "/" + subpath
}

// Call fetches a payload that is not the resource's record type, e.g. stats.
func Call[V any](ctx context.Context, caller Caller, cred httpclient.Credential, method, path string, query url.Values, payload any) (V, error) {
	var out V
	err := caller.Do(ctx, cred, httpclient.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   payload,
	}, &out)
	return out, err
}
