package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"hrportal/internal/platform/httpclient"
)

type recordingCaller struct {
	calls []httpclient.Request
	creds []httpclient.Credential
	reply func(req httpclient.Request, out any)
}

func (c *recordingCaller) Do(_ context.Context, cred httpclient.Credential, req httpclient.Request, out any) error {
	c.calls = append(c.calls, req)
	c.creds = append(c.creds, cred)
	if c.reply != nil && out != nil {
		c.reply(req, out)
	}
	return nil
}

type widget struct {
	ID string `json:"id"`
}

func TestResourcePaths(t *testing.T) {
	caller := &recordingCaller{}
	r := NewResource[widget](caller, Documents)
	cred := httpclient.Credential{Token: "t"}
	ctx := context.Background()

	_, _ = r.List(ctx, cred, url.Values{"status": {"pending"}})
	_, _ = r.ListAt(ctx, cred, "my-documents", nil)
	_, _ = r.Get(ctx, cred, "d1")
	_, _ = r.Create(ctx, cred, map[string]string{"title": "x"})
	_, _ = r.Update(ctx, cred, "d1", map[string]string{"title": "y"})
	_ = r.Delete(ctx, cred, "d1")
	_, _ = r.Do(ctx, cred, http.MethodPost, "d1/verify", nil)
	_, _ = r.Upload(ctx, cred, "", &httpclient.Multipart{})

	want := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "documents"},
		{http.MethodGet, "documents/my-documents"},
		{http.MethodGet, "documents/d1"},
		{http.MethodPost, "documents"},
		{http.MethodPatch, "documents/d1"},
		{http.MethodDelete, "documents/d1"},
		{http.MethodPost, "documents/d1/verify"},
		{http.MethodPost, "documents"},
	}
	if len(caller.calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(caller.calls))
	}
	for i, w := range want {
		got := caller.calls[i]
		if got.Method != w.method || got.Path != w.path {
			t.Fatalf("call %d: expected %s %s, got %s %s", i, w.method, w.path, got.Method, got.Path)
		}
		if caller.creds[i].Token != "t" {
			t.Fatalf("call %d: credential not forwarded", i)
		}
	}
	if caller.calls[0].Query.Get("status") != "pending" {
		t.Fatal("query not forwarded")
	}
	if caller.calls[7].Form == nil {
		t.Fatal("upload should send a multipart form")
	}
}

func TestListNeverNil(t *testing.T) {
	r := NewResource[widget](&recordingCaller{}, Leaves)
	items, err := r.List(context.Background(), httpclient.Credential{}, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty slice, got %#v", items)
	}
}

func TestUpdateDefaultsToPut(t *testing.T) {
	caller := &recordingCaller{}
	r := NewResource[widget](caller, Endpoint{Name: "x", Path: "x"})
	_, _ = r.Update(context.Background(), httpclient.Credential{}, "1", nil)
	if caller.calls[0].Method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", caller.calls[0].Method)
	}
}

func TestCall(t *testing.T) {
	caller := &recordingCaller{reply: func(_ httpclient.Request, out any) {
		*(out.(*map[string]int)) = map[string]int{"total": 3}
	}}
	got, err := Call[map[string]int](context.Background(), caller, httpclient.Credential{}, http.MethodGet, "documents/stats/overview", nil, nil)
	if err != nil || got["total"] != 3 {
		t.Fatalf("unexpected result %v %v", got, err)
	}
}
