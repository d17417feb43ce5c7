package mockbackend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/document"
	"hrportal/internal/domain/leave"
	"hrportal/internal/transport/http/api"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, rate string) *httptest.Server {
	t.Helper()
	srv, err := New(Options{
		JWTSecret:  testSecret,
		AuthRate:   rate,
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return time.Date(2025, 9, 3, 8, 45, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, api.RawEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return send(t, req)
}

func send(t *testing.T, req *http.Request) (*http.Response, api.RawEnvelope) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	var env api.RawEnvelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
	}
	return resp, env
}

func login(t *testing.T, ts *httptest.Server, email string) auth.AuthResult {
	t.Helper()
	resp, env := call(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "password123"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var result auth.AuthResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode auth result: %v", err)
	}
	return result
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, "")

	result := login(t, ts, "hr@hrportal.local")
	if result.Token == "" || result.User.Role != auth.RoleHR {
		t.Fatalf("unexpected auth result: %+v", result)
	}
	claims, err := auth.ParseToken(testSecret, result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("expected uid %s, got %s", result.User.ID, claims.UserID)
	}

	resp, env := call(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "hr@hrportal.local", "password": "bad"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Message != "Invalid email or password" {
		t.Fatalf("unexpected error: %+v", env.Error)
	}
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t, "")

	resp, env := call(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "nope", "password": "123"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("unexpected error: %+v", env.Error)
	}

	resp, _ = call(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"firstName": "Mia", "lastName": "Chen", "email": "mia@hrportal.local", "password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestProtectedRoutes(t *testing.T) {
	ts := newTestServer(t, "")
	employeeToken := login(t, ts, "employee@hrportal.local").Token

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{name: "no token", method: http.MethodGet, path: "/api/leaves/my-leaves", want: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodGet, path: "/api/leaves/my-leaves", token: "garbage", want: http.StatusUnauthorized},
		{name: "own leaves", method: http.MethodGet, path: "/api/leaves/my-leaves", token: employeeToken, want: http.StatusOK},
		{name: "all leaves needs hr", method: http.MethodGet, path: "/api/leaves", token: employeeToken, want: http.StatusForbidden},
		{name: "payroll run needs hr", method: http.MethodPost, path: "/api/payrolls", token: employeeToken, want: http.StatusForbidden},
		{name: "dashboard", method: http.MethodGet, path: "/api/dashboard/stats", token: employeeToken, want: http.StatusOK},
		{name: "missing employee", method: http.MethodGet, path: "/api/employees/emp-404", token: employeeToken, want: http.StatusNotFound},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := call(t, ts, tc.method, tc.path, tc.token, nil)
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestLeaveApproval(t *testing.T) {
	ts := newTestServer(t, "")
	employeeToken := login(t, ts, "employee@hrportal.local").Token
	hrToken := login(t, ts, "hr@hrportal.local").Token

	resp, env := call(t, ts, http.MethodPost, "/api/leaves", employeeToken, leave.Request{
		LeaveType: "personal", StartDate: "2025-09-10", EndDate: "2025-09-11", Reason: "Moving",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created leave.Leave
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode leave: %v", err)
	}

	resp, env = call(t, ts, http.MethodPut, "/api/leaves/"+created.ID+"/status", hrToken, leave.StatusChange{Status: leave.StatusApproved})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var approved leave.Leave
	_ = json.Unmarshal(env.Data, &approved)
	if approved.Status != leave.StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	resp, env = call(t, ts, http.MethodDelete, "/api/leaves/lv-404", hrToken, nil)
	if resp.StatusCode != http.StatusNotFound || env.Error.Message != "Leave request not found" {
		t.Fatalf("unexpected delete response: %d %+v", resp.StatusCode, env.Error)
	}
}

func multipartRequest(t *testing.T, method, url, token, field, fileName, contentType string, size int, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, fileName))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	_, _ = part.Write(bytes.Repeat([]byte{'x'}, size))
	_ = mw.Close()

	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestDocumentUpload(t *testing.T) {
	ts := newTestServer(t, "")
	token := login(t, ts, "employee@hrportal.local").Token

	req := multipartRequest(t, http.MethodPost, ts.URL+"/api/documents", token, "file", "id.pdf", "application/pdf", 2048,
		map[string]string{"title": "ID card", "category": "Forms"})
	resp, env := send(t, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%+v)", resp.StatusCode, env.Error)
	}
	var doc document.Document
	if err := json.Unmarshal(env.Data, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc.FileName != "id.pdf" || doc.FileSize != 2048 || doc.Status != document.StatusPending {
		t.Fatalf("unexpected document: %+v", doc)
	}

	resp, env = call(t, ts, http.MethodGet, "/api/documents/stats/overview", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var stats document.Stats
	_ = json.Unmarshal(env.Data, &stats)
	if stats.Total != 2 {
		t.Fatalf("expected 2 documents, got %d", stats.Total)
	}
}

func TestProfileAvatar(t *testing.T) {
	ts := newTestServer(t, "")
	token := login(t, ts, "employee@hrportal.local").Token

	tests := []struct {
		name        string
		contentType string
		size        int
		want        int
	}{
		{name: "image accepted", contentType: "image/png", size: 1024, want: http.StatusOK},
		{name: "not an image", contentType: "application/pdf", size: 1024, want: http.StatusBadRequest},
		{name: "exactly two megabytes", contentType: "image/png", size: 2 << 20, want: http.StatusBadRequest},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := multipartRequest(t, http.MethodPut, ts.URL+"/api/auth/profile", token, "avatar", "me.png", tc.contentType, tc.size, nil)
			resp, env := send(t, req)
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d (%+v)", tc.want, resp.StatusCode, env.Error)
			}
			if tc.want == http.StatusOK {
				var user auth.User
				_ = json.Unmarshal(env.Data, &user)
				if user.ProfileImage == "" {
					t.Fatal("expected profile image to be set")
				}
			}
		})
	}
}

func TestAuthRateLimit(t *testing.T) {
	ts := newTestServer(t, "2-M")

	for i := 0; i < 2; i++ {
		resp, _ := call(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "hr@hrportal.local", "password": "bad"})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, resp.StatusCode)
		}
	}
	resp, env := call(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "hr@hrportal.local", "password": "bad"})
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != "rate_limited" {
		t.Fatalf("unexpected error: %+v", env.Error)
	}
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected missing secret to fail")
	}
}
