package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"hrportal/internal/platform/metrics"
	"hrportal/internal/transport/http/api"
)

const maxErrorBody = 64 << 10

// Doer sends one HTTP request. *http.Client satisfies it, as does the mock
// data source.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Credential is passed into every call. An empty token sends no
// Authorization header.
type Credential struct {
	Token string
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Form   *Multipart
}

type Client struct {
	baseURL        string
	doer           Doer
	onUnauthorized func()
	metrics        *metrics.Collector
	logger         *slog.Logger
}

type Option func(*Client)

// WithUnauthorizedHandler runs fn whenever an authenticated call comes back 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(baseURL string, doer Doer, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler replaces the 401 hook after construction.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Do sends req and decodes the envelope's data into out (which may be nil).
// It never retries.
func (c *Client) Do(ctx context.Context, cred Credential, req Request, out any) error {
	httpReq, err := c.build(ctx, cred, req)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.doer.Do(httpReq)
	resource := resourceLabel(req.Path)
	if err != nil {
		c.metrics.Record(resource, 0, time.Since(start))
		c.logger.Debug("backend unreachable", "method", req.Method, "path", req.Path, "err", err)
		return &RequestError{Message: MessageUnreachable, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.Record(resource, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		reqErr := decodeFailure(resp)
		if resp.StatusCode == http.StatusUnauthorized && cred.Token != "" && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return reqErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	var env api.RawEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &RequestError{Status: resp.StatusCode, Message: MessageFailed, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &RequestError{Status: resp.StatusCode, Message: MessageFailed, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

func (c *Client) build(ctx context.Context, cred Credential, req Request) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		buf, ct, err := req.Form.encode()
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(payload), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if cred.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+cred.Token)
	}
	return httpReq, nil
}

func decodeFailure(resp *http.Response) *RequestError {
	reqErr := &RequestError{Status: resp.StatusCode, Message: MessageFailed}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return reqErr
	}
	var env api.RawEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return reqErr
	}
	switch {
	case env.Error != nil && env.Error.Message != "":
		reqErr.Code = env.Error.Code
		reqErr.Message = env.Error.Message
	case env.Message != "":
		reqErr.Message = env.Message
	}
	return reqErr
}

func resourceLabel(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "root"
	}
	return path
}
