// Package datasource picks where portal requests go: a real backend over
// HTTP, or the in-process mock backend.
package datasource

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"hrportal/internal/mockbackend"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/httpclient"
)

// Source is selected once at startup and handed to the HTTP client.
type Source interface {
	Doer() httpclient.Doer
	Name() string
	Close() error
}

// Open builds the source named by cfg.DataSource.
func Open(cfg config.Config, logger *slog.Logger) (Source, error) {
	switch cfg.DataSource {
	case config.SourceLive:
		return NewLive(cfg.HTTPTimeout), nil
	case config.SourceMock:
		return NewMock(mockbackend.Options{
			JWTSecret:      cfg.JWTSecret,
			TokenTTL:       cfg.TokenTTL,
			AuthRate:       cfg.AuthRate,
			MaxUploadBytes: cfg.MaxUploadBytes,
			Latency:        Jitter(cfg.MockLatency),
			Logger:         logger,
		})
	default:
		return nil, fmt.Errorf("datasource: unknown source %q", cfg.DataSource)
	}
}

type Live struct {
	client *http.Client
}

func NewLive(timeout time.Duration) *Live {
	return &Live{client: &http.Client{Timeout: timeout}}
}

func (l *Live) Doer() httpclient.Doer { return l.client }
func (l *Live) Name() string          { return config.SourceLive }

func (l *Live) Close() error {
	l.client.CloseIdleConnections()
	return nil
}

// Mock answers every request from the mock backend's router without
// touching the network.
type Mock struct {
	server *mockbackend.Server
	client *http.Client
}

func NewMock(opts mockbackend.Options) (*Mock, error) {
	server, err := mockbackend.New(opts)
	if err != nil {
		return nil, err
	}
	return &Mock{
		server: server,
		client: &http.Client{Transport: handlerTransport{handler: server.Handler()}},
	}, nil
}

func (m *Mock) Doer() httpclient.Doer { return m.client }
func (m *Mock) Name() string          { return config.SourceMock }
func (m *Mock) Close() error          { return nil }

// Backend exposes the in-memory server, mainly for tests.
func (m *Mock) Backend() *mockbackend.Server { return m.server }

type handlerTransport struct {
	handler http.Handler
}

func (t handlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	in := req.Clone(req.Context())
	in.RemoteAddr = "127.0.0.1:0"
	in.RequestURI = req.URL.RequestURI()
	if in.Body == nil {
		in.Body = http.NoBody
	}

	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, in)
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

// Jitter returns a delay function around base, varying by up to a third
// either way. A non-positive base disables the delay.
func Jitter(base time.Duration) func() time.Duration {
	if base <= 0 {
		return nil
	}
	var (
		mu  sync.Mutex
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	)
	spread := int64(base / 3)
	return func() time.Duration {
		if spread == 0 {
			return base
		}
		mu.Lock()
		offset := rng.Int63n(2*spread+1) - spread
		mu.Unlock()
		return base + time.Duration(offset)
	}
}
