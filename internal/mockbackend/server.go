// Package mockbackend serves the portal's REST surface from seeded in-memory
// data. It backs the mock data source and cmd/mockserver.
package mockbackend

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"hrportal/internal/mockbackend/data"
	attendancehandler "hrportal/internal/transport/http/handlers/attendance"
	authhandler "hrportal/internal/transport/http/handlers/auth"
	dashboardhandler "hrportal/internal/transport/http/handlers/dashboard"
	documenthandler "hrportal/internal/transport/http/handlers/documents"
	employeehandler "hrportal/internal/transport/http/handlers/employees"
	leavehandler "hrportal/internal/transport/http/handlers/leave"
	payrollhandler "hrportal/internal/transport/http/handlers/payroll"
	performancehandler "hrportal/internal/transport/http/handlers/performance"
	"hrportal/internal/transport/http/middleware"
)

const (
	defaultUploadBytes = 10 << 20
	defaultTokenTTL    = 24 * time.Hour
)

type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AuthRate is a ulule formatted rate such as "10-M". Empty disables it.
	AuthRate       string
	MaxUploadBytes int64
	// Seed defaults to the embedded fixture when nil.
	Seed       *data.Seed
	Now        func() time.Time
	BcryptCost int
	NewID      func() string
	// Latency, when set, delays every request.
	Latency func() time.Duration
	Logger  *slog.Logger
}

type Server struct {
	Store  *data.Store
	router chi.Router
}

func New(opts Options) (*Server, error) {
	if opts.JWTSecret == "" {
		return nil, fmt.Errorf("mockbackend: jwt secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultUploadBytes
	}

	seed := opts.Seed
	if seed == nil {
		parsed, err := data.DefaultSeed()
		if err != nil {
			return nil, err
		}
		seed = &parsed
	}
	store, err := data.New(*seed, data.Options{Now: opts.Now, BcryptCost: opts.BcryptCost, NewID: opts.NewID})
	if err != nil {
		return nil, fmt.Errorf("mockbackend: load seed: %w", err)
	}

	var limit func(http.Handler) http.Handler
	if opts.AuthRate != "" {
		limit, err = middleware.RateLimit(opts.AuthRate)
		if err != nil {
			return nil, fmt.Errorf("mockbackend: auth rate %q: %w", opts.AuthRate, err)
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(opts.Logger))
	router.Use(chimw.Recoverer)
	if opts.Latency != nil {
		router.Use(middleware.Latency(opts.Latency))
	}
	// Multipart parts carry a little framing beyond the file itself.
	router.Use(middleware.BodyLimit(opts.MaxUploadBytes + 1<<20))

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(store, opts.JWTSecret, opts.TokenTTL, limit).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(opts.JWTSecret))
			employeehandler.NewHandler(store).RegisterRoutes(r)
			leavehandler.NewHandler(store).RegisterRoutes(r)
			attendancehandler.NewHandler(store).RegisterRoutes(r)
			documenthandler.NewHandler(store, opts.MaxUploadBytes).RegisterRoutes(r)
			payrollhandler.NewHandler(store).RegisterRoutes(r)
			performancehandler.NewHandler(store).RegisterRoutes(r)
			dashboardhandler.NewHandler(store).RegisterRoutes(r)
		})
	})

	return &Server{Store: store, router: router}, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}
