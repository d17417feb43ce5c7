// Package app wires configuration, the session, the data source and the
// portal into one value the command line drives.
package app

import (
	"fmt"
	"io"
	"log/slog"

	"hrportal/internal/datasource"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/crypto"
	"hrportal/internal/platform/httpclient"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/portal"
	"hrportal/internal/session"
	"hrportal/internal/store"
	"hrportal/internal/validation"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Source  datasource.Source
	Session *session.Manager
	Portal  *portal.Portal
}

// NewLogger builds the text logger every binary writes to stderr.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	sealer, err := crypto.New(cfg.TokenKey)
	if err != nil {
		return nil, fmt.Errorf("token key: %w", err)
	}
	policy, err := store.ParsePolicy(cfg.ApplyPolicy)
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager(session.NewFileTokenStore(cfg.TokenFile(), sealer), logger)
	src, err := datasource.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	collector := metrics.New(cfg.MetricsNamespace)
	hc := httpclient.New(cfg.BaseURL(), src.Doer(),
		httpclient.WithUnauthorizedHandler(mgr.HandleUnauthorized),
		httpclient.WithMetrics(collector),
		httpclient.WithLogger(logger),
	)

	logger.Debug("portal ready", "source", src.Name(), "baseURL", cfg.BaseURL(), "policy", cfg.ApplyPolicy)
	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
		Source:  src,
		Session: mgr,
		Portal: portal.New(portal.Options{
			Session:     mgr,
			Caller:      hc,
			Policy:      policy,
			LeavePolicy: validation.LeavePolicy{RejectPastStart: cfg.LeaveRejectPast},
			Logger:      logger,
		}),
	}, nil
}

// Close releases the data source and logs a summary of backend calls.
func (a *App) Close() error {
	snap := a.Metrics.Snapshot()
	a.Logger.Debug("backend calls",
		"requests", snap["requestsTotal"],
		"errors", snap["errorsTotal"],
		"unauthorized", snap["unauthorizedTotal"],
		"avgMs", snap["avgDurationMs"],
	)
	return a.Source.Close()
}
