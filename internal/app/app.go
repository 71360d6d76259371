package app

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"confstore/internal/adapter/retention"
	"confstore/internal/config"
	"confstore/internal/platform/logger"
	"confstore/internal/platform/store"
)

// App wires the error/logging core's host: sink configuration, the audit
// store with its retention janitor and the metrics endpoint.
type App struct {
	cfg config.Config
}

// New loads configuration and applies the sink thresholds.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.SetSyslogFile(cfg.Log.File)
	logger.SetStderr(logger.ParseLevel(cfg.Log.StderrLevel))
	logger.SetSyslog(logger.ParseLevel(cfg.Log.SyslogLevel))

	return &App{cfg: cfg}, nil
}

// Run starts the host and blocks until the process is signalled.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.cfg.Audit.Enabled {
		st, err := store.Open(ctx, a.cfg.Audit.DB, a.cfg.Audit.Migrations)
		if err != nil {
			return err
		}
		defer func() {
			_ = st.Close()
		}()

		jan, err := retention.New(st, a.cfg.Audit.RetentionSchedule, a.cfg.Audit.RetentionMaxAge)
		if err != nil {
			return err
		}
		jan.Start()
		defer jan.Stop()
		logger.Logf(logger.LevelInfo, "Audit store open at %q, retention %s.", a.cfg.Audit.DB, a.cfg.Audit.RetentionMaxAge)
	}

	if a.cfg.Metrics.Addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Logf(logger.LevelWarning, "Metrics server failed (%v).", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Logf(logger.LevelInfo, "confstore logging core started.")
	<-ctx.Done()
	return nil
}
