package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexjean/devify/internal/analytics"
	"github.com/alexjean/devify/internal/catalog"
	"github.com/alexjean/devify/internal/config"
	"github.com/alexjean/devify/internal/contact"
	"github.com/alexjean/devify/internal/metrics"
	"github.com/alexjean/devify/internal/server"
	"github.com/alexjean/devify/internal/sqlite"
	"github.com/alexjean/devify/internal/tracker"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	sweepInterval   = time.Minute
	cleanupInterval = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the portfolio web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, ctx.logger)
		},
	}
}

// storage is the backing store chosen by db.driver.
type storage struct {
	store     tracker.Store
	analytics *analytics.Service
	close     func() error
}

func openStorage(ctx context.Context, cfg config.Config, cat *catalog.Catalog, logger *zap.Logger) (*storage, error) {
	if cfg.DB.Driver == config.StorageMemory {
		logger.Info("Using in-memory storage; history and analytics are not persisted")
		return &storage{store: tracker.NewMemoryStore(), close: func() error { return nil }}, nil
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	svc, err := analytics.NewService(sqlite.NewAnalyticsRepository(db), cat, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Privacy: visitor tracking enabled with hashed IP addresses",
		zap.String("db", cfg.DB.Path))
	return &storage{store: sqlite.NewKVStore(db), analytics: svc, close: db.Close}, nil
}

func runServe(parent context.Context, cfg config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cat := catalog.Default()
	st, err := openStorage(ctx, cfg, cat, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer st.close()

	gen, synth, err := newAI(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Catalog:   cat,
		Store:     st.store,
		Generator: gen,
		Synth:     synth,
		Analytics: st.analytics,
		Mailer: contact.NewMailer(contact.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			To:       cfg.SMTP.To,
		}, nil, logger),
		Metrics:     metrics.New(),
		Logger:      logger,
		AITimeout:   cfg.AI.Timeout,
		Voice:       cfg.AI.Voice,
		IdleTimeout: cfg.Sessions.IdleTimeout,
		Admin: server.AdminCredentials{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		},
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return srv.Listeners().Run(gctx, sweepInterval)
	})
	if st.analytics != nil {
		g.Go(func() error {
			return runCleanup(gctx, st.analytics)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// runCleanup applies the retention policy on start and then daily.
func runCleanup(ctx context.Context, svc *analytics.Service) error {
	_ = svc.Cleanup(ctx)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = svc.Cleanup(ctx)
		}
	}
}
