package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rajeshhitechvalley/Cfapp-sub001/configs"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/events"
	"github.com/rajeshhitechvalley/Cfapp-sub001/pkg/logger"
	"github.com/rajeshhitechvalley/Cfapp-sub001/routes"
	"github.com/rajeshhitechvalley/Cfapp-sub001/ws"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed the admin account and run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rootOpts)
		},
	}
}

func serve(ctx context.Context, opts *RootOptions) error {
	cfg, db, err := openDB(opts)
	if err != nil {
		return err
	}
	log := logger.New("pos", cfg.LogLevel)

	created, err := configs.SeedAdmin(db, cfg)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Info(ctx, "seed_admin", "admin account created", slog.String("email", cfg.AdminEmail))
	}
	if err := configs.SeedDefaults(db); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}

	broker, closer, err := events.NewBroker(cfg.Broker, cfg.BrokerURL)
	if err != nil {
		return err
	}
	defer closer.Close()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Publisher: events.Multi{hub, broker},
		Hub:       hub,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "serve", "server listening", slog.String("addr", srv.Addr), slog.String("broker", cfg.Broker))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info(shutdownCtx, "serve", "shutting down")
	return srv.Shutdown(shutdownCtx)
}
