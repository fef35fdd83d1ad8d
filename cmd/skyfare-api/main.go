// README: Entry point; loads config, wires services, starts the HTTP API with graceful shutdown.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"skyfare/internal/app"
	"skyfare/internal/config"
	httptransport "skyfare/internal/http"
	"skyfare/internal/infra"
)

func main() {
	configPath := flag.String("config", "", "path to skyfare.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	infra.SetupLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg)
	if err != nil {
		slog.Error("failed to wire services", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Aircraft: a.Selector,
		Flights:  a.Flights,
		Pricer:   a.Pricing,
		Tickets:  a.Tickets,
		Settings: a.Settings,
	})
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("skyfare api listening", "addr", cfg.HTTP.Addr, "store", cfg.Store, "settings", cfg.Pricing.SettingsSource, "backends", a.Describe())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("skyfare api stopped")
}
