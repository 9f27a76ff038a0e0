package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itchan-dev/ohqueue/internal/router"
	"github.com/itchan-dev/ohqueue/internal/setup"
	"github.com/itchan-dev/ohqueue/shared/config"
	"github.com/itchan-dev/ohqueue/shared/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Cleanup()

	server := configureServer(cfg.Public, router.New(deps))

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Info("starting server", "addr", server.Addr, "storage", cfg.Public.Storage.Driver)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", "error", err)
	}
}

func configureServer(public config.Public, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + public.Port,
		Handler:      handler,
		ReadTimeout:  public.ReadTimeout,
		WriteTimeout: public.WriteTimeout,
	}
}
