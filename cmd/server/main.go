package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"hazard-curve-service/internal/adapters/cache"
	"hazard-curve-service/internal/api"
	"hazard-curve-service/internal/config"
)

// main is the application composition root.
// It wires the configured cache backend behind the Cache port and starts the HTTP server.
func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithField("error", err).Fatal("Failed to load configuration.")
	}

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info.")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	curveCache, closeCache, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		log.WithField("error", err).Fatal("Couldn't open curve cache.")
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.WithField("error", err).Warn("Closing curve cache failed.")
		}
	}()

	router := api.NewRouter(curveCache)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"addr": srv.Addr, "backend": cfg.Cache.Backend}).Info("Server listening.")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithField("error", err).Fatal("Server failed.")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err).Warn("Graceful shutdown failed.")
	}
}
