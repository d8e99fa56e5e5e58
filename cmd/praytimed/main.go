package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thurmanmarka/praytime/internal/config"
	"github.com/thurmanmarka/praytime/internal/logging"
	"github.com/thurmanmarka/praytime/internal/server"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logging.Setup("info", "console", os.Stderr)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	gin.SetMode(gin.ReleaseMode)

	ev := log.Info().
		Str("addr", cfg.ServerAddress).
		Str("method", cfg.Calc.Method.String()).
		Str("asr", cfg.Calc.Asr.String()).
		Str("highlat", cfg.Calc.HighLat.String()).
		Str("tz", cfg.Location.String())
	if cfg.HasLocation {
		ev = ev.Float64("lat", cfg.Coordinates.Lat).Float64("lon", cfg.Coordinates.Lon)
	}
	ev.Msg("starting praytimed")

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           server.New(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
		return
	case <-ctx.Done():
		log.Info().Dur("grace", shutdownGrace).Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
