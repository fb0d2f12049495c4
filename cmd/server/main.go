package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/vncsmyrnk/schoolvote/docs"
	"github.com/vncsmyrnk/schoolvote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/schoolvote/internal/app"
	"github.com/vncsmyrnk/schoolvote/internal/config"
	"github.com/vncsmyrnk/schoolvote/internal/core/ports"
)

// @title                       School Vote API
// @version                     1.0
// @description                 Ballot casting and tallying for student elections.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load("server", os.Args[1:], os.Environ())
	if err != nil {
		log.Fatal(err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	level, _ := cfg.SlogLevel()
	logger := app.NewLogger(os.Stdout, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	module, closeStorage, err := app.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStorage()

	handler := http.NewHandler(http.Handlers{
		Elections: http.NewElectionHandler(module.Service),
		Votes:     http.NewVoteHandler(module.Service),
		Results:   http.NewResultsHandler(module.Service),
		Auth:      http.NewAuthenticator(cfg.JWTSecret),
	})
	server := &stdhttp.Server{Addr: cfg.Addr(), Handler: handler}

	if cfg.CloseOnSchedule {
		go closeOnSchedule(ctx, module.Schedule, cfg.CloseInterval, logger)
	}

	go func() {
		logger.Info("server listening", "addr", cfg.Addr(), "database", cfg.DatabaseType)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func closeOnSchedule(ctx context.Context, schedule ports.ScheduleService, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed, err := schedule.CloseExpired(ctx)
			if err != nil {
				logger.Error("closing expired elections failed", "error", err)
			}
			if closed > 0 {
				logger.Info("closed expired elections", "count", closed)
			}
		}
	}
}
