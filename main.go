package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/darwin-mfc/clinical-api/catalog"
	"github.com/darwin-mfc/clinical-api/config"
	"github.com/darwin-mfc/clinical-api/data"
	"github.com/darwin-mfc/clinical-api/handlers"
	"github.com/darwin-mfc/clinical-api/health"
	"github.com/darwin-mfc/clinical-api/logging"
	"github.com/darwin-mfc/clinical-api/scheduler"
	"github.com/darwin-mfc/clinical-api/server"
	"github.com/darwin-mfc/clinical-api/validation"
	"github.com/joho/godotenv"
)

func init() {
	// Read env variables from the working directory, falling back to the
	// executable directory when launched from elsewhere.
	if err := godotenv.Load(); err != nil {
		ex, err := os.Executable()
		if err != nil {
			logging.Error("Failed to get executable path", "error", err)
			os.Exit(1)
		}
		if err := os.Chdir(filepath.Dir(ex)); err != nil {
			logging.Error("Failed to change directory", "error", err)
			os.Exit(1)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions("logs", cfg.LogRetentionWeeks, cfg.MaxLogFileSize)
	defer logging.Shutdown()

	container := data.NewContainer()
	container.SetServerStartTime(time.Now())

	validator := validation.NewValidator()
	loader := catalog.NewLoader(cfg.DataDir)

	sched := scheduler.NewContentScheduler(container, loader, validator)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start content scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	handler := handlers.NewHandler(container, validator, cfg.DefaultPageSize, cfg.MaxPageSize)
	checker := health.NewChecker(container)
	srv := server.NewServer(cfg, handler, checker)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
	}
}
