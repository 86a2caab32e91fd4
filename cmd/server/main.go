package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/api/handler"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/api/router"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/app"
	"github.com/suplidoraindustrial6s-lab/caritas-app/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	// 1. config, logger, database, redis, services
	a, err := app.Open(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	cfg, logger := a.Config, a.Logger
	logger.Info("starting caritas server",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("redis", a.Redis != nil),
	)

	// 2. optional automatic day close
	var sched *scheduler.Scheduler
	if cfg.Feature.AutoCloseEnabled {
		sched = scheduler.NewScheduler(cfg.Feature.AutoCloseCron, cfg.Schedule.Location(), a.Service.Schedule, a.Service.ServiceDay, logger)
		if err := sched.Start(); err != nil {
			logger.Fatal("scheduler start failed", zap.Error(err))
		}
	}

	// 3. routes
	engine := router.Setup(cfg, handler.NewHandler(a.Service), a.Redis, logger)

	// 4. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
}
