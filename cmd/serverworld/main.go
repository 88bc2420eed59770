// Package main is the entry point for the ServerWorld server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/serverworld/internal/config"
	"github.com/Faultbox/serverworld/internal/logger"
	"github.com/Faultbox/serverworld/internal/primitives"
	"github.com/Faultbox/serverworld/internal/realtime"
	"github.com/Faultbox/serverworld/internal/scene"
	"github.com/Faultbox/serverworld/internal/server"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== ServerWorld ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := scene.NewStore(logger.Named("scene"))
	if cfg.Server.SeedDemo {
		if err := store.SeedDemo(); err != nil {
			return fmt.Errorf("seed demo scene: %w", err)
		}
	}

	gen := primitives.NewGenerator(primitives.Limits{
		MaxSegments:     cfg.Generation.MaxSegments,
		MaxSubdivisions: cfg.Generation.MaxSubdivisions,
		MaxTerrainSize:  cfg.Generation.MaxTerrainSize,
		MaxParticles:    cfg.Generation.MaxParticles,
	}, cfg.Generation.Seed)

	hub := realtime.NewHub(realtime.Options{
		SendBuffer:      cfg.Server.SendBuffer,
		MonitorInterval: cfg.Monitor.Interval.Std(),
		MonitorServers:  cfg.Monitor.Servers,
	}, logger.Named("realtime"))

	srv, err := server.New(store, gen, hub, logger.Named("server"))
	if err != nil {
		return err
	}

	if path := config.ConfigPath(); path != "" {
		err := config.Watch(ctx, path, func(next *config.Config) {
			if err := logger.SetLevel(next.Logging.Level); err != nil {
				logger.Warn("ignoring log level", zap.Error(err))
				return
			}
			logger.Info("log level updated", zap.String("level", next.Logging.Level))
		})
		if err != nil {
			logger.Warn("config hot reload disabled", zap.Error(err))
		}
	}

	return srv.Run(ctx, server.Options{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout.Std(),
		WriteTimeout:    cfg.Server.WriteTimeout.Std(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
	})
}
