package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/QuangTrung1996/small100-chat-server/internal/app"
	"github.com/QuangTrung1996/small100-chat-server/internal/config"
	"github.com/QuangTrung1996/small100-chat-server/internal/log"
)

func main() {
	var (
		configPath string
		overrides  config.Config
	)

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flag.DurationVar(&overrides.ReadHeaderTimeout, "read-header-timeout", 0, "HTTP read header timeout")
	flag.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")
	flag.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.Parse()

	bootLogger := log.New("info")

	cfg, configFile, err := config.Load(bootLogger, configPath)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.UpdateFrom(overrides)

	logger := log.New(cfg.LogLevel)
	logger.Info().Str("config", configFile).Str("addr", cfg.Addr).Msg("starting chat server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(&cfg, logger)
	if err := application.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}
