package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"fundwatch/internal/config"
	"fundwatch/internal/logger"
	"fundwatch/internal/monitor"
	"fundwatch/internal/notifier"
)

// Exit codes. Configuration problems and run failures are kept
// distinct so the external scheduler can tell them apart.
const (
	exitOK         = 0
	exitConfigErr  = 1
	exitRunFailure = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := ParseFlags()

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile)
	if err != nil {
		log.Printf("[FATAL] Could not load config using path '%s': %v", flags.ConfigFile, err)
		return exitConfigErr
	}

	// Command-line flags take precedence over the config file.
	if flags.SourceURL != "" {
		gCfg.SourceConfig.URL = flags.SourceURL
	}
	if flags.StateFile != "" {
		gCfg.MonitorConfig.StateFile = flags.StateFile
	}
	gCfg.NotificationConfig.MergeEnvironment()

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Printf("[FATAL] Could not initialize logger: %v", err)
		return exitConfigErr
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Error().Err(err).Msg("Configuration validation failed")
		return exitConfigErr
	}

	var sink monitor.Notifier
	if flags.DryRun {
		sink = monitor.NewDryRunNotifier(zLogger)
	} else {
		// Credentials are required before any network call is made.
		if err := gCfg.NotificationConfig.EnsureCredentials(); err != nil {
			zLogger.Error().Err(err).Msg("Missing notifier credentials")
			return exitConfigErr
		}
		sink = notifier.NewTelegramNotifier(&gCfg.NotificationConfig, zLogger)
	}

	service, err := monitor.NewService(gCfg, sink, zLogger, monitor.ServiceOptions{DryRun: flags.DryRun})
	if err != nil {
		zLogger.Error().Err(err).Msg("Could not construct monitor service")
		return exitConfigErr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zLogger.Info().Str("source", gCfg.SourceConfig.URL).Bool("dry_run", flags.DryRun).Msg("Starting monitor run")
	if err := service.Run(ctx); err != nil {
		zLogger.Error().Err(err).Msg("Monitor run failed")
		fmt.Fprintf(os.Stderr, "fundwatch: run failed: %v\n", err)
		return exitRunFailure
	}

	zLogger.Info().Msg("Monitor run completed")
	return exitOK
}
