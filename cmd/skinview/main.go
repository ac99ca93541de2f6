// Package main is the entry point of the skin viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/config"
	"github.com/Faultbox/skinview/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWith(loggerOptions(cfg.Logging)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== skinview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to start viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

func loggerOptions(lc config.LoggingConfig) logger.Options {
	opts := logger.Options{Level: lc.Level, Console: os.Stdout}
	if lc.LogFile != "" {
		opts.File = logger.DefaultFileConfig(lc.LogFile)
		if lc.MaxSizeMB > 0 {
			opts.File.MaxSizeMB = lc.MaxSizeMB
		}
		if lc.MaxBackups > 0 {
			opts.File.MaxBackups = lc.MaxBackups
		}
		if lc.MaxAgeDays > 0 {
			opts.File.MaxAgeDays = lc.MaxAgeDays
		}
	}
	return opts
}
