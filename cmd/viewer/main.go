// Package main is the entry point for the Terra heightmap viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terra/internal/config"
	"github.com/Faultbox/terra/internal/game"
	"github.com/Faultbox/terra/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := initLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Terra Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func initLogger(cfg config.LoggingConfig) error {
	if cfg.LogFile == "" {
		return logger.Init(cfg.Level, "")
	}
	fileCfg := logger.DefaultFileConfig(cfg.LogFile)
	fileCfg.JSON = cfg.JSON
	return logger.InitWithFileConfig(cfg.Level, fileCfg, true)
}
