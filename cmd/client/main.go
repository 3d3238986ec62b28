// Package main is the entry point for the Snowtrack client.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/snowtrack/internal/client"
	"github.com/Faultbox/snowtrack/internal/config"
	"github.com/Faultbox/snowtrack/internal/logger"
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
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Snowtrack ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	// Create and run game
	c, err := client.New(cfg)
	if err != nil {
		logger.Error("failed to create client", zap.Error(err))
		os.Exit(1)
	}
	defer c.Close()

	// Run the game loop
	if err := c.Run(); err != nil {
		logger.Error("game error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("game closed normally")
}
