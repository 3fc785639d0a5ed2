package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/nyc-schools/internal/app"
	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "schools: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	listOnly := flag.Bool("list", false, "print the school directory and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI; logs go to a file.
	if _, err := logger.InitFile(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log := logger.For(logger.CategoryViewCycle)
	log.InfoObj("schools browser starting", "config", map[string]any{
		"api_host":            cfg.APIHost,
		"reachability_target": cfg.ReachabilityTarget,
		"log_file":            cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	browser, err := app.NewBrowser(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize browser", "error", err.Error())
		return err
	}
	if *listOnly {
		return browser.List(ctx, os.Stdout)
	}
	if err := browser.Run(ctx); err != nil {
		return fmt.Errorf("browser run: %w", err)
	}
	return nil
}
