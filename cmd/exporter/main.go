package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samvad-hq/nyc-schools/internal/app"
	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "exporter failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbns := flag.String("dbn", "", "comma-separated school DBNs to export (default: all)")
	interval := flag.Duration("interval", 0, "repeat the export at this interval until interrupted (default: run once)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if _, err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log := logger.For(logger.CategoryBusinessLogic)
	log.InfoObj("exporter starting", "config", map[string]any{
		"api_host":        cfg.APIHost,
		"publishers_file": cfg.PublishersFile,
		"interval":        interval.String(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exporter, err := app.NewExporter(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize exporter", "error", err.Error())
		return err
	}

	summary, err := exporter.Run(ctx, app.ExportOptions{
		DBNs:     splitDBNs(*dbns),
		Interval: *interval,
	})
	if err != nil {
		return fmt.Errorf("exporter run: %w", err)
	}
	fmt.Printf("exported %d/%d schools (%d with SAT scores, %d failed) in %s\n",
		summary.Published, summary.Schools, summary.WithScores, summary.Failed, summary.Elapsed.Round(time.Millisecond))
	return nil
}

func splitDBNs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
