package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/internal/export"
	"github.com/samvad-hq/nyc-schools/internal/logger"
	"github.com/samvad-hq/nyc-schools/pkg/publishers"
)

// ExportOptions selects what a run exports and how often.
type ExportOptions struct {
	DBNs []string
	// Interval repeats the export until ctx is cancelled; zero runs once.
	Interval time.Duration
}

// Exporter joins schools with SAT scores and publishes them to the configured sinks.
type Exporter struct {
	cfg      *config.Config
	pipeline *Pipeline
	fanout   *publishers.Fanout
	service  *export.Service
	log      logger.Logger
}

// NewExporter builds the exporter runtime from config files.
func NewExporter(ctx context.Context, cfg *config.Config, log logger.Logger) (*Exporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{"id": pubCfg.ID, "type": pubCfg.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})

	pipeline := NewPipeline(cfg)
	service := export.NewService(pipeline.Client, export.Endpoints{
		Schools:   pipeline.Catalog.SchoolsEndpoint(),
		SATScores: pipeline.Catalog.SATScoresEndpoint(),
	}, fanout, export.Options{
		Source: cfg.AppName,
		Log:    log,
	})

	return &Exporter{
		cfg:      cfg,
		pipeline: pipeline,
		fanout:   fanout,
		service:  service,
		log:      log,
	}, nil
}

// Run exports once, or on every interval tick until ctx is cancelled. Publishers are
// closed on return.
func (e *Exporter) Run(ctx context.Context, opts ExportOptions) (export.Summary, error) {
	if e == nil || e.service == nil {
		return export.Summary{}, fmt.Errorf("exporter is not initialized")
	}
	defer e.closeFanout()

	e.pipeline.Start(ctx)
	defer e.pipeline.Stop()

	summary, err := e.service.Run(ctx, opts.DBNs)
	if opts.Interval <= 0 {
		return summary, err
	}
	if err != nil {
		e.log.ErrorObj("initial export failed", "error", err.Error())
	}

	e.log.InfoObj("export loop starting", "exporter_state", map[string]any{
		"publishers_count": e.fanout.Size(),
		"interval":         opts.Interval.String(),
	})
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.log.InfoObj("export loop exiting", "reason", ctx.Err().Error())
			return summary, nil
		case <-ticker.C:
			summary, err = e.service.Run(ctx, opts.DBNs)
			if err != nil && !errors.Is(err, context.Canceled) {
				e.log.ErrorObj("scheduled export failed", "error", err.Error())
			}
		}
	}
}

func (e *Exporter) closeFanout() {
	if err := e.fanout.Close(); err != nil {
		e.log.ErrorObj("publisher close failed", "error", err.Error())
	}
}
