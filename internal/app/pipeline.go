package app

import (
	"context"
	"time"

	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/internal/logger"
	"github.com/samvad-hq/nyc-schools/internal/nycopendata"
	"github.com/samvad-hq/nyc-schools/pkg/httpclient"
	"github.com/samvad-hq/nyc-schools/pkg/network"
)

// Pipeline bundles the reachability monitor, request pipeline and endpoint catalog
// shared by both binaries.
type Pipeline struct {
	Monitor *network.Monitor
	Client  *network.Client
	Catalog *nycopendata.Catalog

	wait time.Duration
	log  logger.Logger
}

// NewPipeline builds the networking stack from config.
func NewPipeline(cfg *config.Config) *Pipeline {
	netLog := logger.For(logger.CategoryNetworking)

	prober := network.NewDialProber(cfg.ReachabilityTarget, cfg.ReachabilityTimeout, cfg.MeteredInterfaces)
	monitor := network.NewMonitor(prober,
		network.WithMonitorInterval(cfg.ReachabilityInterval),
		network.WithMonitorLogger(netLog),
	)

	transport := httpclient.NewRestyClient(httpclient.Options{
		Timeout:   cfg.RequestTimeout,
		UserAgent: cfg.UserAgent,
	})
	client := network.NewClient(transport, monitor,
		network.WithLogger(netLog),
		network.WithAttempts(cfg.RequestAttempts),
	)

	return &Pipeline{
		Monitor: monitor,
		Client:  client,
		Catalog: nycopendata.NewCatalog(cfg),
		wait:    cfg.ReachabilityWait,
		log:     netLog,
	}
}

// Start launches the monitor and waits up to the configured time for its first update,
// so the first request is not rejected only because no probe has completed yet.
func (p *Pipeline) Start(ctx context.Context) {
	p.Monitor.Start(ctx)
	if p.wait <= 0 {
		return
	}

	timer := time.NewTimer(p.wait)
	defer timer.Stop()
	select {
	case <-p.Monitor.Ready():
	case <-timer.C:
		p.log.WarnObj("no reachability update yet; continuing", "reachability_wait", map[string]any{
			"waited_ms": p.wait.Milliseconds(),
		})
	case <-ctx.Done():
	}
}

// Stop halts the monitor.
func (p *Pipeline) Stop() {
	p.Monitor.Stop()
}
