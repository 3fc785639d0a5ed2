// Package export joins the school directory with SAT results and publishes one event per school.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/nyc-schools/internal/domain"
	"github.com/samvad-hq/nyc-schools/internal/logger"
	"github.com/samvad-hq/nyc-schools/pkg/network"
	"github.com/samvad-hq/nyc-schools/pkg/publishers"
)

const (
	defaultSource  = "nycopendata"
	defaultWorkers = 4
)

// Endpoints names the two datasets the exporter reads.
type Endpoints struct {
	Schools   network.Endpoint
	SATScores network.Endpoint
}

// Options tunes a Service.
type Options struct {
	Source  string
	Workers int
	Log     logger.Logger
}

// Service coordinates one export pass.
type Service struct {
	requester network.Requester
	endpoints Endpoints
	publisher EventPublisher
	source    string
	workers   int
	log       logger.Logger
}

// Summary reports the outcome of a pass.
type Summary struct {
	Schools    int
	WithScores int
	Published  int
	Failed     int
	Skipped    int
	Elapsed    time.Duration
}

// NewService wires the exporter.
func NewService(r network.Requester, eps Endpoints, pub EventPublisher, opts Options) *Service {
	if opts.Source == "" {
		opts.Source = defaultSource
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Log == nil {
		opts.Log = logger.NopLogger{}
	}
	return &Service{
		requester: r,
		endpoints: eps,
		publisher: pub,
		source:    opts.Source,
		workers:   opts.Workers,
		log:       opts.Log,
	}
}

// Run fetches both datasets concurrently, joins them by DBN and publishes every school.
// When dbns is non-empty only those schools are published.
func (s *Service) Run(ctx context.Context, dbns []string) (Summary, error) {
	if s == nil || s.requester == nil || s.publisher == nil {
		return Summary{}, errors.New("export service is not initialized")
	}
	start := time.Now()

	schools, scores, err := s.fetch(ctx)
	if err != nil {
		return Summary{}, err
	}

	index := domain.IndexSATScores(scores)
	filter := dbnFilter(dbns)

	summary := Summary{}
	var (
		mu                sync.Mutex
		errs              []error
		published, failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, school := range schools {
		if filter != nil && !filter[school.DBN] {
			summary.Skipped++
			continue
		}
		summary.Schools++

		var match *domain.SATScores
		if sc, ok := index[school.DBN]; ok {
			match = &sc
			summary.WithScores++
		}
		evt := publishers.NewEvent(s.source, school, match)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := s.publisher.Publish(gctx, evt)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				errs = append(errs, fmt.Errorf("publish school %s: %w", evt.DBN(), err))
				s.log.ErrorObj("school publish failed", "export_error", map[string]any{
					"dbn":   evt.DBN(),
					"error": err.Error(),
				})
				return nil
			}
			published++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}

	summary.Published, summary.Failed = published, failed
	summary.Elapsed = time.Since(start)
	s.log.InfoObj("export completed", "export_summary", map[string]any{
		"schools":     summary.Schools,
		"with_scores": summary.WithScores,
		"published":   summary.Published,
		"failed":      summary.Failed,
		"skipped":     summary.Skipped,
		"elapsed_ms":  summary.Elapsed.Milliseconds(),
	})
	return summary, errors.Join(errs...)
}

func (s *Service) fetch(ctx context.Context) ([]domain.School, []domain.SATScores, error) {
	var (
		schools []domain.School
		scores  []domain.SATScores
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		schools, err = network.Fetch[[]domain.School](gctx, s.requester, s.endpoints.Schools)
		if err != nil {
			return fmt.Errorf("fetch schools: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = network.Fetch[[]domain.SATScores](gctx, s.requester, s.endpoints.SATScores)
		if err != nil {
			return fmt.Errorf("fetch sat scores: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	s.log.InfoObj("datasets fetched", "export_fetch", map[string]any{
		"schools":    len(schools),
		"sat_scores": len(scores),
	})
	return schools, scores, nil
}

func dbnFilter(dbns []string) map[string]bool {
	var out map[string]bool
	for _, d := range dbns {
		d = strings.ToUpper(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if out == nil {
			out = make(map[string]bool)
		}
		out[d] = true
	}
	return out
}
