package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/samvad-hq/nyc-schools/internal/config"
	"github.com/samvad-hq/nyc-schools/internal/domain"
	"github.com/samvad-hq/nyc-schools/internal/logger"
	"github.com/samvad-hq/nyc-schools/internal/ui"
	"github.com/samvad-hq/nyc-schools/internal/viewmodel"
)

// Browser runs the interactive school browser.
type Browser struct {
	cfg      *config.Config
	pipeline *Pipeline
	log      logger.Logger
}

// NewBrowser wires the browser runtime.
func NewBrowser(cfg *config.Config, log logger.Logger) (*Browser, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Browser{cfg: cfg, pipeline: NewPipeline(cfg), log: log}, nil
}

// Options returns the UI options backed by the pipeline.
func (b *Browser) Options() ui.Options {
	p := b.pipeline
	return ui.Options{
		NewList: func(d viewmodel.Dispatcher) *viewmodel.SchoolList {
			return viewmodel.NewSchoolList(p.Client, p.Catalog.SchoolsEndpoint(), d)
		},
		NewDetails: func(s domain.School, d viewmodel.Dispatcher) *viewmodel.SchoolDetails {
			return viewmodel.NewSchoolDetails(s, p.Client, p.Catalog.SATScoresEndpoint(), d)
		},
		Connectivity: p.Monitor,
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (b *Browser) Run(ctx context.Context) error {
	b.pipeline.Start(ctx)
	defer b.pipeline.Stop()

	b.log.InfoObj("browser starting", "browser_state", map[string]any{
		"api_host":  b.cfg.APIHost,
		"reachable": b.pipeline.Monitor.IsReachable(),
	})
	if err := ui.Run(ctx, b.Options()); err != nil {
		return err
	}
	b.log.InfoObj("browser exited", "browser_state", nil)
	return nil
}

// List loads the directory once without the interactive screens and writes it to w as
// a table. Completions run on a serial queue owned by this call.
func (b *Browser) List(ctx context.Context, w io.Writer) error {
	b.pipeline.Start(ctx)
	defer b.pipeline.Stop()

	queue := viewmodel.NewMainQueue()
	defer queue.Stop()
	list := b.Options().NewList(queue)
	defer list.Close()

	select {
	case <-list.FetchSchools():
	case <-ctx.Done():
		return ctx.Err()
	}

	st := list.State()
	if st.ErrorState != viewmodel.ErrorNone {
		return fmt.Errorf("load schools: %s", st.ErrorState.Message())
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DBN", "SCHOOL", "PHONE")
	for _, s := range st.Schools {
		t.Row(s.DBN, s.Name, s.PhoneNumber)
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("write school list: %w", err)
	}
	b.log.InfoObj("school list written", "browser_state", map[string]any{"count": len(st.Schools)})
	return nil
}
