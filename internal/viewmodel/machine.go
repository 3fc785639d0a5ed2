package viewmodel

import (
	"context"
	"sync"

	"github.com/samvad-hq/nyc-schools/internal/logger"
)

// machine drives the Idle -> Fetching -> {Success, Failed} lifecycle for a payload P.
// Entry runs on the caller; completions run through the dispatcher. Only the latest
// fetch's completion is applied, and nothing is applied after close.
type machine[P any] struct {
	name     string
	dispatch Dispatcher
	log      logger.Logger
	clone    func(P) P

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	status     Status
	payload    P
	generation uint64
	closed     bool
	observers  []func(Status, P)
}

func newMachine[P any](name string, d Dispatcher, log logger.Logger, clone func(P) P) *machine[P] {
	if d == nil {
		d = Inline
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &machine[P]{
		name:     name,
		dispatch: d,
		log:      log,
		clone:    clone,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (m *machine[P]) snapshot() (Status, P) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status, m.clone(m.payload)
}

func (m *machine[P]) observe(fn func(Status, P)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

// mutate applies fn under the lock and, when fn reports a change, notifies observers
// with the resulting snapshot.
func (m *machine[P]) mutate(fn func(*Status, *P) bool) {
	m.mu.Lock()
	if !fn(&m.status, &m.payload) {
		m.mu.Unlock()
		return
	}
	st, p := m.status, m.clone(m.payload)
	observers := make([]func(Status, P), len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, o := range observers {
		o(st, p)
	}
}

// run starts a fetch. The returned channel is closed once the completion has been
// handled, applied or dropped.
func (m *machine[P]) run(fetch func(context.Context) (P, error)) <-chan struct{} {
	done := make(chan struct{})

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.log.DebugObj("fetch ignored after close", "viewmodel", map[string]any{"name": m.name})
		close(done)
		return done
	}
	m.generation++
	gen := m.generation
	m.mu.Unlock()

	m.mutate(func(s *Status, _ *P) bool {
		s.IsFetchingData = true
		return true
	})
	m.log.InfoObj("fetch started", "viewmodel", map[string]any{"name": m.name, "generation": gen})

	ctx := m.ctx
	go func() {
		payload, err := fetch(ctx)

		var once sync.Once
		finish := func() { once.Do(func() { close(done) }) }
		m.dispatch.Dispatch(func() {
			defer finish()
			m.complete(gen, payload, err)
		})

		stoppable, ok := m.dispatch.(Stoppable)
		if !ok {
			return
		}
		select {
		case <-done:
		case <-stoppable.Stopped():
			select {
			case <-done:
				return
			default:
			}
			m.log.DebugObj("completion dropped by stopped dispatcher", "viewmodel", map[string]any{
				"name":       m.name,
				"generation": gen,
			})
			finish()
		}
	}()
	return done
}

func (m *machine[P]) complete(gen uint64, payload P, err error) {
	fields := map[string]any{"name": m.name, "generation": gen}
	state := ErrorStateFor(err)
	if err != nil {
		fields["error"] = err.Error()
		fields["error_state"] = state.String()
	}

	outcome := "applied"
	m.mutate(func(s *Status, p *P) bool {
		switch {
		case m.closed:
			outcome = "closed"
			return false
		case gen != m.generation:
			outcome = "stale"
			fields["latest"] = m.generation
			return false
		}
		if err == nil {
			*p = payload
		}
		s.SetErrorState(state)
		s.IsFetchingData = false
		return true
	})

	switch {
	case outcome == "closed":
		m.log.DebugObj("completion dropped after close", "viewmodel", fields)
	case outcome == "stale":
		m.log.DebugObj("stale completion dropped", "viewmodel", fields)
	case err != nil:
		m.log.ErrorObj("fetch failed", "viewmodel", fields)
	default:
		m.log.InfoObj("fetch succeeded", "viewmodel", fields)
	}
}

func (m *machine[P]) dismissError() {
	m.mutate(func(s *Status, _ *P) bool {
		if !s.ShouldShowErrorState {
			return false
		}
		s.ShouldShowErrorState = false
		return true
	})
}

func (m *machine[P]) close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	m.cancel()
	m.log.InfoObj("view model closed", "viewmodel", map[string]any{"name": m.name})
}
