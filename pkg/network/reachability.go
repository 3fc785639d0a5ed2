package network

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PathStatus mirrors the status of the current network path.
type PathStatus int32

const (
	// StatusRequiresConnection is the state before any path update arrives.
	StatusRequiresConnection PathStatus = iota
	StatusSatisfied
	StatusUnsatisfied
)

func (s PathStatus) String() string {
	switch s {
	case StatusSatisfied:
		return "satisfied"
	case StatusUnsatisfied:
		return "unsatisfied"
	default:
		return "requires_connection"
	}
}

// Path is one connectivity update.
type Path struct {
	Status      PathStatus
	IsExpensive bool
	Interface   string
}

// PathProber produces a connectivity update on demand.
type PathProber interface {
	Probe(ctx context.Context) Path
}

// Reachability is the connectivity view the request pipeline consults.
type Reachability interface {
	IsReachable() bool
}

var _ Reachability = (*Monitor)(nil)

const defaultMonitorInterval = 10 * time.Second

// Monitor tracks connectivity from periodic path updates delivered on its own goroutine.
type Monitor struct {
	prober   PathProber
	interval time.Duration
	log      Logger

	status    atomic.Int32
	expensive atomic.Bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	ready   chan struct{}
	readyMu sync.Once
}

// MonitorOption customizes a Monitor.
type MonitorOption func(*Monitor)

// WithMonitorInterval sets how often the prober is consulted.
func WithMonitorInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithMonitorLogger sets the logger used for path updates.
func WithMonitorLogger(log Logger) MonitorOption {
	return func(m *Monitor) { m.log = ensureLogger(log) }
}

// NewMonitor builds a stopped Monitor. A nil prober means updates only arrive through Update.
func NewMonitor(prober PathProber, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		prober:   prober,
		interval: defaultMonitorInterval,
		log:      noopLogger{},
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins monitoring until Stop is called or ctx is cancelled. Calling Start twice is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil || m.prober == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
}

// Stop ends monitoring and waits for the background goroutine. The last status is kept.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		path := m.prober.Probe(ctx)
		if ctx.Err() != nil {
			return
		}
		m.Update(path)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Update applies a path update. Safe to call from any goroutine.
func (m *Monitor) Update(p Path) {
	prev := PathStatus(m.status.Swap(int32(p.Status)))
	m.expensive.Store(p.IsExpensive)

	fields := map[string]any{
		"status":       p.Status.String(),
		"is_expensive": p.IsExpensive,
		"interface":    p.Interface,
	}
	switch {
	case prev == p.Status:
		m.log.DebugObj("network path unchanged", "reachability", fields)
	case p.Status == StatusSatisfied:
		m.log.InfoObj("network connected", "reachability", fields)
	default:
		m.log.WarnObj("no network connection", "reachability", fields)
	}

	m.readyMu.Do(func() { close(m.ready) })
}

// IsReachable reports whether the latest path update was satisfied.
func (m *Monitor) IsReachable() bool {
	return m.Status() == StatusSatisfied
}

// IsReachableOnCellular reports whether the active path is expensive (metered).
func (m *Monitor) IsReachableOnCellular() bool {
	return m.expensive.Load()
}

// Status returns the latest path status.
func (m *Monitor) Status() PathStatus {
	return PathStatus(m.status.Load())
}

// Ready is closed once the first path update has been applied.
func (m *Monitor) Ready() <-chan struct{} {
	return m.ready
}
