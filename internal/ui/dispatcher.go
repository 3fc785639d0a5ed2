package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/samvad-hq/nyc-schools/internal/viewmodel"
)

// applyMsg carries a view model completion into the program's update loop.
type applyMsg func()

// programDispatcher delivers completions to the bubbletea event loop, which owns UI state.
type programDispatcher struct {
	mu       sync.Mutex
	program  *tea.Program
	stopped  chan struct{}
	stopOnce sync.Once
}

var (
	_ viewmodel.Dispatcher = (*programDispatcher)(nil)
	_ viewmodel.Stoppable  = (*programDispatcher)(nil)
)

func newProgramDispatcher() *programDispatcher {
	return &programDispatcher{stopped: make(chan struct{})}
}

func (d *programDispatcher) attach(p *tea.Program) {
	d.mu.Lock()
	d.program = p
	d.mu.Unlock()
}

// Dispatch sends fn to the program. Without a program it runs fn directly.
func (d *programDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	p := d.program
	d.mu.Unlock()

	if p == nil {
		fn()
		return
	}
	p.Send(applyMsg(fn))
}

// Stopped is closed once the program has exited and stops taking messages.
func (d *programDispatcher) Stopped() <-chan struct{} {
	return d.stopped
}

func (d *programDispatcher) stop() {
	d.stopOnce.Do(func() { close(d.stopped) })
}
