package viewmodel

import "sync"

// Dispatcher runs completion closures on the goroutine that owns UI state.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(fn func())

func (f DispatchFunc) Dispatch(fn func()) { f(fn) }

// Stoppable is implemented by dispatchers that stop accepting closures. A fetch whose
// completion is dropped that way still closes its done channel once Stopped is closed.
type Stoppable interface {
	Stopped() <-chan struct{}
}

// Inline runs closures on the calling goroutine. Useful for headless callers and tests.
var Inline Dispatcher = DispatchFunc(func(fn func()) { fn() })

// MainQueue is a serial loop: closures run one at a time, in submission order, on a
// single goroutine.
type MainQueue struct {
	tasks    chan func()
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

var (
	_ Dispatcher = (*MainQueue)(nil)
	_ Stoppable  = (*MainQueue)(nil)
)

// NewMainQueue starts the loop.
func NewMainQueue() *MainQueue {
	q := &MainQueue{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *MainQueue) loop() {
	defer close(q.done)
	for {
		select {
		case fn := <-q.tasks:
			fn()
		case <-q.quit:
			return
		}
	}
}

// Dispatch enqueues fn. After Stop closures are dropped.
func (q *MainQueue) Dispatch(fn func()) {
	select {
	case <-q.quit:
		return
	default:
	}
	select {
	case q.tasks <- fn:
	case <-q.quit:
	}
}

// Stopped is closed once the loop has exited. No closure runs after that.
func (q *MainQueue) Stopped() <-chan struct{} {
	return q.done
}

// Stop ends the loop and waits for the running closure to return.
func (q *MainQueue) Stop() {
	q.stopOnce.Do(func() { close(q.quit) })
	<-q.done
}
