package via

import (
	"sync"
	"sync/atomic"
	"time"
)

// Routine runs a func on a ticker in its own goroutine until it is stopped or
// its owner is disposed.
type Routine struct {
	mu             sync.Mutex
	disposed       <-chan struct{}
	localInterrupt chan struct{}
	isRunning      atomic.Bool
	routineFn      func()
	tckDuration    time.Duration
	tkr            *time.Ticker
}

// OnInterval sets the func executed on every tick of a time.Ticker with the
// given duration. If the routine is running, it is stopped.
func (r *Routine) OnInterval(d time.Duration, fn func()) {
	if r.isRunning.Load() {
		r.Stop()
	}
	r.mu.Lock()
	r.tckDuration = d
	r.mu.Unlock()
	r.routineFn = func() {
		r.mu.Lock()
		r.tkr = time.NewTicker(r.tckDuration)
		tkr := r.tkr
		r.mu.Unlock()
		defer tkr.Stop()
		for {
			select {
			case <-r.disposed:
				r.isRunning.Store(false)
				return
			case <-r.localInterrupt:
				return
			case <-tkr.C:
				fn()
			}
		}
	}
}

// UpdateInterval sets a new tick interval. Durations <= 0 are ignored.
func (r *Routine) UpdateInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tckDuration = d
	if r.tkr != nil {
		r.tkr.Reset(d)
	}
}

// Start executes the predefined goroutine. If no goroutine is defined, or it
// already started, Start does nothing.
func (r *Routine) Start() {
	if r.routineFn == nil || !r.isRunning.CompareAndSwap(false, true) {
		return
	}
	go r.routineFn()
}

// Stop interrupts the goroutine. If it is not running, Stop does nothing.
func (r *Routine) Stop() {
	if r.routineFn == nil || !r.isRunning.CompareAndSwap(true, false) {
		return
	}
	r.localInterrupt <- struct{}{}
}

// Running reports whether the goroutine is active.
func (r *Routine) Running() bool {
	return r.isRunning.Load()
}

func newRoutine(disposed <-chan struct{}) *Routine {
	return &Routine{
		disposed:       disposed,
		localInterrupt: make(chan struct{}),
	}
}
