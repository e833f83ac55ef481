package fetch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Poller triggers Refetch on an Executor on a fixed schedule. A tick is
// skipped while the previous refetch is still in flight (busy-guard), so
// scheduled calls never overlap. Stopping is deterministic: after Stop
// returns no further refetch is started.
type Poller struct {
	exec     *Executor
	interval time.Duration
	args     []interface{}

	busy int32

	mu      sync.Mutex
	done    chan struct{}
	running bool
}

// NewPoller creates a poller for exec. While enabled, Refetch(args...) runs
// every interval; pass enabled=false to create it stopped and Start it later.
func NewPoller(exec *Executor, interval time.Duration, enabled bool, args ...interface{}) *Poller {
	p := &Poller{exec: exec, interval: interval, args: args}
	if enabled {
		p.Start()
	}
	return p
}

// Start begins (or resumes) polling. It is a no-op if already running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || p.interval <= 0 {
		return
	}
	p.running = true
	p.done = make(chan struct{})
	go p.loop(p.done)
}

// Stop halts the schedule. In-flight work is left to the executor's own
// cancellation; no new tick fires after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.running = false
	close(p.done)
}

func (p *Poller) loop(done chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			p.exec.stats.inc(&p.exec.stats.pollTicks)
			if !atomic.CompareAndSwapInt32(&p.busy, 0, 1) {
				// previous tick's refetch still in flight
				p.exec.stats.inc(&p.exec.stats.pollSkips)
				continue
			}
			// a tick can be ready at the same time as close(done); re-check
			// under the lock so no refetch is launched once Stop has returned
			p.mu.Lock()
			if !p.running || p.done != done {
				p.mu.Unlock()
				atomic.StoreInt32(&p.busy, 0)
				return
			}
			go func() {
				defer atomic.StoreInt32(&p.busy, 0)
				_, _ = p.exec.Refetch(context.Background(), p.args...)
			}()
			p.mu.Unlock()
		}
	}
}
