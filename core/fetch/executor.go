// Package fetch wraps arbitrary asynchronous operations with result caching,
// bounded retry and cooperative cancellation, exposing a {Data, Loading, Err}
// state to callers. It is the request layer the portal client is built on;
// it knows nothing about what the wrapped operation does (HTTP call, storage
// read, ...).
package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Defaults applied by NewExecutor when the corresponding option is unset.
const (
	DefaultCacheTTL        = 5 * time.Minute
	DefaultCacheMaxEntries = 128
	DefaultRetryAttempts   = 3
	DefaultRetryDelay      = time.Second
)

// Operation is the wrapped-operation contract: any function taking zero or
// more arguments and returning a value or failing. It must honor ctx
// cancellation; if it does not, a superseded result is still discarded on
// arrival.
type Operation func(ctx context.Context, args ...interface{}) (interface{}, error)

// State is the caller-visible executor state. Exactly one of the following
// holds at any time: idle (Loading=false, Err=nil), in-flight (Loading=true),
// settled-success (Data set, Err=nil) or settled-failure (Err set).
type State struct {
	Data    interface{}
	Loading bool
	Err     error
}

// Options configure an Executor. The zero value enables caching and retries
// with the package defaults.
type Options struct {
	// AutoExecute runs the operation once on creation with AutoExecuteArgs.
	AutoExecute     bool
	AutoExecuteArgs []interface{}

	DisableCache bool
	// Cache lets several executors share one cache; when nil a private
	// cache of DefaultCacheMaxEntries entries is created.
	Cache *Cache
	// KeyPrefix namespaces this executor's entries within the cache, so
	// two executors sharing a Cache never serve each other's results for
	// the same argument list. When unset a unique prefix is generated.
	KeyPrefix string
	CacheTTL  time.Duration

	DisableRetry  bool
	RetryAttempts int // total invocation budget, including the first attempt
	// RetryDelay is the base backoff; attempt n waits RetryDelay*n.
	// The backoff is linear, not exponential.
	RetryDelay time.Duration
}

// Executor executes a caller-supplied operation, managing loading/error/data
// state, result caching, retry-on-failure and cancellation. Only one
// invocation may be in flight per executor: starting a new one first cancels
// the prior one, and a state update from a superseded invocation is
// discarded rather than overwriting newer state.
type Executor struct {
	op    Operation
	opts  Options
	cache *Cache
	stats Stats

	mu     sync.Mutex
	state  State
	gen    uint64 // invocation generation; guards against late state writes
	cancel context.CancelFunc
	closed bool
}

// NewExecutor wraps op. opts may be nil.
func NewExecutor(op Operation, opts *Options) *Executor {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.RetryAttempts <= 0 {
		o.RetryAttempts = DefaultRetryAttempts
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = DefaultRetryDelay
	}

	e := &Executor{op: op, opts: o}
	if !o.DisableCache {
		e.cache = o.Cache
		if e.cache == nil {
			e.cache = NewCache(DefaultCacheMaxEntries)
		}
		if e.opts.KeyPrefix == "" {
			e.opts.KeyPrefix = uuid.New().String()
		}
	}
	if o.AutoExecute {
		go func() { _, _ = e.Execute(context.Background(), o.AutoExecuteArgs...) }()
	}
	return e
}

// Execute runs the wrapped operation with args. When caching is enabled and
// a fresh entry exists for args, the cached value is returned immediately
// without marking loading or invoking the operation. Terminal failures are
// returned to the caller AND recorded in Err state, so non-awaiting
// observers see them too.
func (e *Executor) Execute(ctx context.Context, args ...interface{}) (interface{}, error) {
	return e.run(ctx, args, false)
}

// Refetch is Execute, except any existing cache entry for args is
// invalidated first and the operation is always invoked.
func (e *Executor) Refetch(ctx context.Context, args ...interface{}) (interface{}, error) {
	return e.run(ctx, args, true)
}

// Reset clears Data, Loading and Err, cancels any in-flight invocation and
// unblocks any pending retry backoff so the scheduled retry never fires.
func (e *Executor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.gen++
	e.state = State{}
}

// UpdateData overwrites Data directly (optimistic update) without touching
// the cache or triggering a call.
func (e *Executor) UpdateData(value interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Data = value
}

// UpdateDataWith overwrites Data with the result of applying update to the
// current value.
func (e *Executor) UpdateDataWith(update func(old interface{}) interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Data = update(e.state.Data)
}

// ClearCache empties the cache, independent of executor state.
func (e *Executor) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// State returns a copy of the current caller-visible state.
func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stats returns a snapshot of the executor's activity counters.
func (e *Executor) Stats() map[string]int64 { return e.stats.Snapshot() }

// Close disposes of the executor: any in-flight invocation is cancelled and
// pending retry timers are released. Further Execute/Refetch calls fail.
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.gen++
}

func (e *Executor) run(ctx context.Context, args []interface{}, bypassCache bool) (interface{}, error) {
	var key string
	if e.cache != nil {
		k, err := Key(args...)
		if err != nil {
			return nil, &Error{Code: CodeInternal, Message: "deriving cache key: " + err.Error(), Err: err}
		}
		key = e.opts.KeyPrefix + ":" + k

		if bypassCache {
			e.cache.Invalidate(key)
		} else if val, ok := e.cache.Get(key, e.opts.CacheTTL); ok {
			e.stats.inc(&e.stats.cacheHits)
			// a cache hit settles the executor: it supersedes any in-flight
			// invocation so a slower, older call cannot overwrite this state.
			e.mu.Lock()
			if e.closed {
				e.mu.Unlock()
				return nil, &Error{Code: CodeClosed, Message: "executor is closed"}
			}
			if e.cancel != nil {
				e.cancel()
				e.cancel = nil
			}
			e.gen++
			e.state = State{Data: val}
			e.mu.Unlock()
			return val, nil
		}
		e.stats.inc(&e.stats.cacheMisses)
	}

	// supersede any prior in-flight invocation
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, &Error{Code: CodeClosed, Message: "executor is closed"}
	}
	if e.cancel != nil {
		e.cancel()
	}
	e.gen++
	gen := e.gen
	invCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.state.Loading = true
	e.state.Err = nil
	e.mu.Unlock()
	defer cancel()

	maxAttempts := e.opts.RetryAttempts
	if e.opts.DisableRetry {
		maxAttempts = 1
	}

	for attempt := 1; ; attempt++ {
		res, err := e.invoke(invCtx, args)
		e.stats.inc(&e.stats.attempts)

		// A superseded or reset invocation must not touch state, the cache,
		// or the retry schedule; its outcome is discarded on arrival.
		if invCtx.Err() != nil {
			e.stats.inc(&e.stats.staleDrops)
			return nil, cancelled(invCtx.Err())
		}
		if IsCancellation(err) {
			e.stats.inc(&e.stats.cancellations)
			return nil, cancelled(err)
		}

		if err == nil {
			if e.cache != nil {
				e.cache.Set(key, res)
			}
			e.commit(gen, func(s *State) { *s = State{Data: res} })
			return res, nil
		}

		ferr := Normalize(err)
		if IsUnauthorized(ferr) || attempt >= maxAttempts {
			e.commit(gen, func(s *State) {
				s.Loading = false
				s.Err = ferr
			})
			return nil, ferr
		}

		// transient failure with budget remaining: leave a retry notice in
		// Err and back off linearly before the next attempt.
		e.stats.inc(&e.stats.retries)
		notice := &Error{
			Code:    CodeRetryScheduled,
			Message: fmt.Sprintf("attempt %d/%d failed, retrying", attempt, maxAttempts),
			Err:     ferr,
		}
		e.commit(gen, func(s *State) { s.Err = notice })

		select {
		case <-time.After(e.opts.RetryDelay * time.Duration(attempt)):
		case <-invCtx.Done():
			e.stats.inc(&e.stats.cancellations)
			return nil, cancelled(invCtx.Err())
		}
	}
}

// invoke runs the operation, turning a synchronous panic into a normal
// failure value.
func (e *Executor) invoke(ctx context.Context, args []interface{}) (res interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Code: CodeInternal, Message: fmt.Sprintf("operation panic: %v", r)}
		}
	}()
	return e.op(ctx, args...)
}

// commit applies a state mutation unless the invocation identified by gen
// has been superseded, reset or closed in the meantime.
func (e *Executor) commit(gen uint64, apply func(*State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || gen != e.gen {
		e.stats.inc(&e.stats.staleDrops)
		return
	}
	apply(&e.state)
}
