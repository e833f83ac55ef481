package client

import (
	"context"
	"expvar"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/fetch"
)

// Portal bundles one fetch.Executor per portal endpoint, sharing a single
// response cache sized and aged by conf. The executors give every endpoint
// the same request policy: cached reads, bounded linear-backoff retry and
// cancellation of superseded calls. The dashboard additionally refreshes on
// a poll schedule.
type Portal struct {
	client *Client
	cache  *fetch.Cache

	Profile     *fetch.Executor
	Courses     *fetch.Executor
	CGPA        *fetch.Executor
	Assignments *fetch.Executor
	Dashboard   *fetch.Executor

	DashboardPoller *fetch.Poller
}

// NewPortal wires executors around c. Polling starts stopped; call
// DashboardPoller.Start to enable it.
func NewPortal(c *Client, conf core.FetchConfig) *Portal {
	cache := fetch.NewCache(conf.CacheMaxEntries)
	opts := func(endpoint string) *fetch.Options {
		return &fetch.Options{
			Cache: cache,
			// the cache is shared for capacity/eviction only; keys are
			// namespaced per endpoint so zero-arg calls never collide
			KeyPrefix:     endpoint,
			CacheTTL:      conf.CacheTTL,
			RetryAttempts: conf.RetryAttempts,
			RetryDelay:    conf.RetryDelay,
		}
	}

	p := &Portal{client: c, cache: cache}

	p.Profile = fetch.NewExecutor(func(ctx context.Context, args ...interface{}) (interface{}, error) {
		return c.Profile(ctx)
	}, opts("profile"))

	// args: optional course.QueryFilter
	p.Courses = fetch.NewExecutor(func(ctx context.Context, args ...interface{}) (interface{}, error) {
		var filter course.QueryFilter
		if len(args) > 0 {
			if f, ok := args[0].(course.QueryFilter); ok {
				filter = f
			}
		}
		return c.Courses(ctx, filter)
	}, opts("courses"))

	// args: optional semester label; none means cumulative
	p.CGPA = fetch.NewExecutor(func(ctx context.Context, args ...interface{}) (interface{}, error) {
		var semester string
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				semester = s
			}
		}
		return c.CGPA(ctx, semester)
	}, opts("cgpa"))

	// args: optional assignment.QueryFilter
	p.Assignments = fetch.NewExecutor(func(ctx context.Context, args ...interface{}) (interface{}, error) {
		var filter assignment.QueryFilter
		if len(args) > 0 {
			if f, ok := args[0].(assignment.QueryFilter); ok {
				filter = f
			}
		}
		return c.Assignments(ctx, filter)
	}, opts("assignments"))

	p.Dashboard = fetch.NewExecutor(func(ctx context.Context, args ...interface{}) (interface{}, error) {
		return c.Dashboard(ctx)
	}, opts("dashboard"))

	p.DashboardPoller = fetch.NewPoller(p.Dashboard, conf.PollInterval, false)
	return p
}

// SubmitAssignment posts the submission, then optimistically patches the
// assignments executor's state and drops the stale cache so the next read
// refetches.
func (p *Portal) SubmitAssignment(ctx context.Context, id string) (assignment.Assignment, error) {
	submitted, err := p.client.SubmitAssignment(ctx, id)
	if err != nil {
		return assignment.Assignment{}, err
	}

	p.Assignments.UpdateDataWith(func(old interface{}) interface{} {
		asgs, ok := old.([]assignment.Assignment)
		if !ok {
			return old
		}
		updated := make([]assignment.Assignment, len(asgs))
		copy(updated, asgs)
		for i, a := range updated {
			if a.ID == submitted.ID {
				updated[i] = submitted
			}
		}
		return updated
	})
	p.cache.Clear()
	return submitted, nil
}

// Stats returns the per-endpoint executor activity counters.
func (p *Portal) Stats() map[string]map[string]int64 {
	return map[string]map[string]int64{
		"profile":     p.Profile.Stats(),
		"courses":     p.Courses.Stats(),
		"cgpa":        p.CGPA.Stats(),
		"assignments": p.Assignments.Stats(),
		"dashboard":   p.Dashboard.Stats(),
	}
}

// PublishVars exposes the executor counters under /debug/vars. Publish once
// per process; expvar panics on duplicate names.
func (p *Portal) PublishVars(name string) {
	expvar.Publish(name, expvar.Func(func() interface{} { return p.Stats() }))
}

// Close stops polling and disposes of every executor.
func (p *Portal) Close() {
	p.DashboardPoller.Stop()
	p.Profile.Close()
	p.Courses.Close()
	p.CGPA.Close()
	p.Assignments.Close()
	p.Dashboard.Close()
}
