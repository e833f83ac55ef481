package fetch

import "sync/atomic"

// Stats tracks executor activity with atomic counters. Snapshot returns a
// point-in-time copy safe to expose for monitoring.
type Stats struct {
	attempts      int64
	retries       int64
	cacheHits     int64
	cacheMisses   int64
	cancellations int64
	staleDrops    int64
	pollTicks     int64
	pollSkips     int64
}

func (s *Stats) Snapshot() map[string]int64 {
	return map[string]int64{
		"attempts":      atomic.LoadInt64(&s.attempts),
		"retries":       atomic.LoadInt64(&s.retries),
		"cache_hits":    atomic.LoadInt64(&s.cacheHits),
		"cache_misses":  atomic.LoadInt64(&s.cacheMisses),
		"cancellations": atomic.LoadInt64(&s.cancellations),
		"stale_drops":   atomic.LoadInt64(&s.staleDrops),
		"poll_ticks":    atomic.LoadInt64(&s.pollTicks),
		"poll_skips":    atomic.LoadInt64(&s.pollSkips),
	}
}

func (s *Stats) inc(counter *int64) { atomic.AddInt64(counter, 1) }
