// Package observability tracks per-step statistics of pipeline runs.
package observability

import (
	"sort"
	"sync"
	"time"
)

// StepStats tracks the runs of pipeline steps of one kind.
type StepStats struct {
	Kind       string
	Runs       int64
	Failures   int64
	RecordsIn  int64
	RecordsOut int64
	Total      time.Duration
	LastSeen   time.Time
	Columns    map[string]int // column → number of runs touching it
}

// Mean returns the average duration of one run.
func (s StepStats) Mean() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Runs)
}

// RunStats aggregates StepStats by step kind. It is safe for concurrent use.
type RunStats struct {
	mu    sync.RWMutex
	steps map[string]*StepStats
}

// NewRunStats creates an empty tracker.
func NewRunStats() *RunStats {
	return &RunStats{steps: make(map[string]*StepStats)}
}

func (r *RunStats) entry(kind string) *StepStats {
	stats, exists := r.steps[kind]
	if !exists {
		stats = &StepStats{
			Kind:    kind,
			Columns: make(map[string]int),
		}
		r.steps[kind] = stats
	}
	stats.LastSeen = time.Now()
	return stats
}

// RecordStep records a successful step run.
// in and out are the record counts before and after the step.
func (r *RunStats) RecordStep(kind, column string, in, out int, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := r.entry(kind)
	stats.Runs++
	stats.RecordsIn += int64(in)
	stats.RecordsOut += int64(out)
	stats.Total += d
	if column != "" {
		stats.Columns[column]++
	}
}

// RecordFailure records a failed step run.
func (r *RunStats) RecordFailure(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entry(kind).Failures++
}

// Get returns a copy of the stats of one kind.
func (r *RunStats) Get(kind string) (StepStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.steps[kind]
	if !ok {
		return StepStats{}, false
	}
	return copyStats(s), true
}

func copyStats(s *StepStats) StepStats {
	cp := *s
	cp.Columns = make(map[string]int, len(s.Columns))
	for col, n := range s.Columns {
		cp.Columns[col] = n
	}
	return cp
}

// GetSlowest returns the top N kinds by total duration, slowest first.
func (r *RunStats) GetSlowest(n int) []StepStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || len(r.steps) == 0 {
		return []StepStats{}
	}

	stats := make([]StepStats, 0, len(r.steps))
	for _, s := range r.steps {
		stats = append(stats, copyStats(s))
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Kind < stats[j].Kind
	})

	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n]
}
