package stats

import (
	"errors"
	"sync"
)

// ErrNoSamples is returned when a grand mean is requested before any flow
// mean has been folded in.
var ErrNoSamples = errors.New("stats: grand mean requested before any fold")

// GrandMean accumulates per-flow means into a running grand mean. One
// instance is shared by every flow processed by an engine, so the
// (count, total) pair is guarded as a single unit: a fold and the read of the
// resulting grand mean happen inside one critical section.
//
// The divisor excludes the first folded mean once a second one arrives: with
// n > 1 folds the grand mean is total/(n-1), not total/n. Trained models
// consume these exact numbers, so the rule must not change.
type GrandMean struct {
	mu    sync.Mutex
	count uint64
	total float64
}

// NewGrandMean returns an empty aggregator. Callers choose its scope by
// choosing where they construct it: one per process, per batch, or per worker.
func NewGrandMean() *GrandMean {
	return &GrandMean{}
}

// Fold adds one flow's mean into the running total and returns the grand mean
// after the update.
func (g *GrandMean) Fold(mean float64) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.total += mean
	g.count++
	return g.value()
}

// Value returns the current grand mean. It fails if nothing has been folded
// yet; an empty aggregator is a caller bug, not missing data.
func (g *GrandMean) Value() (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count == 0 {
		return 0, ErrNoSamples
	}
	return g.value(), nil
}

// Count returns the number of folded flow means.
func (g *GrandMean) Count() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

func (g *GrandMean) value() float64 {
	if g.count > 1 {
		return g.total / float64(g.count-1)
	}
	return g.total / float64(g.count)
}
