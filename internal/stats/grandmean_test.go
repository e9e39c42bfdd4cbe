package stats

import (
	"errors"
	"sync"
	"testing"
)

func TestGrandMeanDivisorRule(t *testing.T) {
	gm := NewGrandMean()

	// The first fold divides by count, later folds divide by count-1.
	if got := gm.Fold(2.0); !almostEqual(got, 2.0) {
		t.Errorf("after first fold, grand mean = %v, want 2.0", got)
	}
	if got := gm.Fold(4.0); !almostEqual(got, 6.0) {
		t.Errorf("after second fold, grand mean = %v, want 6.0", got)
	}
	if got := gm.Fold(6.0); !almostEqual(got, 6.0) {
		t.Errorf("after third fold, grand mean = %v, want 6.0", got)
	}

	v, err := gm.Value()
	if err != nil {
		t.Fatalf("Value() returned error: %v", err)
	}
	if !almostEqual(v, 6.0) {
		t.Errorf("Value() = %v, want 6.0", v)
	}
	if gm.Count() != 3 {
		t.Errorf("Count() = %d, want 3", gm.Count())
	}
}

func TestGrandMeanValueBeforeFold(t *testing.T) {
	gm := NewGrandMean()
	if _, err := gm.Value(); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("Value() on empty aggregator: err = %v, want ErrNoSamples", err)
	}
}

func TestGrandMeanConcurrentFolds(t *testing.T) {
	gm := NewGrandMean()

	const (
		workers = 8
		folds   = 1000
	)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < folds; j++ {
				gm.Fold(1.0)
			}
		}()
	}
	wg.Wait()

	if got, want := gm.Count(), uint64(workers*folds); got != want {
		t.Fatalf("Count() = %d, want %d (lost updates)", got, want)
	}
	v, err := gm.Value()
	if err != nil {
		t.Fatalf("Value() returned error: %v", err)
	}
	want := float64(workers*folds) / float64(workers*folds-1)
	if !almostEqual(v, want) {
		t.Errorf("Value() = %v, want %v", v, want)
	}
}
