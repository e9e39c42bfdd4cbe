// Package stats implements the descriptive-statistics pattern shared by all
// flow feature groups, including the sentinel conventions for series that are
// too short or too uniform to summarize.
package stats

import (
	"math"
	"sort"
)

// Sentinel values returned for statistics that cannot be computed. Downstream
// consumers rely on them to distinguish "insufficient data" from a genuine
// result, so a degenerate series never turns into a processing failure.
const (
	Undefined     = -1.0
	UndefinedSkew = -10.0
)

// Series is one derived sample series of a flow, e.g. the response-time
// deltas or the packet lengths. It is recomputed per feature request and
// never mutated after construction.
type Series []float64

// Mean returns the arithmetic mean, or Undefined for an empty series.
func (s Series) Mean() float64 {
	if len(s) == 0 {
		return Undefined
	}
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

// Variance returns the population variance, or Undefined for an empty series.
func (s Series) Variance() float64 {
	if len(s) == 0 {
		return Undefined
	}
	mean := s.Mean()
	acc := 0.0
	for _, v := range s {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(s))
}

// Std returns the population standard deviation, or Undefined for an empty
// series.
func (s Series) Std() float64 {
	if len(s) == 0 {
		return Undefined
	}
	return math.Sqrt(s.Variance())
}

// Median returns the median, averaging the two middle samples for series of
// even length. The empty series returns Undefined, same as the other
// statistics.
func (s Series) Median() float64 {
	if len(s) == 0 {
		return Undefined
	}
	sorted := s.sortedCopy()
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Mode returns the most frequent sample. Ties resolve to the smallest of the
// tied values so the result is deterministic. The empty series returns
// Undefined.
func (s Series) Mode() float64 {
	if len(s) == 0 {
		return Undefined
	}
	sorted := s.sortedCopy()

	mode := sorted[0]
	bestCount := 0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		// Strictly greater keeps the smallest value on ties, since the
		// scan runs in ascending order.
		if j-i > bestCount {
			bestCount = j - i
			mode = sorted[i]
		}
		i = j
	}
	return mode
}

// SkewFromMedian returns the Pearson median skewness 3*(mean-median)/std.
// A series with zero standard deviation (or no samples) has no defined skew
// and returns UndefinedSkew.
func (s Series) SkewFromMedian() float64 {
	std := s.Std()
	if len(s) == 0 || std == 0 {
		return UndefinedSkew
	}
	return 3 * (s.Mean() - s.Median()) / std
}

// SkewFromMode returns the mode skewness (mean-mode)/std, with the same
// UndefinedSkew policy as SkewFromMedian.
func (s Series) SkewFromMode() float64 {
	std := s.Std()
	if len(s) == 0 || std == 0 {
		return UndefinedSkew
	}
	return (s.Mean() - s.Mode()) / std
}

// CoefficientOfVariation returns std/mean. The empty series and the zero-mean
// series both return Undefined, as neither ratio carries information.
func (s Series) CoefficientOfVariation() float64 {
	if len(s) == 0 {
		return Undefined
	}
	mean := s.Mean()
	if mean == 0 {
		return Undefined
	}
	return s.Std() / mean
}

func (s Series) sortedCopy() []float64 {
	sorted := make([]float64, len(s))
	copy(sorted, s)
	sort.Float64s(sorted)
	return sorted
}
