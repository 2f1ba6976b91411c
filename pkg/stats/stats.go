// Package stats provides the column statistics behind validation reports and
// the event-weight accounting of dataset bundles.
package stats

import (
	"math"
	"sort"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(n)
}

// Variance computes the variance of a slice in a single pass.
func Variance(x []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}
	sum, sumSq := 0.0, 0.0
	for _, v := range x {
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	return (sumSq / n) - (mean * mean)
}

// Std computes the standard deviation of a slice.
func Std(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// Sum returns the sum of all elements in the slice.
func Sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}
	return s
}

// MinMax returns the minimum and maximum values in the slice.
func MinMax(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	min, max := x[0], x[0]
	for i := 1; i < len(x); i++ {
		if x[i] < min {
			min = x[i]
		} else if x[i] > max {
			max = x[i]
		}
	}
	return min, max
}

// Median returns the median value of the slice (allocates a copy).
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Percentile returns the p-th percentile value of the slice (0 <= p <= 100).
func Percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	min, max := MinMax(x)
	if p <= 0 {
		return min
	}
	if p >= 100 {
		return max
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}

// Running accumulates single-pass summary statistics for one column.
// Sentinel-valued (undefined) observations are counted but excluded from the
// moments and extrema.
type Running struct {
	Count     int
	Undefined int
	sum       float64
	sumSq     float64
	min       float64
	max       float64
}

// Add records one defined observation.
func (r *Running) Add(v float64) {
	if r.Count-r.Undefined == 0 {
		r.min, r.max = v, v
	} else {
		if v < r.min {
			r.min = v
		}
		if v > r.max {
			r.max = v
		}
	}
	r.Count++
	r.sum += v
	r.sumSq += v * v
}

// AddUndefined records one sentinel-valued observation.
func (r *Running) AddUndefined() {
	r.Count++
	r.Undefined++
}

// Defined is the number of non-sentinel observations.
func (r *Running) Defined() int { return r.Count - r.Undefined }

// Mean of the defined observations.
func (r *Running) Mean() float64 {
	n := float64(r.Defined())
	if n == 0 {
		return 0
	}
	return r.sum / n
}

// Std of the defined observations.
func (r *Running) Std() float64 {
	n := float64(r.Defined())
	if n == 0 {
		return 0
	}
	mean := r.sum / n
	return math.Sqrt((r.sumSq / n) - (mean * mean))
}

// Min of the defined observations.
func (r *Running) Min() float64 { return r.min }

// Max of the defined observations.
func (r *Running) Max() float64 { return r.max }
