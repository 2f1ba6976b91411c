package stats

import "github.com/Ragansu/fair-universe/pkg/schema"

// WeightedSum returns the sum of x weighted by w. Slices must be the same
// length; extra weights are ignored.
func WeightedSum(x, w []float64) float64 {
	n := len(x)
	if len(w) < n {
		n = len(w)
	}
	s := 0.0
	for i := 0; i < n; i++ {
		s += x[i] * w[i]
	}
	return s
}

// WeightedMean returns the weighted average of x.
func WeightedMean(x, w []float64) float64 {
	total := Sum(w)
	if total == 0 {
		return 0
	}
	return WeightedSum(x, w) / total
}

// ClassWeights holds the event-weight totals of a labelled set. The totals
// are what unbiased aggregate estimation rests on, so splits must preserve
// them up to the partition.
type ClassWeights struct {
	Total      float64
	Signal     float64
	Background float64
}

// SumClassWeights accumulates per-class weight sums from parallel label and
// weight slices.
func SumClassWeights(labels []int, weights []float64) ClassWeights {
	var cw ClassWeights
	for i, w := range weights {
		cw.Total += w
		if i < len(labels) && labels[i] == schema.SignalLabel {
			cw.Signal += w
		} else {
			cw.Background += w
		}
	}
	return cw
}

// Add merges another accumulation into cw.
func (cw *ClassWeights) Add(other ClassWeights) {
	cw.Total += other.Total
	cw.Signal += other.Signal
	cw.Background += other.Background
}
