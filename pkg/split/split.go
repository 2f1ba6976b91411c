// Package split partitions labelled, weighted event sets into train and test
// portions while keeping the per-class weight accounting visible.
package split

import (
	"fmt"
	"math/rand"

	"github.com/Ragansu/fair-universe/pkg/schema"
	"github.com/Ragansu/fair-universe/pkg/stats"
)

// Result holds the two portions of a split together with their weight sums.
type Result struct {
	XTrain, XTest             [][]float64
	LabelsTrain, LabelsTest   []int
	WeightsTrain, WeightsTest []float64

	TrainWeights stats.ClassWeights
	TestWeights  stats.ClassWeights
}

// TrainTestSplit splits X, labels and weights into train and test portions by
// testRatio, permuting rows with the given seed. The three slices must be
// parallel.
func TrainTestSplit(X [][]float64, labels []int, weights []float64, testRatio float64, seed int64) (*Result, error) {
	n := len(X)
	if len(labels) != n || len(weights) != n {
		return nil, fmt.Errorf("split: X, labels and weights must be parallel: %d/%d/%d", n, len(labels), len(weights))
	}
	if testRatio < 0 || testRatio > 1 {
		return nil, fmt.Errorf("split: test ratio %v outside [0,1]", testRatio)
	}

	indices := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testRatio)

	res := &Result{}
	for i, idx := range indices {
		if i < nTest {
			res.XTest = append(res.XTest, X[idx])
			res.LabelsTest = append(res.LabelsTest, labels[idx])
			res.WeightsTest = append(res.WeightsTest, weights[idx])
		} else {
			res.XTrain = append(res.XTrain, X[idx])
			res.LabelsTrain = append(res.LabelsTrain, labels[idx])
			res.WeightsTrain = append(res.WeightsTrain, weights[idx])
		}
	}
	res.TrainWeights = stats.SumClassWeights(res.LabelsTrain, res.WeightsTrain)
	res.TestWeights = stats.SumClassWeights(res.LabelsTest, res.WeightsTest)
	return res, nil
}

// Shuffle permutes X, labels and weights in unison.
func Shuffle(X [][]float64, labels []int, weights []float64, seed int64) ([][]float64, []int, []float64, error) {
	n := len(X)
	if len(labels) != n || len(weights) != n {
		return nil, nil, nil, fmt.Errorf("split: X, labels and weights must be parallel: %d/%d/%d", n, len(labels), len(weights))
	}
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	xs := make([][]float64, n)
	ls := make([]int, n)
	ws := make([]float64, n)
	for i, idx := range indices {
		xs[i] = X[idx]
		ls[i] = labels[idx]
		ws[i] = weights[idx]
	}
	return xs, ls, ws, nil
}

// KFold yields k folds of row indices, each usable as a held-out portion.
func KFold(n, k int, seed int64) ([][]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("split: fold count must be positive, got %d", k)
	}
	indices := rand.New(rand.NewSource(seed)).Perm(n)
	folds := make([][]int, k)
	for i := 0; i < n; i++ {
		folds[i%k] = append(folds[i%k], indices[i])
	}
	return folds, nil
}

// SignalFraction returns the share of the weight mass carried by signal
// events, the balance a split should roughly preserve across its portions.
func SignalFraction(labels []int, weights []float64) float64 {
	y := make([]float64, len(labels))
	for i, l := range labels {
		if l == schema.SignalLabel {
			y[i] = 1
		}
	}
	return stats.WeightedMean(y, weights)
}
