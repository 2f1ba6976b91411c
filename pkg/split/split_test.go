package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSet(n int) ([][]float64, []int, []float64) {
	X := make([][]float64, n)
	labels := make([]int, n)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		X[i] = []float64{float64(i), float64(-i)}
		labels[i] = i % 2
		weights[i] = float64(i + 1)
	}
	return X, labels, weights
}

func TestTrainTestSplit(t *testing.T) {
	X, labels, weights := makeSet(100)
	res, err := TrainTestSplit(X, labels, weights, 0.3, 1)
	require.NoError(t, err)

	assert.Len(t, res.XTest, 30)
	assert.Len(t, res.XTrain, 70)
	assert.Len(t, res.LabelsTest, 30)
	assert.Len(t, res.WeightsTrain, 70)

	// Rows stay aligned: X[i] was {i, -i} with weight i+1.
	for i, x := range res.XTrain {
		assert.Equal(t, x[0]+1, res.WeightsTrain[i])
		assert.Equal(t, int(x[0])%2, res.LabelsTrain[i])
	}

	// The split partitions the weight mass.
	total := res.TrainWeights
	total.Add(res.TestWeights)
	assert.InDelta(t, 5050, total.Total, 1e-9)
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, labels, weights := makeSet(50)
	a, err := TrainTestSplit(X, labels, weights, 0.5, 7)
	require.NoError(t, err)
	b, err := TrainTestSplit(X, labels, weights, 0.5, 7)
	require.NoError(t, err)
	assert.Equal(t, a.XTrain, b.XTrain)
	assert.Equal(t, a.LabelsTest, b.LabelsTest)
}

func TestTrainTestSplitErrors(t *testing.T) {
	X, labels, weights := makeSet(10)
	_, err := TrainTestSplit(X, labels[:5], weights, 0.3, 1)
	assert.ErrorContains(t, err, "parallel")

	_, err = TrainTestSplit(X, labels, weights, 1.5, 1)
	assert.ErrorContains(t, err, "test ratio")
}

func TestShuffle(t *testing.T) {
	X, labels, weights := makeSet(20)
	xs, ls, ws, err := Shuffle(X, labels, weights, 3)
	require.NoError(t, err)
	require.Len(t, xs, 20)
	for i := range xs {
		assert.Equal(t, xs[i][0]+1, ws[i])
		assert.Equal(t, int(xs[i][0])%2, ls[i])
	}
	assert.NotEqual(t, X, xs, "seeded shuffle should move rows")
}

func TestShuffleRejectsMismatchedLengths(t *testing.T) {
	X, labels, weights := makeSet(10)
	_, _, _, err := Shuffle(X, labels[:4], weights, 3)
	assert.ErrorContains(t, err, "parallel")

	_, _, _, err = Shuffle(X, labels, weights[:4], 3)
	assert.ErrorContains(t, err, "parallel")
}

func TestKFold(t *testing.T) {
	folds, err := KFold(10, 3, 1)
	require.NoError(t, err)
	require.Len(t, folds, 3)
	seen := map[int]bool{}
	for _, fold := range folds {
		for _, idx := range fold {
			assert.False(t, seen[idx], "index %d in two folds", idx)
			seen[idx] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestKFoldRejectsBadFoldCount(t *testing.T) {
	_, err := KFold(10, 0, 1)
	assert.ErrorContains(t, err, "fold count")

	_, err = KFold(10, -2, 1)
	assert.ErrorContains(t, err, "fold count")
}

func TestSignalFraction(t *testing.T) {
	labels := []int{1, 0, 1, 0}
	weights := []float64{2, 1, 1, 1}
	assert.InDelta(t, 0.6, SignalFraction(labels, weights), 1e-12)

	assert.Equal(t, 0.0, SignalFraction(nil, nil))
	assert.Equal(t, 0.0, SignalFraction([]int{0, 0}, []float64{1, 1}))
	assert.Equal(t, 1.0, SignalFraction([]int{1, 1}, []float64{0.5, 2.5}))
}
