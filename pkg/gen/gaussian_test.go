package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ragansu/fair-universe/pkg/stats"
)

func TestGaussianSampleShape(t *testing.T) {
	for _, kind := range []string{GeneratorNormal, GeneratorMultivariate} {
		g, err := NewGaussian([]float64{0, 5}, []float64{1, 2}, 7, kind)
		require.NoError(t, err, kind)
		pts := g.Sample(100)
		require.Len(t, pts, 100, kind)
		for _, p := range pts {
			require.Len(t, p, 2, kind)
		}
	}
}

func TestGaussianDeterministic(t *testing.T) {
	for _, kind := range []string{GeneratorNormal, GeneratorMultivariate} {
		a, err := NewGaussian([]float64{1, -1}, []float64{0.5, 2}, 33, kind)
		require.NoError(t, err)
		b, err := NewGaussian([]float64{1, -1}, []float64{0.5, 2}, 33, kind)
		require.NoError(t, err)
		assert.Equal(t, a.Sample(50), b.Sample(50), kind)
	}
}

func TestGaussianKindsDiffer(t *testing.T) {
	// Same seed, same parameters: the joint sampler consumes the source in a
	// different order than the per-dimension ones, so the draws diverge.
	n, err := NewGaussian([]float64{0, 0}, []float64{1, 1}, 33, GeneratorNormal)
	require.NoError(t, err)
	mv, err := NewGaussian([]float64{0, 0}, []float64{1, 1}, 33, GeneratorMultivariate)
	require.NoError(t, err)
	assert.NotEqual(t, n.Sample(20), mv.Sample(20))
}

func TestGaussianMoments(t *testing.T) {
	g, err := NewGaussian([]float64{4, -2}, []float64{0.5, 3}, 1, GeneratorMultivariate)
	require.NoError(t, err)
	pts := g.Sample(20000)

	col := make([]float64, len(pts))
	for j, want := range []struct{ mu, sigma float64 }{{4, 0.5}, {-2, 3}} {
		for i, p := range pts {
			col[i] = p[j]
		}
		assert.InDelta(t, want.mu, stats.Mean(col), 0.1)
		assert.InDelta(t, want.sigma, stats.Std(col), 0.1)
	}
}

func TestNewGaussianRejectsDegenerateCovariance(t *testing.T) {
	_, err := NewGaussian([]float64{0, 0}, []float64{1, 0}, 1, GeneratorMultivariate)
	assert.ErrorContains(t, err, "positive definite")
}
