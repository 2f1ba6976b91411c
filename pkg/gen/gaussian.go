package gen

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian samples event points from an axis-aligned normal distribution.
// The "normal" generator draws each dimension independently; the
// "multivariate" generator draws whole points from a diagonal-covariance
// joint normal. The two agree in distribution but not in draw sequence.
type Gaussian struct {
	Mu    []float64
	Sigma []float64

	dists []distuv.Normal
	mv    *distmv.Normal
}

// NewGaussian builds a sampler over len(mu) dimensions, drawing from the
// given seed with the named generator type.
func NewGaussian(mu, sigma []float64, seed uint64, generator string) (*Gaussian, error) {
	src := rand.NewSource(seed)
	g := &Gaussian{Mu: mu, Sigma: sigma}

	if generator == GeneratorMultivariate {
		cov := mat.NewSymDense(len(mu), nil)
		for i, s := range sigma {
			cov.SetSym(i, i, s*s)
		}
		mv, ok := distmv.NewNormal(mu, cov, src)
		if !ok {
			return nil, fmt.Errorf("gen: covariance is not positive definite")
		}
		g.mv = mv
		return g, nil
	}

	g.dists = make([]distuv.Normal, len(mu))
	for i := range mu {
		g.dists[i] = distuv.Normal{Mu: mu[i], Sigma: sigma[i], Src: src}
	}
	return g, nil
}

// Sample draws n points.
func (g *Gaussian) Sample(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		if g.mv != nil {
			out[i] = g.mv.Rand(nil)
			continue
		}
		p := make([]float64, len(g.Mu))
		for j := range p {
			p[j] = g.dists[j].Rand()
		}
		out[i] = p
	}
	return out
}
