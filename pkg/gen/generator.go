package gen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Ragansu/fair-universe/pkg/schema"
	"github.com/Ragansu/fair-universe/pkg/stats"
)

// Set is one labelled, weighted point cloud. X, Labels and Weights are
// parallel.
type Set struct {
	X       [][]float64
	Labels  []int
	Weights []float64
}

// Len returns the number of events in the set.
func (s Set) Len() int { return len(s.Labels) }

// Describe summarises each coordinate of the set.
func (s Set) Describe() []stats.Summary {
	if s.Len() == 0 {
		return nil
	}
	dim := len(s.X[0])
	out := make([]stats.Summary, dim)
	col := make([]float64, s.Len())
	for j := 0; j < dim; j++ {
		for i, p := range s.X {
			col[i] = p[j]
		}
		out[j] = stats.Describe(col)
	}
	return out
}

// Dataset pairs the nominal draw with its systematics-distorted counterpart.
// Row i of both sets describes the same underlying event.
type Dataset struct {
	Settings Settings
	Nominal  Set
	Biased   Set
}

// Generator draws paired nominal/biased datasets from validated settings.
type Generator struct {
	settings   Settings
	signal     *Gaussian
	background *Gaussian

	translation *Translation
	scaling     *Scaling
	rotation    *Rotation
	box         *Box
}

// New builds a Generator. The signal distribution is derived from the
// background: its centre is offset by L along theta and its widths are the
// background widths scaled by signal_sigma_scale.
func New(s Settings) (*Generator, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}

	theta := s.Theta * math.Pi / 180
	signalMu := make([]float64, s.ProblemDimension)
	signalSigma := make([]float64, s.ProblemDimension)
	copy(signalMu, s.BackgroundMu)
	if s.ProblemDimension >= 2 {
		signalMu[0] += s.L * math.Cos(theta)
		signalMu[1] += s.L * math.Sin(theta)
	} else {
		signalMu[0] += s.L
	}
	for i, sig := range s.BackgroundSigma {
		signalSigma[i] = sig * s.SignalSigmaScale
	}

	signal, err := NewGaussian(signalMu, signalSigma, uint64(s.Seed), s.Generator)
	if err != nil {
		return nil, err
	}
	background, err := NewGaussian(s.BackgroundMu, s.BackgroundSigma, uint64(s.Seed)+1, s.Generator)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		settings:   s,
		signal:     signal,
		background: background,
	}

	for _, spec := range s.Systematics {
		switch spec.Name {
		case SystematicTranslation:
			t := NewTranslation(spec.ZMagnitude, spec.Alpha)
			g.translation = &t
		case SystematicScaling:
			// A factor at or below one is treated as absent, as the
			// settings convention has it.
			if spec.ScalingFactor > 1 {
				g.scaling = &Scaling{Factor: spec.ScalingFactor}
			}
		case SystematicRotation:
			if spec.RotationDegree != 0 {
				g.rotation = &Rotation{Degrees: spec.RotationDegree}
			}
		case SystematicBox:
			if spec.BoxLength > 1 {
				g.box = &Box{Center: signalMu, Length: spec.BoxLength}
			}
		}
	}
	return g, nil
}

// SignalMu returns the derived signal centre.
func (g *Generator) SignalMu() []float64 { return g.signal.Mu }

// Generate draws the dataset. Signal events are labelled 1 and background
// events 0; generated weights are unit. Both sets are shuffled with the same
// seed-determined permutation, so row pairing is preserved.
func (g *Generator) Generate() (*Dataset, error) {
	s := g.settings
	nBackground := int(float64(s.TotalEvents) * s.PB)
	nSignal := s.TotalEvents - nBackground
	if nSignal+nBackground == 0 {
		return nil, fmt.Errorf("gen: settings produce no events")
	}

	signal := g.signal.Sample(nSignal)
	background := g.background.Sample(nBackground)

	biasedSignal := g.distort(signal)
	biasedBackground := g.distort(background)

	nominal := stack(signal, background)
	biased := stack(biasedSignal, biasedBackground)

	labels := make([]int, 0, nSignal+nBackground)
	for i := 0; i < nSignal; i++ {
		labels = append(labels, schema.SignalLabel)
	}
	for i := 0; i < nBackground; i++ {
		labels = append(labels, schema.BackgroundLabel)
	}

	if g.box != nil {
		nominal, biased, labels = g.applyBox(nominal, biased, labels)
	}

	weights := make([]float64, len(labels))
	for i := range weights {
		weights[i] = 1
	}

	perm := rand.New(rand.NewSource(s.Seed)).Perm(len(labels))
	ds := &Dataset{
		Settings: s,
		Nominal:  permuteSet(Set{X: nominal, Labels: labels, Weights: weights}, perm),
		Biased:   permuteSet(Set{X: biased, Labels: labels, Weights: weights}, perm),
	}
	return ds, nil
}

// distort applies rotation, translation and scaling in that order.
func (g *Generator) distort(points [][]float64) [][]float64 {
	out := points
	applied := false
	if g.rotation != nil {
		out = g.rotation.Apply(out)
		applied = true
	}
	if g.translation != nil {
		out = g.translation.Apply(out)
		applied = true
	}
	if g.scaling != nil {
		out = g.scaling.Apply(out)
		applied = true
	}
	if !applied {
		// No systematic ran; the biased set still gets its own copy.
		out = make([][]float64, len(points))
		for i, p := range points {
			q := make([]float64, len(p))
			copy(q, p)
			out[i] = q
		}
	}
	return out
}

func (g *Generator) applyBox(nominal, biased [][]float64, labels []int) ([][]float64, [][]float64, []int) {
	var outN, outB [][]float64
	var outL []int
	for i := range labels {
		if g.box.Inside(biased[i]) {
			continue
		}
		outN = append(outN, nominal[i])
		outB = append(outB, biased[i])
		outL = append(outL, labels[i])
	}
	return outN, outB, outL
}

func stack(a, b [][]float64) [][]float64 {
	out := make([][]float64, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func permuteSet(s Set, perm []int) Set {
	out := Set{
		X:       make([][]float64, len(perm)),
		Labels:  make([]int, len(perm)),
		Weights: make([]float64, len(perm)),
	}
	for i, idx := range perm {
		out.X[i] = s.X[idx]
		out.Labels[i] = s.Labels[idx]
		out.Weights[i] = s.Weights[idx]
	}
	return out
}
