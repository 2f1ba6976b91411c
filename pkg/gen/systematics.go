package gen

import "math"

// Systematic distorts event points to mimic an imperfect detector. Apply
// returns new points and leaves its input untouched.
type Systematic interface {
	Name() string
	Apply(points [][]float64) [][]float64
}

// Translation shifts every point by a fixed vector.
type Translation struct {
	Z []float64
}

// NewTranslation builds the shift z = magnitude*[cos alpha, sin alpha], with
// the direction components rounded to two decimals as the settings documents
// record them.
func NewTranslation(magnitude, alphaDegrees float64) Translation {
	a := alphaDegrees * math.Pi / 180
	return Translation{Z: []float64{
		round2(math.Cos(a)) * magnitude,
		round2(math.Sin(a)) * magnitude,
	}}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (t Translation) Name() string { return SystematicTranslation }

func (t Translation) Apply(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		q := make([]float64, len(p))
		for j := range p {
			q[j] = p[j]
			if j < len(t.Z) {
				q[j] += t.Z[j]
			}
		}
		out[i] = q
	}
	return out
}

// Scaling multiplies every coordinate by a fixed factor.
type Scaling struct {
	Factor float64
}

func (s Scaling) Name() string { return SystematicScaling }

func (s Scaling) Apply(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		q := make([]float64, len(p))
		for j := range p {
			q[j] = p[j] * s.Factor
		}
		out[i] = q
	}
	return out
}

// Rotation rotates 2-dimensional points about the origin.
type Rotation struct {
	Degrees float64
}

func (r Rotation) Name() string { return SystematicRotation }

func (r Rotation) Apply(points [][]float64) [][]float64 {
	rad := r.Degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = []float64{cos*p[0] - sin*p[1], sin*p[0] + cos*p[1]}
	}
	return out
}

// Box masks the region around the signal centre: any event whose biased
// coordinates fall within half the box length of the centre in every
// dimension is dropped, from the nominal and biased sets alike so the pairing
// survives.
type Box struct {
	Center []float64
	Length float64
}

func (b Box) Name() string { return SystematicBox }

// Inside reports whether a point falls in the masked region.
func (b Box) Inside(p []float64) bool {
	half := b.Length / 2
	for j, c := range b.Center {
		if j >= len(p) || math.Abs(p[j]-c) > half {
			return false
		}
	}
	return true
}
