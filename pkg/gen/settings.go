// Package gen produces synthetic signal/background datasets: Gaussian event
// clouds with parametric systematic distortions, in nominal and biased pairs.
package gen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Distribution and systematic names used in settings documents.
const (
	DistributionGaussian = "Gaussian"

	SystematicTranslation = "Translation"
	SystematicScaling     = "Scaling"
	SystematicBox         = "Box"
	SystematicRotation    = "Rotation"

	GeneratorNormal       = "normal"
	GeneratorMultivariate = "multivariate"
)

// DefaultSeed orders the generated output deterministically unless a
// settings document overrides it.
const DefaultSeed = 33

// SystematicSpec is one entry of the systematics list.
type SystematicSpec struct {
	Name           string  `json:"name" yaml:"name"`
	ZMagnitude     float64 `json:"z_magnitude,omitempty" yaml:"z_magnitude,omitempty"`
	Alpha          float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	ScalingFactor  float64 `json:"scaling_factor,omitempty" yaml:"scaling_factor,omitempty"`
	BoxLength      float64 `json:"box_l,omitempty" yaml:"box_l,omitempty"`
	RotationDegree float64 `json:"rotation_degree,omitempty" yaml:"rotation_degree,omitempty"`
}

// Settings parametrises one generated dataset. The JSON form is the
// settings.json document saved with every bundle.
type Settings struct {
	Case             string  `json:"case,omitempty" yaml:"case,omitempty"`
	ProblemDimension int     `json:"problem_dimension" yaml:"problem_dimension"`
	TotalEvents      int     `json:"total_number_of_events" yaml:"total_number_of_events"`
	PB               float64 `json:"p_b" yaml:"p_b"`
	// Theta and L place the signal centre relative to the background:
	// signal mu = background mu + L*[cos theta, sin theta].
	Theta            float64 `json:"theta" yaml:"theta"`
	L                float64 `json:"L" yaml:"L"`
	SignalSigmaScale float64 `json:"signal_sigma_scale" yaml:"signal_sigma_scale"`
	Generator        string  `json:"generator" yaml:"generator"`

	BackgroundMu    []float64 `json:"background_mu" yaml:"background_mu"`
	BackgroundSigma []float64 `json:"background_sigma" yaml:"background_sigma"`

	Systematics []SystematicSpec `json:"systematics" yaml:"systematics"`

	Seed      int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
	DatasetID string `json:"dataset_id,omitempty" yaml:"dataset_id,omitempty"`

	TrainComment string `json:"train_comment,omitempty" yaml:"train_comment,omitempty"`
	TestComment  string `json:"test_comment,omitempty" yaml:"test_comment,omitempty"`
}

// LoadSettings reads a settings document. The format follows the file
// extension: .json, .yaml or .yml.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("gen: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &s)
	default:
		return s, fmt.Errorf("gen: unsupported settings format %q", filepath.Ext(path))
	}
	if err != nil {
		return s, fmt.Errorf("gen: parse %s: %w", filepath.Base(path), err)
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}
	return s, s.Validate()
}

// Validate checks the settings for internal consistency.
func (s Settings) Validate() error {
	if s.ProblemDimension <= 0 {
		return fmt.Errorf("gen: problem_dimension must be positive, got %d", s.ProblemDimension)
	}
	if s.TotalEvents <= 0 {
		return fmt.Errorf("gen: total_number_of_events must be positive, got %d", s.TotalEvents)
	}
	if s.PB < 0 || s.PB > 1 {
		return fmt.Errorf("gen: p_b must be in [0,1], got %v", s.PB)
	}
	if len(s.BackgroundMu) != s.ProblemDimension || len(s.BackgroundSigma) != s.ProblemDimension {
		return fmt.Errorf("gen: background_mu and background_sigma must have %d entries", s.ProblemDimension)
	}
	for i, sig := range s.BackgroundSigma {
		if sig <= 0 {
			return fmt.Errorf("gen: background_sigma[%d] must be positive, got %v", i, sig)
		}
	}
	if s.SignalSigmaScale <= 0 {
		return fmt.Errorf("gen: signal_sigma_scale must be positive, got %v", s.SignalSigmaScale)
	}
	switch s.Generator {
	case GeneratorNormal, GeneratorMultivariate:
	default:
		return fmt.Errorf("gen: unknown generator %q", s.Generator)
	}
	for _, spec := range s.Systematics {
		switch spec.Name {
		case SystematicTranslation, SystematicScaling:
		case SystematicBox, SystematicRotation:
			if s.ProblemDimension != 2 {
				return fmt.Errorf("gen: systematic %s needs a 2-dimensional problem", spec.Name)
			}
		default:
			return fmt.Errorf("gen: unknown systematic %q", spec.Name)
		}
	}
	return nil
}

// SaveSettings writes the settings document as JSON, the form bundles carry.
func SaveSettings(s Settings, path string) error {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("gen: encode settings: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	return nil
}
