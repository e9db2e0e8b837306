package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// KindLogisticRegression is the only model kind the service can score
const KindLogisticRegression = "logistic_regression"

// DefaultThreshold is the decision threshold when the artifact sets none
const DefaultThreshold = 0.5

// ErrCorruptArtifact is returned when an artifact exists but cannot be used
var ErrCorruptArtifact = errors.New("corrupt model artifact")

// Scaler holds standardisation parameters, one entry per feature in order
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Artifact is the on-disk model description
type Artifact struct {
	Version      string      `json:"version"`
	Kind         string      `json:"kind"`
	Threshold    *float64    `json:"threshold,omitempty"`
	FeatureOrder []string    `json:"feature_order,omitempty"`
	Vocabulary   *Vocabulary `json:"vocabulary,omitempty"`
	Scaler       *Scaler     `json:"scaler,omitempty"`
	Intercept    float64     `json:"intercept"`
	Coefficients []float64   `json:"coefficients"`
}

// LoadArtifact reads and validates the artifact at path.
// A missing file is reported as os.ErrNotExist; anything unusable as ErrCorruptArtifact.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}
	return &artifact, nil
}

// Validate checks kind, threshold, vocabulary, scaler and coefficient shapes
func (a *Artifact) Validate() error {
	if a.Kind != KindLogisticRegression {
		return fmt.Errorf("unsupported model kind %q", a.Kind)
	}
	if a.Threshold != nil && (math.IsNaN(*a.Threshold) || *a.Threshold < 0 || *a.Threshold > 1) {
		return fmt.Errorf("threshold must be within [0, 1], got %v", *a.Threshold)
	}
	if len(a.FeatureOrder) > 0 {
		if err := ValidateFeatureOrder(a.FeatureOrder); err != nil {
			return err
		}
	}
	if a.Vocabulary != nil {
		if err := a.Vocabulary.Validate(); err != nil {
			return err
		}
	}

	n := len(DefaultFeatureOrder)
	if len(a.Coefficients) != n {
		return fmt.Errorf("expected %d coefficients, got %d", n, len(a.Coefficients))
	}
	if !finite(a.Intercept) || !allFinite(a.Coefficients) {
		return errors.New("intercept and coefficients must be finite")
	}

	if a.Scaler != nil {
		if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
			return fmt.Errorf("scaler needs %d means and scales", n)
		}
		if !allFinite(a.Scaler.Mean) || !allFinite(a.Scaler.Scale) {
			return errors.New("scaler values must be finite")
		}
		for i, s := range a.Scaler.Scale {
			if s == 0 {
				return fmt.Errorf("scaler scale %d is zero", i)
			}
		}
	}
	return nil
}

// ThresholdOrDefault returns the artifact threshold or DefaultThreshold
func (a *Artifact) ThresholdOrDefault() float64 {
	if a.Threshold == nil {
		return DefaultThreshold
	}
	return *a.Threshold
}

// WriteArtifact stores the artifact as indented JSON, creating parent directories
func WriteArtifact(path string, artifact *Artifact) error {
	if err := artifact.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact directory: %w", err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if !finite(v) {
			return false
		}
	}
	return true
}
