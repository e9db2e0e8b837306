package ml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/ml"
)

// ModelObserver is told which model the classifier ended up serving
type ModelObserver interface {
	ModelLoaded(mode ml.Mode, version string)
}

// Options configures artifact loading
type Options struct {
	// Path of the JSON artifact; empty goes straight to the fallback
	Path string
	// FeatureOrder applies when the artifact carries none
	FeatureOrder []string
}

// Classifier scores records with a logistic regression loaded once at startup.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	model   *logisticModel
	mode    ml.Mode
	version string
}

// NewClassifier loads the artifact at opts.Path, falling back to the synthetic
// model when the file is missing or unusable. Only an invalid configured
// feature order is returned as an error.
func NewClassifier(opts Options, logger core.Logger, observer ModelObserver) (*Classifier, error) {
	if len(opts.FeatureOrder) > 0 {
		if err := ValidateFeatureOrder(opts.FeatureOrder); err != nil {
			return nil, fmt.Errorf("model.featureOrder: %w", err)
		}
	}

	c, loadErr := loadArtifactClassifier(opts)
	if loadErr != nil {
		c = NewFallbackClassifier(opts.FeatureOrder)

		reason := "artifact path not configured"
		if opts.Path != "" {
			reason = loadErr.Error()
			if errors.Is(loadErr, fs.ErrNotExist) {
				reason = "artifact not found"
			}
		}
		logger.Error("serving synthetic fallback model", map[string]any{
			"path":    opts.Path,
			"reason":  reason,
			"version": c.version,
		})
	} else {
		logger.Info("Loaded model artifact", map[string]any{
			"path":          opts.Path,
			"version":       c.version,
			"threshold":     c.model.threshold,
			"feature_order": c.model.order,
		})
	}

	if observer != nil {
		observer.ModelLoaded(c.mode, c.version)
	}
	return c, nil
}

func loadArtifactClassifier(opts Options) (*Classifier, error) {
	if opts.Path == "" {
		return nil, fs.ErrNotExist
	}

	artifact, err := LoadArtifact(opts.Path)
	if err != nil {
		return nil, err
	}

	order, err := ResolveFeatureOrder(artifact.FeatureOrder, opts.FeatureOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArtifact, err)
	}

	version := artifact.Version
	if version == "" {
		version = "unversioned"
	}
	return &Classifier{
		model:   newLogisticModel(artifact, order),
		mode:    ml.ModeArtifact,
		version: version,
	}, nil
}

// NewFallbackClassifier trains the deterministic synthetic model
func NewFallbackClassifier(featureOrder []string) *Classifier {
	order, err := ResolveFeatureOrder(nil, featureOrder)
	if err != nil {
		order = DefaultFeatureOrder
	}
	artifact := TrainFallback(order)

	return &Classifier{
		model:   newLogisticModel(artifact, order),
		mode:    ml.ModeFallback,
		version: artifact.Version,
	}
}

// Predict returns the fraud probability and whether it reaches the threshold
func (c *Classifier) Predict(ctx context.Context, record entity.FeatureRecord) (entity.Score, error) {
	if err := ctx.Err(); err != nil {
		return entity.Score{}, err
	}

	x, err := c.model.encode(record)
	if err != nil {
		return entity.Score{}, errs.NewClassifierError("encode", err)
	}

	p, err := c.model.probability(x)
	if err != nil {
		return entity.Score{}, errs.NewClassifierError("predict", err)
	}

	return entity.Score{Probability: p, IsFraud: p >= c.model.threshold}, nil
}

// Mode reports whether an artifact or the fallback is being served
func (c *Classifier) Mode() ml.Mode {
	return c.mode
}

// Version reports the artifact version
func (c *Classifier) Version() string {
	return c.version
}

// Threshold reports the decision threshold
func (c *Classifier) Threshold() float64 {
	return c.model.threshold
}

var _ ml.Classifier = (*Classifier)(nil)
