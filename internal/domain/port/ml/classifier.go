package ml

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

// Mode tells whether the classifier serves a loaded artifact or the synthetic fallback
type Mode string

const (
	ModeArtifact Mode = "artifact"
	ModeFallback Mode = "fallback"
)

// Classifier scores normalized transaction records.
// Implementations are immutable after construction and safe for concurrent use.
type Classifier interface {
	// Predict returns the fraud probability and the thresholded label.
	//
	// Possible errors:
	//   - errs.ErrInvalidFeature: a categorical field has no code in the vocabulary
	//   - errs.ErrClassifierFailure: the model could not produce a finite probability
	Predict(ctx context.Context, record entity.FeatureRecord) (entity.Score, error)
	// Mode reports where the model came from
	Mode() Mode
	// Version reports the artifact or vocabulary version in use
	Version() string
}
