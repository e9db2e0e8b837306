package ml

import (
	"errors"
	"math"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
)

var errNonFinite = errors.New("model produced a non-finite probability")

// logisticModel is an immutable, ready-to-score logistic regression
type logisticModel struct {
	order        []string
	vocabulary   *Vocabulary
	mean         []float64
	scale        []float64
	intercept    float64
	coefficients []float64
	threshold    float64
}

func newLogisticModel(artifact *Artifact, order []string) *logisticModel {
	vocabulary := artifact.Vocabulary
	if vocabulary == nil {
		vocabulary = DefaultVocabulary()
	}

	m := &logisticModel{
		order:        order,
		vocabulary:   vocabulary,
		intercept:    artifact.Intercept,
		coefficients: append([]float64(nil), artifact.Coefficients...),
		threshold:    artifact.ThresholdOrDefault(),
	}
	if artifact.Scaler != nil {
		m.mean = append([]float64(nil), artifact.Scaler.Mean...)
		m.scale = append([]float64(nil), artifact.Scaler.Scale...)
	}
	return m
}

// encode turns a record into the feature vector in model order
func (m *logisticModel) encode(record entity.FeatureRecord) ([]float64, error) {
	x := make([]float64, len(m.order))
	for i, name := range m.order {
		switch name {
		case FeatureAmount:
			x[i] = record.Amount
		case FeatureMerchant:
			x[i] = float64(m.vocabulary.MerchantCode(record.Merchant))
		case FeatureCategory:
			code, err := m.vocabulary.CategoryCode(record.Category)
			if err != nil {
				return nil, err
			}
			x[i] = float64(code)
		case FeatureHour:
			x[i] = float64(record.Hour)
		case FeatureUserAge:
			x[i] = float64(record.UserAge)
		}
	}
	return x, nil
}

// probability applies the scaler and the logistic link
func (m *logisticModel) probability(x []float64) (float64, error) {
	z := m.intercept
	for i, v := range x {
		if m.scale != nil {
			v = (v - m.mean[i]) / m.scale[i]
		}
		z += m.coefficients[i] * v
	}

	p := sigmoid(z)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, errNonFinite
	}
	return p, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
