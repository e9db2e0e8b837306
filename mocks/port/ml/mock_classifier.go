package ml

import (
	"context"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/entity"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/ml"
	"github.com/stretchr/testify/mock"
)

// MockClassifier is a testify mock for ml.Classifier
type MockClassifier struct {
	mock.Mock
}

// NewMockClassifier creates a MockClassifier whose expectations are asserted on cleanup
func NewMockClassifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClassifier {
	m := &MockClassifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClassifier) Predict(ctx context.Context, record entity.FeatureRecord) (entity.Score, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(entity.Score), args.Error(1)
}

func (m *MockClassifier) Mode() ml.Mode {
	args := m.Called()
	return args.Get(0).(ml.Mode)
}

func (m *MockClassifier) Version() string {
	args := m.Called()
	return args.String(0)
}

var _ ml.Classifier = (*MockClassifier)(nil)
