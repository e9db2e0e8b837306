package core

import (
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockMetricsRecorder is a testify mock for core.MetricsRecorder
type MockMetricsRecorder struct {
	mock.Mock
}

// NewMockMetricsRecorder creates a MockMetricsRecorder whose expectations are asserted on cleanup
func NewMockMetricsRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMetricsRecorder {
	m := &MockMetricsRecorder{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AllowAll accepts any metric call without asserting on it
func (m *MockMetricsRecorder) AllowAll() *MockMetricsRecorder {
	m.On("PredictionScored", mock.Anything, mock.Anything).Maybe().Return()
	m.On("PredictionFailed", mock.Anything).Maybe().Return()
	m.On("CreditsPurchased", mock.Anything).Maybe().Return()
	m.On("CreditsReset").Maybe().Return()
	return m
}

func (m *MockMetricsRecorder) PredictionScored(riskLevel string, isFraud bool) {
	m.Called(riskLevel, isFraud)
}

func (m *MockMetricsRecorder) PredictionFailed(reason string) {
	m.Called(reason)
}

func (m *MockMetricsRecorder) CreditsPurchased(credits int64) {
	m.Called(credits)
}

func (m *MockMetricsRecorder) CreditsReset() {
	m.Called()
}

var _ coreport.MetricsRecorder = (*MockMetricsRecorder)(nil)
