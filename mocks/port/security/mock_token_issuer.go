package security

import (
	"time"

	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/security"
	"github.com/stretchr/testify/mock"
)

// MockTokenIssuer is a testify mock for security.TokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

// NewMockTokenIssuer creates a MockTokenIssuer whose expectations are asserted on cleanup
func NewMockTokenIssuer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenIssuer {
	m := &MockTokenIssuer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTokenIssuer) Issue(subject string) (string, time.Time, error) {
	args := m.Called(subject)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenIssuer) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

var _ security.TokenIssuer = (*MockTokenIssuer)(nil)
