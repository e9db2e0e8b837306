package fraud

import (
	"context"
	"errors"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	coreport "github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/ml"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/usecase"
)

// Service implements the FraudUseCase interface
type Service struct {
	uow          persistence.UnitOfWork
	ledger       usecase.LedgerUseCase
	sequencer    coreport.Sequencer
	classifier   ml.Classifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.MetricsRecorder
}

// NewFraudService creates a new fraud service
func NewFraudService(
	uow persistence.UnitOfWork,
	ledger usecase.LedgerUseCase,
	sequencer coreport.Sequencer,
	classifier ml.Classifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.MetricsRecorder,
) *Service {
	return &Service{
		uow:          uow,
		ledger:       ledger,
		sequencer:    sequencer,
		classifier:   classifier,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

var _ usecase.FraudUseCase = (*Service)(nil)

// failureReason labels a failed prediction for metrics
func failureReason(err error) string {
	switch {
	case errs.IsInsufficientCreditsError(err):
		return "insufficient_credits"
	case errs.IsInvalidInputError(err):
		return "invalid_input"
	case errs.IsClassifierFailure(err):
		return "classifier"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal"
	}
}

// logFields merges the structured fields a typed error carries
func logFields(base map[string]any, err error) map[string]any {
	var withFields interface{ LogFields() map[string]any }
	if errors.As(err, &withFields) {
		for k, v := range withFields.LogFields() {
			base[k] = v
		}
	}
	base["error"] = err.Error()
	return base
}
