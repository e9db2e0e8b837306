package core

// MetricsRecorder records business events for the observability backend
type MetricsRecorder interface {
	// PredictionScored counts a successful prediction by risk level
	PredictionScored(riskLevel string, isFraud bool)
	// PredictionFailed counts a prediction aborted before the debit
	PredictionFailed(reason string)
	// CreditsPurchased adds purchased credits to the running total
	CreditsPurchased(credits int64)
	// CreditsReset counts a periodic credit reset
	CreditsReset()
}
