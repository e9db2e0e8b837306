package core

import "time"

// TimeProvider abstracts the clock so credit resets and token expiry can be tested
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(d time.Duration)
}
