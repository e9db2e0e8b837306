package security

import "time"

// TokenIssuer issues and verifies signed, time-limited session tokens.
//
// Verify fails closed: any signature mismatch, malformed payload or expiry
// yields errs.ErrUnauthorized and never a partial subject.
type TokenIssuer interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
	Verify(token string) (subject string, err error)
}

// PasswordHasher hashes and compares user passwords
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare returns errs.ErrInvalidCredentials on mismatch
	Compare(hash, plain string) error
}
