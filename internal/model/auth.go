package model

import "context"

// Authenticator resolves a credential pair to an account. It returns
// ErrUnauthorized on any credential failure without revealing which check
// failed; any other error is an infrastructure fault.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Account, error)
}

// Limiter is a per-principal admission gate for one request class.
type Limiter interface {
	TryAcquire(ctx context.Context, principal string) bool
}
